package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
// The labels mirror the classic Activo/Pasivo/R+/R-/PN classification.
type AccountType string

const (
	Asset          AccountType = "ASSET"
	Liability      AccountType = "LIABILITY"
	PositiveResult AccountType = "POSITIVE_RESULT"
	NegativeResult AccountType = "NEGATIVE_RESULT"
	Equity         AccountType = "EQUITY"
)

// IsValid reports whether t is one of the five recognized account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, PositiveResult, NegativeResult, Equity:
		return true
	}
	return false
}

// CreditNormal reports whether accounts of this type increase with credit.
// Liability, Equity and PositiveResult are credit-normal; Asset and
// NegativeResult are debit-normal.
func (t AccountType) CreditNormal() bool {
	switch t {
	case Liability, Equity, PositiveResult:
		return true
	}
	return false
}

// Account represents one node of the chart of accounts.
// Name is the normalized lowercase unique key; DisplayName preserves the
// user-facing casing. Code encodes the position in the account tree.
type Account struct {
	AccountID       string          `json:"accountID"`
	Name            string          `json:"name"`
	DisplayName     string          `json:"displayName"`
	Description     string          `json:"description"`
	AccountType     AccountType     `json:"accountType"`
	ParentAccountID string          `json:"parentAccountID"` // empty for root accounts
	Code            int             `json:"code"`
	Balance         decimal.Decimal `json:"balance"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// IsRoot reports whether the account sits at the top of its type block.
func (a Account) IsRoot() bool {
	return a.ParentAccountID == ""
}
