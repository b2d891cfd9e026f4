package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset          AccountType = "ASSET"
	Liability      AccountType = "LIABILITY"
	PositiveResult AccountType = "POSITIVE_RESULT"
	NegativeResult AccountType = "NEGATIVE_RESULT"
	Equity         AccountType = "EQUITY"
)

// Account is the DB shape of a chart-of-accounts node.
// Note: ParentAccountID uses string for the nullable self-reference.
type Account struct {
	AccountID       string          `db:"account_id"`
	Name            string          `db:"name"` // normalized lowercase key, unique
	DisplayName     string          `db:"display_name"`
	Description     string          `db:"description"`
	AccountType     AccountType     `db:"account_type"`
	ParentAccountID string          `db:"parent_account_id"` // Nullable
	Code            int             `db:"code"`              // unique, tree-positional
	Balance         decimal.Decimal `db:"balance"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
