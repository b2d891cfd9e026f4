package domain

import "github.com/shopspring/decimal"

// PostingSide indicates whether a posting line is a Debit or a Credit.
type PostingSide string

const (
	Debit  PostingSide = "DEBIT"
	Credit PostingSide = "CREDIT"
)

// IsValid reports whether s is a recognized posting side.
func (s PostingSide) IsValid() bool {
	return s == Debit || s == Credit
}

// Posting is a single debit or credit line within an entry, against one
// account. Exactly one of Debit/Credit is non-zero. ResultingBalance is the
// snapshot of the account's balance immediately after this posting was
// applied; it is derived once at commit and never edited.
type Posting struct {
	PostingID        string          `json:"postingID"`
	EntryID          string          `json:"entryID"`
	AccountID        string          `json:"accountID"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	ResultingBalance decimal.Decimal `json:"resultingBalance"`
	AuditFields
}

// Amount returns the non-zero side of the posting.
func (p Posting) Amount() decimal.Decimal {
	if p.Debit.IsZero() {
		return p.Credit
	}
	return p.Debit
}

// Side returns which side of the posting carries the amount.
func (p Posting) Side() PostingSide {
	if p.Debit.IsZero() {
		return Credit
	}
	return Debit
}
