package models

import "github.com/shopspring/decimal"

// Posting is the DB shape of a single debit/credit line within an entry.
// Exactly one of Debit/Credit is non-zero (enforced by a CHECK constraint).
// LineNo preserves the submission order of the lines; resulting balances are
// only meaningful when read back in that order.
type Posting struct {
	PostingID        string          `db:"posting_id"`
	EntryID          string          `db:"entry_id"`
	LineNo           int             `db:"line_no"`
	AccountID        string          `db:"account_id"`
	Debit            decimal.Decimal `db:"debit"`
	Credit           decimal.Decimal `db:"credit"`
	ResultingBalance decimal.Decimal `db:"resulting_balance"`
	AuditFields
}
