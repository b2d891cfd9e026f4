package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiaryLine is a posting joined with its account's display name, as shown in
// the diary report.
type DiaryLine struct {
	Posting
	AccountName string `json:"accountName"`
}

// DiaryEntry is a journal entry with its posting lines.
type DiaryEntry struct {
	Entry
	Postings []DiaryLine `json:"postings"`
}

// LedgerLine is a posting joined with the owning entry's metadata, as shown
// in a per-account ledger statement.
type LedgerLine struct {
	Posting
	EntrySequence    int64     `json:"entrySequence"`
	EntryDate        time.Time `json:"entryDate"`
	EntryDescription string    `json:"entryDescription"`
}

// LedgerStatement is the per-account section of the ledger report:
// the account's in-range postings bracketed by its opening and final
// balances.
type LedgerStatement struct {
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	AccountCode    int             `json:"accountCode"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	FinalBalance   decimal.Decimal `json:"finalBalance"`
	Postings       []LedgerLine    `json:"postings"`
}

// MonthlyEntryCount holds the number of entries committed in one calendar
// month.
type MonthlyEntryCount struct {
	Month time.Month `json:"month"`
	Count int64      `json:"count"`
}

// EntryStatistics is the per-year entry count breakdown.
type EntryStatistics struct {
	Year    int                 `json:"year"`
	Monthly []MonthlyEntryCount `json:"monthly"`
	Total   int64               `json:"total"`
}
