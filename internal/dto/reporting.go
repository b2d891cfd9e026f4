package dto

import (
	"time"

	"github.com/altaerp/ledger_backend/internal/core/domain"
)

// DiaryParams defines the shared date-range/pagination inputs of the diary
// and flat entry listings. Nil dates default to the current calendar month;
// DateTo is inclusive through 23:59:59 of its day. Zero Page/PageSize
// disables pagination.
type DiaryParams struct {
	DateFrom   *time.Time `json:"dateFrom"`
	DateTo     *time.Time `json:"dateTo"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	Descending bool       `json:"descending"`
}

// LedgerParams extends the range parameters with the free-text search that
// filters statements by account display name or entry description.
type LedgerParams struct {
	DiaryParams
	Search string `json:"search"`
}

// DiaryResponse is the chronological listing of entries with their postings.
type DiaryResponse struct {
	Entries    []domain.DiaryEntry `json:"entries"`
	TotalPages int                 `json:"totalPages"`
}

// LedgerResponse is the per-account statement report.
type LedgerResponse struct {
	Statements []domain.LedgerStatement `json:"statements"`
	TotalPages int                      `json:"totalPages"`
}

// EntriesResponse is the lighter-weight diary variant without the account
// join.
type EntriesResponse struct {
	Entries    []EntryResponse `json:"entries"`
	TotalPages int             `json:"totalPages"`
}

// EntryDetailResponse is a single entry with its posting lines.
type EntryDetailResponse struct {
	Entry    EntryResponse      `json:"entry"`
	Postings []domain.DiaryLine `json:"postings"`
}
