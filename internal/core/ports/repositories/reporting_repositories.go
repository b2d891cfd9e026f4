package repositories

import (
	"context"
	"time"

	"github.com/altaerp/ledger_backend/internal/core/domain"
)

// ReportingRepository is the read-only query surface for the diary and
// ledger reports. It never mutates state and needs only read-committed
// consistency.
type ReportingRepository interface {
	// ListEntriesInRange returns entries with entry_date inside [from, to],
	// ordered by date (and sequence number as tie-breaker). limit <= 0
	// disables the LIMIT/OFFSET window.
	ListEntriesInRange(ctx context.Context, from, to time.Time, limit, offset int, descending bool) ([]domain.Entry, error)

	CountEntriesInRange(ctx context.Context, from, to time.Time) (int64, error)

	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// FindDiaryLinesByEntryIDs returns each entry's postings joined with the
	// account display name, keyed by entry ID.
	FindDiaryLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.DiaryLine, error)

	// ListLedgerStatements returns one statement per Asset/Liability account
	// having at least one posting inside [from, to], ordered by account
	// code, with postings in ascending chronological order and zero-valued
	// opening/final balances (the service derives those). search filters by
	// account display name or entry description, case-insensitive.
	ListLedgerStatements(ctx context.Context, from, to time.Time, search string) ([]domain.LedgerStatement, error)

	// MonthlyEntryCounts returns twelve per-month entry counts for the year.
	MonthlyEntryCounts(ctx context.Context, year int) ([]domain.MonthlyEntryCount, error)
}
