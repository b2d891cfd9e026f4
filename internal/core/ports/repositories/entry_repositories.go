package repositories

import (
	"context"

	"github.com/altaerp/ledger_backend/internal/core/domain"
)

// EntryRepository owns the write path for journal entries and postings.
type EntryRepository interface {
	// SaveEntry commits the entry and its postings as one atomic unit:
	// it locks the touched accounts, allocates the next sequence number,
	// derives each posting's resulting balance sequentially, rejects the
	// whole entry with apperrors.ErrNegativeBalance if any projected
	// balance dips below zero, and updates the stored account balances.
	// Transient commit races surface as apperrors.ErrConflict.
	// The returned entry carries the assigned sequence number; the returned
	// postings carry their resulting-balance snapshots.
	SaveEntry(ctx context.Context, entry domain.Entry, postings []domain.Posting) (*domain.Entry, []domain.Posting, error)
}
