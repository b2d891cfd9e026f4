package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/altaerp/ledger_backend/internal/apperrors"
	"github.com/altaerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/altaerp/ledger_backend/internal/core/ports/repositories"
	"github.com/altaerp/ledger_backend/internal/models"
	"github.com/altaerp/ledger_backend/internal/utils/accounting"
)

type PgxEntryRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTxRepository
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTxRepository) *PgxEntryRepository {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.EntryRepository = (*PgxEntryRepository)(nil)

// SaveEntry commits the entry and its postings atomically.
//
// Inside one transaction it locks the touched accounts in a stable order,
// allocates the next sequence number, walks the postings in input order
// deriving each resulting balance from the locked state, and writes entry,
// postings and balance updates together. Any projected balance below zero
// aborts the whole entry with apperrors.ErrNegativeBalance. A concurrent
// committer taking the same sequence number trips the unique constraint at
// insert or commit time and surfaces as apperrors.ErrConflict for the
// service's retry loop.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry, postings []domain.Posting) (*domain.Entry, []domain.Posting, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	accountIDs := make([]string, 0, len(postings))
	seen := make(map[string]struct{}, len(postings))
	for _, p := range postings {
		if _, ok := seen[p.AccountID]; !ok {
			seen[p.AccountID] = struct{}{}
			accountIDs = append(accountIDs, p.AccountID)
		}
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, nil, err
	}

	// The MAX+1 read is racy on its own; the unique constraint on
	// sequence_number turns the race into a retryable conflict.
	var sequenceNumber int64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(sequence_number), 0) + 1 FROM entries;`).Scan(&sequenceNumber); err != nil {
		return nil, nil, fmt.Errorf("failed to allocate sequence number: %w", err)
	}
	entry.SequenceNumber = sequenceNumber

	// Derive resulting balances sequentially so repeated postings to the
	// same account compose within this entry.
	running := make(map[string]decimal.Decimal, len(lockedAccounts))
	balanceChanges := make(map[string]decimal.Decimal, len(lockedAccounts))
	for i := range postings {
		p := &postings[i]
		acc := lockedAccounts[p.AccountID]
		if _, ok := running[p.AccountID]; !ok {
			running[p.AccountID] = acc.Balance
		}

		delta, err := accounting.Delta(p.Debit, p.Credit, acc.AccountType)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to compute balance delta for account %s: %w", p.AccountID, err)
		}
		newBalance := running[p.AccountID].Add(delta)
		if newBalance.IsNegative() {
			return nil, nil, fmt.Errorf("%w: account %s would fall to %s", apperrors.ErrNegativeBalance, acc.DisplayName, newBalance.String())
		}
		running[p.AccountID] = newBalance
		balanceChanges[p.AccountID] = balanceChanges[p.AccountID].Add(delta)
		p.ResultingBalance = newBalance
	}

	modelEntry := models.Entry{
		EntryID:        entry.EntryID,
		SequenceNumber: entry.SequenceNumber,
		EntryDate:      entry.EntryDate,
		Description:    entry.Description,
		AuthorID:       entry.AuthorID,
		AuditFields: models.AuditFields{
			CreatedAt:     entry.CreatedAt,
			CreatedBy:     entry.CreatedBy,
			LastUpdatedAt: entry.LastUpdatedAt,
			LastUpdatedBy: entry.LastUpdatedBy,
		},
	}
	entryQuery := `
		INSERT INTO entries (entry_id, sequence_number, entry_date, description, author_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.SequenceNumber,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.AuthorID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "entries_sequence_number_key") {
			return nil, nil, fmt.Errorf("%w: sequence number %d already taken", apperrors.ErrConflict, entry.SequenceNumber)
		}
		return nil, nil, fmt.Errorf("failed to insert entry %s: %w", entry.EntryID, err)
	}

	postingQuery := `
		INSERT INTO postings (posting_id, entry_id, line_no, account_id, debit, credit, resulting_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for i, p := range postings {
		modelPosting := models.Posting{
			PostingID:        p.PostingID,
			EntryID:          p.EntryID,
			LineNo:           i,
			AccountID:        p.AccountID,
			Debit:            p.Debit,
			Credit:           p.Credit,
			ResultingBalance: p.ResultingBalance,
			AuditFields: models.AuditFields{
				CreatedAt:     p.CreatedAt,
				CreatedBy:     p.CreatedBy,
				LastUpdatedAt: p.LastUpdatedAt,
				LastUpdatedBy: p.LastUpdatedBy,
			},
		}
		batch.Queue(postingQuery,
			modelPosting.PostingID,
			modelPosting.EntryID,
			modelPosting.LineNo,
			modelPosting.AccountID,
			modelPosting.Debit,
			modelPosting.Credit,
			modelPosting.ResultingBalance,
			modelPosting.CreatedAt,
			modelPosting.CreatedBy,
			modelPosting.LastUpdatedAt,
			modelPosting.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range postings {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return nil, nil, classifyPgError(err, "failed to insert posting")
		}
	}
	if err := results.Close(); err != nil {
		return nil, nil, fmt.Errorf("failed to close posting batch: %w", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, entry.CreatedBy, entry.LastUpdatedAt); err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &entry, postings, nil
}
