package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/altaerp/ledger_backend/internal/apperrors"
	"github.com/altaerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/altaerp/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/altaerp/ledger_backend/internal/core/ports/services"
	"github.com/altaerp/ledger_backend/internal/dto"
	"github.com/altaerp/ledger_backend/internal/utils/accounting"
)

var (
	// ErrInsufficientPostings is returned when fewer than two postings are
	// supplied.
	ErrInsufficientPostings = errors.New("entry must have at least two postings")
	// ErrUnbalancedEntry is returned when total debits and total credits
	// differ, or either side is zero.
	ErrUnbalancedEntry = errors.New("entry debits and credits do not balance")
	// ErrAccountNotFound is returned when a posting references an unknown
	// account.
	ErrAccountNotFound = errors.New("account not found")
)

// entryService validates and commits balanced journal entries. It exclusively
// owns the write path to account balances and to entry/posting rows.
type entryService struct {
	BaseService
	accountSvc portssvc.AccountSvcFacade
	entryRepo  portsrepo.EntryRepository
	maxRetries int
}

// EntryServiceOption is a functional option for configuring the entry service.
type EntryServiceOption func(*entryService)

// WithEntryMaxRetries bounds the retry loop around transient commit
// conflicts (duplicate sequence numbers, serialization failures).
func WithEntryMaxRetries(n int) EntryServiceOption {
	return func(s *entryService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// NewEntryService creates the journal entry service.
func NewEntryService(entryRepo portsrepo.EntryRepository, accountSvc portssvc.AccountSvcFacade, options ...EntryServiceOption) portssvc.EntrySvcFacade {
	svc := &entryService{
		accountSvc: accountSvc,
		entryRepo:  entryRepo,
		maxRetries: 3,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// CreateEntry validates and commits one balanced journal entry.
//
// Validation is fail-fast and free of side effects: posting count, strictly
// positive amounts, exact decimal debit/credit equality, account resolution,
// and a sequential non-negative balance projection across the entry's own
// postings. Only when every posting passes is the entry handed to the
// repository, which re-derives balances under row locks and commits entry,
// postings and balance updates atomically. Transient storage conflicts are
// retried up to the configured bound.
func (s *entryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, authorID string) (*domain.Entry, error) {
	if len(req.Postings) < 2 {
		return nil, ErrInsufficientPostings
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, p := range req.Postings {
		if p.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: posting amount must be positive for account %s", apperrors.ErrValidation, p.AccountID)
		}
		if p.Side == domain.Debit {
			totalDebit = totalDebit.Add(p.Amount)
		} else {
			totalCredit = totalCredit.Add(p.Amount)
		}
	}
	// Exact decimal comparison; a zero side means the entry is one-legged.
	if totalDebit.IsZero() || totalCredit.IsZero() || !totalDebit.Equal(totalCredit) {
		return nil, fmt.Errorf("%w: debits %s, credits %s", ErrUnbalancedEntry, totalDebit.String(), totalCredit.String())
	}

	accountIDs := make([]string, 0, len(req.Postings))
	for _, p := range req.Postings {
		accountIDs = append(accountIDs, p.AccountID)
	}
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry creation")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	// Project balances sequentially across this entry's own postings, so two
	// postings to the same account compose. The repository repeats this
	// under row locks; this pass rejects bad input before any write.
	projected := make(map[string]decimal.Decimal, len(accountsMap))
	for _, p := range req.Postings {
		acc, found := accountsMap[p.AccountID]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, p.AccountID)
		}
		if _, ok := projected[p.AccountID]; !ok {
			projected[p.AccountID] = acc.Balance
		}

		debit, credit := sideAmounts(p)
		delta, err := accounting.Delta(debit, credit, acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("internal error computing balance delta: %w", err)
		}
		newBalance := projected[p.AccountID].Add(delta)
		if newBalance.IsNegative() {
			return nil, fmt.Errorf("%w: account %s would fall to %s", apperrors.ErrNegativeBalance, acc.DisplayName, newBalance.String())
		}
		projected[p.AccountID] = newBalance
	}

	now := time.Now().UTC()
	entryDate, err := req.ResolveDate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if entryDate.IsZero() {
		entryDate = now
	}

	entry := domain.Entry{
		EntryID:     uuid.NewString(),
		EntryDate:   entryDate,
		Description: req.Description,
		AuthorID:    authorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     authorID,
			LastUpdatedAt: now,
			LastUpdatedBy: authorID,
		},
	}

	postings := make([]domain.Posting, len(req.Postings))
	for i, p := range req.Postings {
		debit, credit := sideAmounts(p)
		postings[i] = domain.Posting{
			PostingID: uuid.NewString(),
			EntryID:   entry.EntryID,
			AccountID: p.AccountID,
			Debit:     debit,
			Credit:    credit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     authorID,
				LastUpdatedAt: now,
				LastUpdatedBy: authorID,
			},
		}
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		saved, _, err := s.entryRepo.SaveEntry(ctx, entry, postings)
		if err == nil {
			s.LogInfo(ctx, "Entry committed",
				slog.String("entry_id", saved.EntryID),
				slog.Int64("sequence_number", saved.SequenceNumber),
				slog.Int("postings", len(postings)))
			return saved, nil
		}
		if !apperrors.IsTransient(err) {
			return nil, err
		}
		lastErr = err
		s.LogWarn(ctx, "Entry commit conflicted, retrying",
			slog.String("entry_id", entry.EntryID), slog.Int("attempt", attempt))
	}
	return nil, fmt.Errorf("entry commit kept conflicting after %d attempts: %w", s.maxRetries, lastErr)
}

// sideAmounts splits a posting input into its debit and credit columns.
func sideAmounts(p dto.PostingInput) (debit, credit decimal.Decimal) {
	if p.Side == domain.Debit {
		return p.Amount, decimal.Zero
	}
	return decimal.Zero, p.Amount
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
