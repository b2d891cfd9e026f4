package repositories

import (
	"context"
	"time"

	"github.com/altaerp/ledger_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepository defines persistence operations for the chart of accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account. A lost race on the unique code
	// column surfaces as apperrors.ErrConflict so the caller can re-allocate
	// and retry; a duplicate name surfaces as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountDetails persists name/display-name/description edits.
	UpdateAccountDetails(ctx context.Context, account domain.Account) error

	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns one page of accounts ordered by code, plus the
	// total row count for pagination.
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, int64, error)

	// HighestCodeInRange returns the highest account code within
	// [low, high), or 0 when the range is empty.
	HighestCodeInRange(ctx context.Context, low, high int) (int, error)

	// HighestChildCode returns the highest code among direct children of
	// parentID whose code lies within [low, high), or 0 when none exist.
	HighestChildCode(ctx context.Context, parentID string, low, high int) (int, error)
}

// AccountTxRepository exposes the account operations that participate in an
// entry-commit transaction.
type AccountTxRepository interface {
	// FindAccountsByIDsForUpdate locks the account rows for the duration of
	// the transaction and returns them keyed by ID. Missing IDs are an
	// apperrors.ErrNotFound.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies net balance deltas to the locked
	// accounts.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryWithTx combines plain and transactional account access.
type AccountRepositoryWithTx interface {
	AccountRepository
	AccountTxRepository
}
