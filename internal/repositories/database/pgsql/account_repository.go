package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/altaerp/ledger_backend/internal/apperrors"
	"github.com/altaerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/altaerp/ledger_backend/internal/core/ports/repositories"
	"github.com/altaerp/ledger_backend/internal/models"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements the combined account port.
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, name, display_name, description, account_type, parent_account_id, code, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Name:            d.Name,
		DisplayName:     d.DisplayName,
		Description:     d.Description,
		AccountType:     models.AccountType(d.AccountType),
		ParentAccountID: d.ParentAccountID,
		Code:            d.Code,
		Balance:         d.Balance,
		IsActive:        d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Name:            m.Name,
		DisplayName:     m.DisplayName,
		Description:     m.Description,
		AccountType:     domain.AccountType(m.AccountType),
		ParentAccountID: m.ParentAccountID,
		Code:            m.Code,
		Balance:         m.Balance,
		IsActive:        m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var parentID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.DisplayName,
		&m.Description,
		&m.AccountType,
		&parentID,
		&m.Code,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	m.ParentAccountID = parentID.String
	return m, nil
}

// SaveAccount inserts a new account. The code column carries a unique
// constraint; losing an allocation race there is transient (the service
// re-reads the highest sibling code and retries), while a duplicate name is
// a definite rejection.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := toModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	var parentID sql.NullString
	if modelAcc.ParentAccountID != "" {
		parentID = sql.NullString{String: modelAcc.ParentAccountID, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.DisplayName,
		modelAcc.Description,
		modelAcc.AccountType,
		parentID,
		modelAcc.Code,
		modelAcc.Balance,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "accounts_name_key") {
			return fmt.Errorf("%w: account named %q already exists", apperrors.ErrDuplicate, modelAcc.Name)
		}
		if isUniqueViolation(err, "accounts_code_key") {
			return fmt.Errorf("%w: account code %d already taken", apperrors.ErrConflict, modelAcc.Code)
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// UpdateAccountDetails persists name/display-name/description edits.
func (r *PgxAccountRepository) UpdateAccountDetails(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, display_name = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.DisplayName,
		account.Description,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "accounts_name_key") {
			return fmt.Errorf("%w: account named %q already exists", apperrors.ErrDuplicate, account.Name)
		}
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account with ID %s", apperrors.ErrNotFound, account.AccountID)
	}
	return nil
}

// FindAccountByID retrieves a single account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account with ID %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	acc := toDomainAccount(m)
	return &acc, nil
}

// FindAccountByName retrieves a single account by its normalized name key.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE name = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account named %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find account named %q: %w", name, err)
	}

	acc := toDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// simply absent from the result.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[m.AccountID] = toDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// ListAccounts returns one page of accounts ordered by code, plus the total
// row count. limit <= 0 disables the window.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, int64, error) {
	var totalCount int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts;`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, totalCount, nil
}

// HighestCodeInRange returns the highest account code within [low, high),
// or 0 when the range holds no accounts.
func (r *PgxAccountRepository) HighestCodeInRange(ctx context.Context, low, high int) (int, error) {
	query := `SELECT COALESCE(MAX(code), 0) FROM accounts WHERE code >= $1 AND code < $2;`

	var highest int
	if err := r.Pool.QueryRow(ctx, query, low, high).Scan(&highest); err != nil {
		return 0, fmt.Errorf("failed to find highest code in [%d, %d): %w", low, high, err)
	}
	return highest, nil
}

// HighestChildCode returns the highest code among direct children of
// parentID within [low, high), or 0 when none exist.
func (r *PgxAccountRepository) HighestChildCode(ctx context.Context, parentID string, low, high int) (int, error) {
	query := `
		SELECT COALESCE(MAX(code), 0) FROM accounts
		WHERE parent_account_id = $1 AND code >= $2 AND code < $3;
	`

	var highest int
	if err := r.Pool.QueryRow(ctx, query, parentID, low, high).Scan(&highest); err != nil {
		return 0, fmt.Errorf("failed to find highest child code of %s: %w", parentID, err)
	}
	return highest, nil
}

// FindAccountsByIDsForUpdate locks the account rows for the remainder of the
// transaction. Ordering by account_id gives every committer the same lock
// acquisition order, which keeps concurrent entries from deadlocking.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[m.AccountID] = toDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	for _, id := range accountIDs {
		if _, found := accounts[id]; !found {
			return nil, fmt.Errorf("%w: account with ID %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

// UpdateAccountBalancesInTx applies net balance deltas to accounts already
// locked in this transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	for accountID, delta := range balanceChanges {
		batch.Queue(query, accountID, delta, now, userID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range balanceChanges {
		tag, err := results.Exec()
		if err != nil {
			return classifyPgError(err, "failed to update account balance")
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account vanished during balance update", apperrors.ErrNotFound)
		}
	}
	return nil
}
