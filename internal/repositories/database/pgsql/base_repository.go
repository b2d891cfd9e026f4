package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altaerp/ledger_backend/internal/apperrors"
)

// BaseRepository provides common transaction plumbing for all repositories.
// It is the unit-of-work boundary: multi-row writes begin, commit or roll
// back here, and storage-level conflicts are classified as transient so the
// services can retry within their bounds.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Commit commits a transaction, classifying commit-time conflicts.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return classifyPgError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction. Safe to defer after a successful
// commit.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// Postgres error codes that mark a lost race rather than a definite failure.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// classifyPgError maps retryable Postgres failures onto
// apperrors.ErrConflict and wraps everything else verbatim.
func classifyPgError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%w: %s (%s): %v", apperrors.ErrConflict, msg, pgErr.Code, err)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// isUniqueViolation reports whether err is a unique-constraint violation on
// the named constraint (any constraint when name is empty).
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
