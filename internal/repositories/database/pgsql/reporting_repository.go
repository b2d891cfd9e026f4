package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altaerp/ledger_backend/internal/apperrors"
	"github.com/altaerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/altaerp/ledger_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates the read-only repository backing the
// diary and ledger reports.
func newPgxReportingRepository(pool *pgxpool.Pool) *PgxReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

const entryColumns = `entry_id, sequence_number, entry_date, description, author_id, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (domain.Entry, error) {
	var e domain.Entry
	err := row.Scan(
		&e.EntryID,
		&e.SequenceNumber,
		&e.EntryDate,
		&e.Description,
		&e.AuthorID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// ListEntriesInRange returns entries dated inside [from, to], ordered by
// entry date with the sequence number as tie-breaker. limit <= 0 disables
// the LIMIT/OFFSET window.
func (r *PgxReportingRepository) ListEntriesInRange(ctx context.Context, from, to time.Time, limit, offset int, descending bool) ([]domain.Entry, error) {
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	query := fmt.Sprintf(`
		SELECT `+entryColumns+` FROM entries
		WHERE entry_date >= $1 AND entry_date <= $2
		ORDER BY entry_date %s, sequence_number %s`, direction, direction)
	args := []any{from, to}
	if limit > 0 {
		query += ` LIMIT $3 OFFSET $4`
		args = append(args, limit, offset)
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}

// CountEntriesInRange counts entries dated inside [from, to].
func (r *PgxReportingRepository) CountEntriesInRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM entries WHERE entry_date >= $1 AND entry_date <= $2;`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// FindEntryByID retrieves a single entry.
func (r *PgxReportingRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`
	e, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entry with ID %s", apperrors.ErrNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return &e, nil
}

// FindDiaryLinesByEntryIDs returns each entry's postings joined with the
// account display name, keyed by entry ID. Postings keep their submission
// order within an entry.
func (r *PgxReportingRepository) FindDiaryLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.DiaryLine, error) {
	lines := make(map[string][]domain.DiaryLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return lines, nil
	}

	query := `
		SELECT p.posting_id, p.entry_id, p.account_id, p.debit, p.credit, p.resulting_balance,
		       p.created_at, p.created_by, p.last_updated_at, p.last_updated_by,
		       a.display_name
		FROM postings p
		JOIN accounts a ON a.account_id = p.account_id
		WHERE p.entry_id = ANY($1)
		ORDER BY p.entry_id, p.line_no;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query diary lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.DiaryLine
		err := rows.Scan(
			&l.PostingID,
			&l.EntryID,
			&l.AccountID,
			&l.Debit,
			&l.Credit,
			&l.ResultingBalance,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
			&l.AccountName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan diary line: %w", err)
		}
		lines[l.EntryID] = append(lines[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating diary lines: %w", err)
	}
	return lines, nil
}

// ListLedgerStatements returns one statement per balance-sheet account
// (Asset/Liability) holding at least one posting inside [from, to], ordered
// by account code, with postings ascending by entry date and sequence.
// Opening and final balances are left zero for the caller to derive from the
// resulting-balance snapshots. search matches account display names and
// entry descriptions case-insensitively.
func (r *PgxReportingRepository) ListLedgerStatements(ctx context.Context, from, to time.Time, search string) ([]domain.LedgerStatement, error) {
	query := `
		SELECT a.account_id, a.display_name, a.code, a.account_type,
		       p.posting_id, p.entry_id, p.account_id, p.debit, p.credit, p.resulting_balance,
		       p.created_at, p.created_by, p.last_updated_at, p.last_updated_by,
		       e.sequence_number, e.entry_date, e.description
		FROM postings p
		JOIN accounts a ON a.account_id = p.account_id
		JOIN entries e ON e.entry_id = p.entry_id
		WHERE a.account_type IN ('ASSET', 'LIABILITY')
		  AND e.entry_date >= $1 AND e.entry_date <= $2
		  AND ($3 = '' OR a.display_name ILIKE '%' || $3 || '%' OR e.description ILIKE '%' || $3 || '%')
		ORDER BY a.code ASC, e.entry_date ASC, e.sequence_number ASC, p.line_no ASC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, search)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger statements: %w", err)
	}
	defer rows.Close()

	statements := make([]domain.LedgerStatement, 0)
	var current *domain.LedgerStatement
	for rows.Next() {
		var (
			accountID   string
			accountName string
			accountCode int
			accountType domain.AccountType
			line        domain.LedgerLine
		)
		err := rows.Scan(
			&accountID,
			&accountName,
			&accountCode,
			&accountType,
			&line.PostingID,
			&line.EntryID,
			&line.AccountID,
			&line.Debit,
			&line.Credit,
			&line.ResultingBalance,
			&line.CreatedAt,
			&line.CreatedBy,
			&line.LastUpdatedAt,
			&line.LastUpdatedBy,
			&line.EntrySequence,
			&line.EntryDate,
			&line.EntryDescription,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger line: %w", err)
		}

		if current == nil || current.AccountID != accountID {
			statements = append(statements, domain.LedgerStatement{
				AccountID:   accountID,
				AccountName: accountName,
				AccountCode: accountCode,
				AccountType: accountType,
			})
			current = &statements[len(statements)-1]
		}
		current.Postings = append(current.Postings, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines: %w", err)
	}
	return statements, nil
}

// MonthlyEntryCounts returns twelve per-month entry counts for the year,
// including months with zero entries.
func (r *PgxReportingRepository) MonthlyEntryCounts(ctx context.Context, year int) ([]domain.MonthlyEntryCount, error) {
	query := `
		SELECT EXTRACT(MONTH FROM entry_date)::int AS month, COUNT(*)
		FROM entries
		WHERE EXTRACT(YEAR FROM entry_date) = $1
		GROUP BY month
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries by month: %w", err)
	}
	defer rows.Close()

	byMonth := make(map[int]int64, 12)
	for rows.Next() {
		var month int
		var count int64
		if err := rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("failed to scan monthly count: %w", err)
		}
		byMonth[month] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly counts: %w", err)
	}

	counts := make([]domain.MonthlyEntryCount, 12)
	for m := 1; m <= 12; m++ {
		counts[m-1] = domain.MonthlyEntryCount{Month: time.Month(m), Count: byMonth[m]}
	}
	return counts, nil
}
