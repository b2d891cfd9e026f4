package pgsql

import (
	portsrepo "github.com/altaerp/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool, accountRepo)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		EntryRepo:     entryRepo,
		ReportingRepo: reportingRepo,
	}
}
