package services

import (
	portsrepo "github.com/altaerp/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/altaerp/ledger_backend/internal/core/ports/services"
	"github.com/altaerp/ledger_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountMaxRetries(cfg.MaxCommitRetries),
		WithAccountPageSize(cfg.DefaultPageSize),
	)

	container.Entry = NewEntryService(
		repos.EntryRepo,
		container.Account,
		WithEntryMaxRetries(cfg.MaxCommitRetries),
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		WithReportingPageSize(cfg.DefaultPageSize),
	)

	return container
}
