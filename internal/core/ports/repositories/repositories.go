package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryWithTx
	EntryRepo     EntryRepository
	ReportingRepo ReportingRepository
}
