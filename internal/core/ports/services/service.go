package services

// ServiceContainer bundles the core services for the embedding application.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Entry     EntrySvcFacade
	Reporting ReportingSvcFacade
}
