package repositories

// RepositoryProvider bundles the storage ports handed to the service layer.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	CustomerRepo    CustomerRepositoryFacade
	CountryRepo     CountryRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	ReportingRepo   ReportingRepositoryFacade
}
