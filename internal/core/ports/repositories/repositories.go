package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	UserRepo      UserRepositoryFacade
	JournalRepo   JournalRepositoryWithTx
	CompanyRepo   CompanyRepositoryFacade
	FiscalRepo    FiscalRepositoryFacade
	TaxCodeRepo   TaxCodeRepositoryFacade
	TaxReturnRepo TaxReturnRepositoryFacade
	SequenceRepo  SequenceRepository
	ReportingRepo ReportingRepository
}
