package services

import (
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Initialize company service first since other services depend on it
	// for membership checks and default data seeding.
	container.Company = NewCompanyService(
		repos.CompanyRepo,
		repos.AccountRepo,
		repos.TaxCodeRepo,
		repos.SequenceRepo,
	)

	// Create company authorizer for service dependencies
	companyAuthorizer := container.Company.(portssvc.CompanyAuthorizerSvc)

	// Create account service with dependencies using functional options
	container.Account = NewAccountServiceImpl(
		repos.AccountRepo,
		WithCompanyAuthorizerImpl(companyAuthorizer),
		WithJournalLineReaderImpl(repos.JournalRepo),
	)

	// Document numbering backs both journals and tax returns.
	documentNumbers := NewDocumentNumberService(repos.SequenceRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Journal = NewJournalService(
		repos.JournalRepo,
		container.Account,
		container.Company,
		repos.FiscalRepo,
		repos.TaxCodeRepo,
		documentNumbers,
	)
	container.Fiscal = NewFiscalService(repos.FiscalRepo, companyAuthorizer)
	container.TaxCode = NewTaxCodeService(repos.TaxCodeRepo, repos.AccountRepo, companyAuthorizer)
	container.TaxReturn = NewTaxReturnService(
		repos.TaxReturnRepo,
		repos.CompanyRepo,
		repos.AccountRepo,
		container.Journal,
		documentNumbers,
		companyAuthorizer,
	)
	container.Reporting = NewReportingService(repos.ReportingRepo, WithReportingCompanyAuthorizer(companyAuthorizer))

	// Initialize TokenService
	container.TokenService = NewTokenService(cfg, container.User)

	// Initialize GoogleOAuthHandlerSvcFacade
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
