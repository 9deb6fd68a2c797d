package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	companyRepo := newPgxCompanyRepository(dbPool)
	fiscalRepo := newPgxFiscalRepository(dbPool)
	taxCodeRepo := newPgxTaxCodeRepository(dbPool)
	taxReturnRepo := newPgxTaxReturnRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		UserRepo:      userRepo,
		JournalRepo:   journalRepo,
		CompanyRepo:   companyRepo,
		FiscalRepo:    fiscalRepo,
		TaxCodeRepo:   taxCodeRepo,
		TaxReturnRepo: taxReturnRepo,
		SequenceRepo:  sequenceRepo,
		ReportingRepo: reportingRepo,
	}
}
