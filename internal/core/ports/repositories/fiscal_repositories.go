package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal year data
type FiscalYearReader interface {
	// FindFiscalYearByID retrieves a fiscal year by its unique identifier.
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// ListFiscalYearsByCompany retrieves all fiscal years of a company ordered by start date.
	ListFiscalYearsByCompany(ctx context.Context, companyID string) ([]domain.FiscalYear, error)

	// FindOverlappingYear returns a fiscal year whose inclusive date range
	// intersects [start, end]. ErrNotFound means the range is free.
	FindOverlappingYear(ctx context.Context, companyID string, start, end time.Time) (*domain.FiscalYear, error)
}

// FiscalPeriodReader defines read operations for fiscal period data
type FiscalPeriodReader interface {
	// FindPeriodByID retrieves a fiscal period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodForDate returns the fiscal period covering the given date.
	// ErrNotFound means no period covers it.
	FindPeriodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriodsByYear retrieves all periods of a fiscal year ordered by sequence.
	ListPeriodsByYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error)
}

// FiscalWriter defines write operations for fiscal calendar data
type FiscalWriter interface {
	// SaveFiscalYearWithPeriods persists a fiscal year and its generated
	// periods in one transaction.
	SaveFiscalYearWithPeriods(ctx context.Context, year domain.FiscalYear, periods []domain.FiscalPeriod) error

	// SavePeriod persists a single manually added fiscal period.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// UpdatePeriodStatus transitions a single period to the given status.
	UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, userID string, now time.Time) error

	// UpdateYearStatus transitions a fiscal year and all of its periods
	// currently in fromStatus to the given status in one transaction.
	UpdateYearStatus(ctx context.Context, fiscalYearID string, fromStatus, toStatus domain.PeriodStatus, userID string, now time.Time) error
}

// FiscalRepositoryFacade combines all fiscal-calendar repository interfaces
// This is a facade for clients that need access to all operations
type FiscalRepositoryFacade interface {
	FiscalYearReader
	FiscalPeriodReader
	FiscalWriter
}

// FiscalRepositoryWithTx extends FiscalRepositoryFacade with transaction capabilities
type FiscalRepositoryWithTx interface {
	FiscalRepositoryFacade
	TransactionManager
}
