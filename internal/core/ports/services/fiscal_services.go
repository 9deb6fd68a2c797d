package services

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// FiscalReaderSvc defines read operations for fiscal calendar data
type FiscalReaderSvc interface {
	// GetFiscalYearByID retrieves a fiscal year with its periods.
	GetFiscalYearByID(ctx context.Context, companyID string, fiscalYearID string, userID string) (*domain.FiscalYear, error)

	// ListFiscalYears retrieves all fiscal years for a company, newest first.
	ListFiscalYears(ctx context.Context, companyID string, userID string) ([]domain.FiscalYear, error)

	// GetPeriodForDate finds the fiscal period containing the given date.
	GetPeriodForDate(ctx context.Context, companyID string, date time.Time, userID string) (*domain.FiscalPeriod, error)
}

// FiscalWriterSvc defines write operations for fiscal calendar data
type FiscalWriterSvc interface {
	// CreateFiscalYear persists a new fiscal year and generates its periods
	// according to the requested granularity.
	CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error)

	// AddPeriod inserts a manually defined period into a fiscal year. The
	// period must lie inside the year and must not overlap a sibling.
	AddPeriod(ctx context.Context, companyID string, fiscalYearID string, req dto.AddFiscalPeriodRequest, userID string) (*domain.FiscalPeriod, error)

	// ClosePeriod transitions an open period to closed.
	ClosePeriod(ctx context.Context, companyID string, periodID string, userID string) (*domain.FiscalPeriod, error)

	// ReopenPeriod transitions a closed period back to open.
	// Only company admins may reopen, and archived periods stay closed.
	ReopenPeriod(ctx context.Context, companyID string, periodID string, userID string) (*domain.FiscalPeriod, error)

	// ArchivePeriod transitions a closed period to archived. Archival is
	// permanent; archived periods can never reopen.
	ArchivePeriod(ctx context.Context, companyID string, periodID string, userID string) (*domain.FiscalPeriod, error)

	// CloseFiscalYear closes a fiscal year once every period in it is closed.
	CloseFiscalYear(ctx context.Context, companyID string, fiscalYearID string, userID string) (*domain.FiscalYear, error)

	// ArchiveFiscalYear archives a closed fiscal year and all its periods.
	ArchiveFiscalYear(ctx context.Context, companyID string, fiscalYearID string, userID string) (*domain.FiscalYear, error)
}

// FiscalSvcFacade combines all fiscal-calendar service interfaces
type FiscalSvcFacade interface {
	FiscalReaderSvc
	FiscalWriterSvc
}
