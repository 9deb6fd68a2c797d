package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// TaxReturnReader defines read operations for tax return data
type TaxReturnReader interface {
	// FindTaxReturnByID retrieves a tax return by its unique identifier.
	FindTaxReturnByID(ctx context.Context, taxReturnID string) (*domain.TaxReturn, error)

	// ListTaxReturnsByCompany retrieves a paginated list of tax returns of a
	// company ordered by start date, newest first.
	ListTaxReturnsByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.TaxReturn, error)

	// FindOverlappingReturn returns a non-draft tax return whose window
	// intersects [start, end]. ErrNotFound means the window is free.
	FindOverlappingReturn(ctx context.Context, companyID string, start, end time.Time) (*domain.TaxReturn, error)
}

// TaxReturnWriter defines write operations for tax return data
type TaxReturnWriter interface {
	// SaveTaxReturn persists a new tax return.
	SaveTaxReturn(ctx context.Context, taxReturn domain.TaxReturn) error

	// UpdateTaxReturn updates an existing tax return.
	UpdateTaxReturn(ctx context.Context, taxReturn domain.TaxReturn) error
}

// TaxActivityAggregator aggregates posted journal activity by tax code
type TaxActivityAggregator interface {
	// AggregateTaxActivity sums posted journal lines per tax code over the
	// inclusive window [start, end]. Lines without a tax code are skipped.
	AggregateTaxActivity(ctx context.Context, companyID string, start, end time.Time) ([]domain.TaxActivityRow, error)
}

// TaxReturnRepositoryFacade combines all tax-return repository interfaces
// This is a facade for clients that need access to all operations
type TaxReturnRepositoryFacade interface {
	TaxReturnReader
	TaxReturnWriter
	TaxActivityAggregator
}
