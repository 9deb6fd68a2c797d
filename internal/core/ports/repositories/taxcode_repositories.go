package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// TaxCodeReader defines read operations for tax code data
type TaxCodeReader interface {
	// FindTaxCodeByID retrieves a tax code by its unique identifier.
	FindTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error)

	// FindTaxCodeByCode retrieves a tax code by its short code within a company.
	FindTaxCodeByCode(ctx context.Context, companyID string, code string) (*domain.TaxCode, error)

	// FindTaxCodesByIDs retrieves multiple tax codes by their IDs.
	FindTaxCodesByIDs(ctx context.Context, taxCodeIDs []string) (map[string]domain.TaxCode, error)

	// ListTaxCodes retrieves all tax codes of a company, optionally only active ones.
	ListTaxCodes(ctx context.Context, companyID string, activeOnly bool) ([]domain.TaxCode, error)
}

// TaxCodeWriter defines write operations for tax code data
type TaxCodeWriter interface {
	// SaveTaxCode persists a new tax code.
	SaveTaxCode(ctx context.Context, taxCode domain.TaxCode) error

	// SaveTaxCodes persists several tax codes in one transaction. Used when
	// seeding a company's default set.
	SaveTaxCodes(ctx context.Context, taxCodes []domain.TaxCode) error

	// UpdateTaxCode updates an existing tax code's details.
	UpdateTaxCode(ctx context.Context, taxCode domain.TaxCode) error

	// DeactivateTaxCode marks a tax code as inactive.
	DeactivateTaxCode(ctx context.Context, taxCodeID string, userID string, now time.Time) error
}

// TaxCodeRepositoryFacade combines all tax-code repository interfaces
// This is a facade for clients that need access to all operations
type TaxCodeRepositoryFacade interface {
	TaxCodeReader
	TaxCodeWriter
}
