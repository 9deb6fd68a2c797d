package services

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// TaxCodeReaderSvc defines read operations for tax code data
type TaxCodeReaderSvc interface {
	// GetTaxCodeByID retrieves a specific tax code by its ID.
	GetTaxCodeByID(ctx context.Context, companyID string, taxCodeID string, userID string) (*domain.TaxCode, error)

	// ListTaxCodes retrieves the tax codes for a company.
	// If activeOnly is true, deactivated codes are excluded.
	ListTaxCodes(ctx context.Context, companyID string, activeOnly bool, userID string) ([]domain.TaxCode, error)
}

// TaxCodeWriterSvc defines write operations for tax code data
type TaxCodeWriterSvc interface {
	// CreateTaxCode persists a new tax code.
	CreateTaxCode(ctx context.Context, companyID string, req dto.CreateTaxCodeRequest, userID string) (*domain.TaxCode, error)

	// UpdateTaxCode updates an existing tax code's details.
	UpdateTaxCode(ctx context.Context, companyID string, taxCodeID string, req dto.UpdateTaxCodeRequest, userID string) (*domain.TaxCode, error)

	// DeactivateTaxCode marks a tax code as inactive.
	DeactivateTaxCode(ctx context.Context, companyID string, taxCodeID string, userID string) error
}

// TaxCodeSvcFacade combines all tax-code service interfaces
type TaxCodeSvcFacade interface {
	TaxCodeReaderSvc
	TaxCodeWriterSvc
}
