package services

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// TaxReturnReaderSvc defines read operations for tax return data
type TaxReturnReaderSvc interface {
	// GetTaxReturnByID retrieves a specific tax return by its ID.
	GetTaxReturnByID(ctx context.Context, companyID string, taxReturnID string, userID string) (*domain.TaxReturn, error)

	// ListTaxReturns retrieves a paginated list of tax returns for a company.
	ListTaxReturns(ctx context.Context, companyID string, limit int, offset int, userID string) ([]domain.TaxReturn, error)
}

// TaxReturnWriterSvc defines write operations for tax return data
type TaxReturnWriterSvc interface {
	// PrepareTaxReturn derives a draft GST return from posted journal activity
	// in the requested date range.
	PrepareTaxReturn(ctx context.Context, companyID string, req dto.PrepareTaxReturnRequest, userID string) (*domain.TaxReturn, error)

	// FinalizeTaxReturn marks a draft return as submitted and posts the
	// settlement entry that clears the GST control accounts.
	FinalizeTaxReturn(ctx context.Context, companyID string, taxReturnID string, req dto.FinalizeTaxReturnRequest, userID string) (*domain.TaxReturn, error)

	// AmendTaxReturn marks a submitted return as amended. The corrected
	// figures go on a replacement return; the amended one stays as filed.
	AmendTaxReturn(ctx context.Context, companyID string, taxReturnID string, req dto.AmendTaxReturnRequest, userID string) (*domain.TaxReturn, error)
}

// TaxReturnSvcFacade combines all tax-return service interfaces
type TaxReturnSvcFacade interface {
	TaxReturnReaderSvc
	TaxReturnWriterSvc
}
