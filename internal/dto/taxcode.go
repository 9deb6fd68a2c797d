package dto

import (
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaxCodeRequest defines the data needed to create a tax code.
type CreateTaxCodeRequest struct {
	Code        string          `json:"code" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	TaxType     domain.TaxType  `json:"taxType" binding:"omitempty,oneof=GST WITHHOLDING"`
	RatePercent decimal.Decimal `json:"ratePercent"`
	GLAccountID *string         `json:"glAccountID"`
	Description string          `json:"description"`
	IsDefault   bool            `json:"isDefault"`
}

// UpdateTaxCodeRequest defines the data allowed for updating a tax code.
type UpdateTaxCodeRequest struct {
	Name        *string          `json:"name"`
	RatePercent *decimal.Decimal `json:"ratePercent"`
	GLAccountID *string          `json:"glAccountID"`
	Description *string          `json:"description"`
	IsDefault   *bool            `json:"isDefault"`
	IsActive    *bool            `json:"isActive"`
}

// TaxCodeResponse defines the data returned for a tax code.
type TaxCodeResponse struct {
	TaxCodeID   string          `json:"taxCodeID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	TaxType     domain.TaxType  `json:"taxType"`
	RatePercent decimal.Decimal `json:"ratePercent"`
	GLAccountID *string         `json:"glAccountID,omitempty"`
	Description string          `json:"description,omitempty"`
	IsDefault   bool            `json:"isDefault"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToTaxCodeResponse converts a domain.TaxCode to TaxCodeResponse DTO.
func ToTaxCodeResponse(tc *domain.TaxCode) TaxCodeResponse {
	return TaxCodeResponse{
		TaxCodeID:   tc.TaxCodeID,
		Code:        tc.Code,
		Name:        tc.Name,
		TaxType:     tc.TaxType,
		RatePercent: tc.RatePercent,
		GLAccountID: tc.GLAccountID,
		Description: tc.Description,
		IsDefault:   tc.IsDefault,
		IsActive:    tc.IsActive,
		CreatedAt:   tc.CreatedAt,
		CreatedBy:   tc.CreatedBy,
	}
}

// ListTaxCodesResponse wraps the list of tax codes.
type ListTaxCodesResponse struct {
	TaxCodes []TaxCodeResponse `json:"taxCodes"`
}

// ToListTaxCodesResponse converts a slice of domain.TaxCode to its DTO form.
func ToListTaxCodesResponse(codes []domain.TaxCode) ListTaxCodesResponse {
	list := make([]TaxCodeResponse, len(codes))
	for i, tc := range codes {
		list[i] = ToTaxCodeResponse(&tc)
	}
	return ListTaxCodesResponse{TaxCodes: list}
}
