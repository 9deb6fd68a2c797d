package dto

import (
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PrepareTaxReturnRequest defines the reporting period to derive a GST return for.
type PrepareTaxReturnRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// FinalizeTaxReturnRequest defines the data supplied when submitting a return.
type FinalizeTaxReturnRequest struct {
	SubmissionRef string `json:"submissionRef"`
}

// AmendTaxReturnRequest defines the data supplied when flagging a submitted
// return as amended. The reason is kept for the audit trail.
type AmendTaxReturnRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TaxReturnResponse defines the data returned for a GST return.
// Box numbering follows the GST F5 form.
type TaxReturnResponse struct {
	TaxReturnID           string          `json:"taxReturnID"`
	ReturnNo              string          `json:"returnNo"`
	StartDate             time.Time       `json:"startDate"`
	EndDate               time.Time       `json:"endDate"`
	DueDate               time.Time       `json:"dueDate"`
	StandardRatedSupplies decimal.Decimal `json:"standardRatedSupplies"` // Box 1
	ZeroRatedSupplies     decimal.Decimal `json:"zeroRatedSupplies"`     // Box 2
	ExemptSupplies        decimal.Decimal `json:"exemptSupplies"`        // Box 3
	TotalSupplies         decimal.Decimal `json:"totalSupplies"`         // Box 4
	TaxablePurchases      decimal.Decimal `json:"taxablePurchases"`      // Box 5
	OutputTax             decimal.Decimal `json:"outputTax"`             // Box 6
	InputTax              decimal.Decimal `json:"inputTax"`              // Box 7
	Adjustments           decimal.Decimal `json:"adjustments"`
	NetTax                decimal.Decimal `json:"netTax"` // Box 8
	Status                string          `json:"status"`
	SubmissionRef         string          `json:"submissionRef,omitempty"`
	SubmittedAt           *time.Time      `json:"submittedAt,omitempty"`
	SettlementEntryID     *string         `json:"settlementEntryID,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	CreatedBy             string          `json:"createdBy"`
}

// ToTaxReturnResponse converts a domain.TaxReturn to TaxReturnResponse DTO.
func ToTaxReturnResponse(tr *domain.TaxReturn) TaxReturnResponse {
	return TaxReturnResponse{
		TaxReturnID:           tr.TaxReturnID,
		ReturnNo:              tr.ReturnNo,
		StartDate:             tr.StartDate,
		EndDate:               tr.EndDate,
		DueDate:               tr.DueDate,
		StandardRatedSupplies: tr.StandardRatedSupplies,
		ZeroRatedSupplies:     tr.ZeroRatedSupplies,
		ExemptSupplies:        tr.ExemptSupplies,
		TotalSupplies:         tr.TotalSupplies,
		TaxablePurchases:      tr.TaxablePurchases,
		OutputTax:             tr.OutputTax,
		InputTax:              tr.InputTax,
		Adjustments:           tr.Adjustments,
		NetTax:                tr.NetTax,
		Status:                string(tr.Status),
		SubmissionRef:         tr.SubmissionRef,
		SubmittedAt:           tr.SubmittedAt,
		SettlementEntryID:     tr.SettlementEntryID,
		CreatedAt:             tr.CreatedAt,
		CreatedBy:             tr.CreatedBy,
	}
}

// FinalizeTaxReturnResponse wraps the finalized return. SettlementWarning is
// set when the return was submitted but the settlement journal entry could
// not be created and must be entered manually.
type FinalizeTaxReturnResponse struct {
	TaxReturn         TaxReturnResponse `json:"taxReturn"`
	SettlementWarning string            `json:"settlementWarning,omitempty"`
}

// ListTaxReturnsResponse wraps the list of tax returns.
type ListTaxReturnsResponse struct {
	TaxReturns []TaxReturnResponse `json:"taxReturns"`
}

// ToListTaxReturnsResponse converts a slice of domain.TaxReturn to its DTO form.
func ToListTaxReturnsResponse(returns []domain.TaxReturn) ListTaxReturnsResponse {
	list := make([]TaxReturnResponse, len(returns))
	for i, tr := range returns {
		list[i] = ToTaxReturnResponse(&tr)
	}
	return ListTaxReturnsResponse{TaxReturns: list}
}
