package mapping

import (
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/models"
)

// ToModelTaxReturn converts a domain TaxReturn to a model TaxReturn
func ToModelTaxReturn(d domain.TaxReturn) models.TaxReturn {
	return models.TaxReturn{
		TaxReturnID:           d.TaxReturnID,
		CompanyID:             d.CompanyID,
		ReturnNo:              d.ReturnNo,
		StartDate:             d.StartDate,
		EndDate:               d.EndDate,
		DueDate:               d.DueDate,
		StandardRatedSupplies: d.StandardRatedSupplies,
		ZeroRatedSupplies:     d.ZeroRatedSupplies,
		ExemptSupplies:        d.ExemptSupplies,
		TotalSupplies:         d.TotalSupplies,
		TaxablePurchases:      d.TaxablePurchases,
		OutputTax:             d.OutputTax,
		InputTax:              d.InputTax,
		Adjustments:           d.Adjustments,
		NetTax:                d.NetTax,
		Status:                string(d.Status),
		SubmissionRef:         d.SubmissionRef,
		SubmittedAt:           PtrToNullTime(d.SubmittedAt),
		SettlementEntryID:     PtrToNullString(d.SettlementEntryID),
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxReturn converts a model TaxReturn to a domain TaxReturn
func ToDomainTaxReturn(m models.TaxReturn) domain.TaxReturn {
	return domain.TaxReturn{
		TaxReturnID:           m.TaxReturnID,
		CompanyID:             m.CompanyID,
		ReturnNo:              m.ReturnNo,
		StartDate:             m.StartDate,
		EndDate:               m.EndDate,
		DueDate:               m.DueDate,
		StandardRatedSupplies: m.StandardRatedSupplies,
		ZeroRatedSupplies:     m.ZeroRatedSupplies,
		ExemptSupplies:        m.ExemptSupplies,
		TotalSupplies:         m.TotalSupplies,
		TaxablePurchases:      m.TaxablePurchases,
		OutputTax:             m.OutputTax,
		InputTax:              m.InputTax,
		Adjustments:           m.Adjustments,
		NetTax:                m.NetTax,
		Status:                domain.TaxReturnStatus(m.Status),
		SubmissionRef:         m.SubmissionRef,
		SubmittedAt:           NullTimeToPtr(m.SubmittedAt),
		SettlementEntryID:     NullStringToPtr(m.SettlementEntryID),
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxReturnSlice converts a slice of model TaxReturns to domain TaxReturns
func ToDomainTaxReturnSlice(ms []models.TaxReturn) []domain.TaxReturn {
	ds := make([]domain.TaxReturn, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaxReturn(m)
	}
	return ds
}
