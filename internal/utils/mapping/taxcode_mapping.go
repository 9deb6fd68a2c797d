package mapping

import (
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/models"
)

// ToModelTaxCode converts a domain TaxCode to a model TaxCode
func ToModelTaxCode(d domain.TaxCode) models.TaxCode {
	return models.TaxCode{
		TaxCodeID:   d.TaxCodeID,
		CompanyID:   d.CompanyID,
		Code:        d.Code,
		Name:        d.Name,
		TaxType:     string(d.TaxType),
		RatePercent: d.RatePercent,
		IsDefault:   d.IsDefault,
		IsActive:    d.IsActive,
		GLAccountID: PtrToNullString(d.GLAccountID),
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxCode converts a model TaxCode to a domain TaxCode
func ToDomainTaxCode(m models.TaxCode) domain.TaxCode {
	return domain.TaxCode{
		TaxCodeID:   m.TaxCodeID,
		CompanyID:   m.CompanyID,
		Code:        m.Code,
		Name:        m.Name,
		TaxType:     domain.TaxType(m.TaxType),
		RatePercent: m.RatePercent,
		IsDefault:   m.IsDefault,
		IsActive:    m.IsActive,
		GLAccountID: NullStringToPtr(m.GLAccountID),
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxCodeSlice converts a slice of model TaxCodes to domain TaxCodes
func ToDomainTaxCodeSlice(ms []models.TaxCode) []domain.TaxCode {
	ds := make([]domain.TaxCode, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaxCode(m)
	}
	return ds
}
