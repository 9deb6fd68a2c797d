package mapping

import (
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/models"
)

// ToModelFiscalYear converts a domain FiscalYear to a model FiscalYear.
// Periods are mapped separately; they live in their own table.
func ToModelFiscalYear(d domain.FiscalYear) models.FiscalYear {
	return models.FiscalYear{
		FiscalYearID: d.FiscalYearID,
		CompanyID:    d.CompanyID,
		Name:         d.Name,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Granularity:  string(d.Granularity),
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalYear converts a model FiscalYear to a domain FiscalYear.
func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID: m.FiscalYearID,
		CompanyID:    m.CompanyID,
		Name:         m.Name,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Granularity:  domain.PeriodGranularity(m.Granularity),
		Status:       domain.PeriodStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFiscalYearSlice converts a slice of model FiscalYears to domain FiscalYears
func ToDomainFiscalYearSlice(ms []models.FiscalYear) []domain.FiscalYear {
	ds := make([]domain.FiscalYear, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFiscalYear(m)
	}
	return ds
}

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod.
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:     d.PeriodID,
		FiscalYearID: d.FiscalYearID,
		CompanyID:    d.CompanyID,
		Name:         d.Name,
		Sequence:     d.Sequence,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod.
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:     m.PeriodID,
		FiscalYearID: m.FiscalYearID,
		CompanyID:    m.CompanyID,
		Name:         m.Name,
		Sequence:     m.Sequence,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Status:       domain.PeriodStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFiscalPeriodSlice converts a slice of model FiscalPeriods to domain FiscalPeriods
func ToDomainFiscalPeriodSlice(ms []models.FiscalPeriod) []domain.FiscalPeriod {
	ds := make([]domain.FiscalPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFiscalPeriod(m)
	}
	return ds
}
