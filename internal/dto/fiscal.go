package dto

import (
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// CreateFiscalYearRequest defines the data needed to create a fiscal year.
// Periods are generated from the date range and granularity.
type CreateFiscalYearRequest struct {
	Name        string                   `json:"name" binding:"required"`
	StartDate   time.Time                `json:"startDate" binding:"required"`
	EndDate     time.Time                `json:"endDate" binding:"required"`
	Granularity domain.PeriodGranularity `json:"granularity" binding:"required,oneof=MONTH QUARTER YEAR"`
}

// AddFiscalPeriodRequest defines a manually inserted period. The range must
// lie inside the parent year and must not overlap an existing period.
type AddFiscalPeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// FiscalPeriodResponse defines the data returned for a fiscal period.
type FiscalPeriodResponse struct {
	PeriodID     string              `json:"periodID"`
	FiscalYearID string              `json:"fiscalYearID"`
	Name         string              `json:"name"`
	Sequence     int                 `json:"sequence"`
	StartDate    time.Time           `json:"startDate"`
	EndDate      time.Time           `json:"endDate"`
	Status       domain.PeriodStatus `json:"status"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string                   `json:"fiscalYearID"`
	Name         string                   `json:"name"`
	StartDate    time.Time                `json:"startDate"`
	EndDate      time.Time                `json:"endDate"`
	Granularity  domain.PeriodGranularity `json:"granularity"`
	Status       domain.PeriodStatus      `json:"status"`
	Periods      []FiscalPeriodResponse   `json:"periods,omitempty"`
	CreatedAt    time.Time                `json:"createdAt"`
	CreatedBy    string                   `json:"createdBy"`
}

// ToFiscalPeriodResponse converts a domain.FiscalPeriod to its DTO form.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		PeriodID:     p.PeriodID,
		FiscalYearID: p.FiscalYearID,
		Name:         p.Name,
		Sequence:     p.Sequence,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Status:       p.Status,
	}
}

// ToFiscalYearResponse converts a domain.FiscalYear to its DTO form.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	resp := FiscalYearResponse{
		FiscalYearID: fy.FiscalYearID,
		Name:         fy.Name,
		StartDate:    fy.StartDate,
		EndDate:      fy.EndDate,
		Granularity:  fy.Granularity,
		Status:       fy.Status,
		CreatedAt:    fy.CreatedAt,
		CreatedBy:    fy.CreatedBy,
	}
	if len(fy.Periods) > 0 {
		resp.Periods = make([]FiscalPeriodResponse, len(fy.Periods))
		for i, p := range fy.Periods {
			resp.Periods[i] = ToFiscalPeriodResponse(&p)
		}
	}
	return resp
}

// ListFiscalYearsResponse wraps the list of fiscal years.
type ListFiscalYearsResponse struct {
	FiscalYears []FiscalYearResponse `json:"fiscalYears"`
}

// ToListFiscalYearsResponse converts a slice of domain.FiscalYear to its DTO form.
func ToListFiscalYearsResponse(years []domain.FiscalYear) ListFiscalYearsResponse {
	list := make([]FiscalYearResponse, len(years))
	for i, fy := range years {
		list[i] = ToFiscalYearResponse(&fy)
	}
	return ListFiscalYearsResponse{FiscalYears: list}
}
