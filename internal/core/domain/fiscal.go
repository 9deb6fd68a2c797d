package domain

import "time"

// PeriodStatus captures the lifecycle state of a fiscal year or period.
type PeriodStatus string

const (
	PeriodOpen     PeriodStatus = "OPEN"     // Accepts postings
	PeriodClosed   PeriodStatus = "CLOSED"   // Rejects postings, may be reopened
	PeriodArchived PeriodStatus = "ARCHIVED" // Rejects postings, permanent
)

// PeriodGranularity decides how a fiscal year is tiled into periods.
type PeriodGranularity string

const (
	GranularityMonth   PeriodGranularity = "MONTH"
	GranularityQuarter PeriodGranularity = "QUARTER"
	GranularityYear    PeriodGranularity = "YEAR"
)

// FiscalYear is a company's accounting year. Its periods tile the inclusive
// date range with no gaps and no overlaps.
type FiscalYear struct {
	FiscalYearID string            `json:"fiscalYearID"` // Primary Key (e.g., UUID)
	CompanyID    string            `json:"companyID"`
	Name         string            `json:"name"` // e.g. "FY2026"
	StartDate    time.Time         `json:"startDate"`
	EndDate      time.Time         `json:"endDate"`
	Granularity  PeriodGranularity `json:"granularity"`
	Status       PeriodStatus      `json:"status"`
	Periods      []FiscalPeriod    `json:"periods,omitempty"`
	AuditFields
}

// Contains reports whether d falls inside the year's inclusive date range.
// Comparison is by calendar date, the time of day is ignored.
func (y FiscalYear) Contains(d time.Time) bool {
	return dateWithin(d, y.StartDate, y.EndDate)
}

// Overlaps reports whether the year's date range intersects [start, end],
// bounds inclusive on both sides.
func (y FiscalYear) Overlaps(start, end time.Time) bool {
	return !truncateToDate(end).Before(truncateToDate(y.StartDate)) &&
		!truncateToDate(start).After(truncateToDate(y.EndDate))
}

// FiscalPeriod is one slice of a fiscal year. Posting is gated on the status
// of the period covering the entry date.
type FiscalPeriod struct {
	PeriodID     string       `json:"periodID"` // Primary Key (e.g., UUID)
	FiscalYearID string       `json:"fiscalYearID"`
	CompanyID    string       `json:"companyID"`
	Name         string       `json:"name"`     // e.g. "2026-01" or "FY2026 Q2"
	Sequence     int          `json:"sequence"` // 1-based position within the year
	StartDate    time.Time    `json:"startDate"`
	EndDate      time.Time    `json:"endDate"`
	Status       PeriodStatus `json:"status"`
	AuditFields
}

// Contains reports whether d falls inside the period's inclusive date range.
// Comparison is by calendar date, the time of day is ignored.
func (p FiscalPeriod) Contains(d time.Time) bool {
	return dateWithin(d, p.StartDate, p.EndDate)
}

// IsOpen reports whether the period accepts postings.
func (p FiscalPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}

func dateWithin(d, start, end time.Time) bool {
	day := truncateToDate(d)
	return !day.Before(truncateToDate(start)) && !day.After(truncateToDate(end))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
