package models

import "time"

// FiscalYear represents a row of the fiscal_years table.
type FiscalYear struct {
	FiscalYearID string    `db:"fiscal_year_id"`
	CompanyID    string    `db:"company_id"`
	Name         string    `db:"name"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Granularity  string    `db:"granularity"`
	Status       string    `db:"status"`
	AuditFields
}

// FiscalPeriod represents a row of the fiscal_periods table.
type FiscalPeriod struct {
	PeriodID     string    `db:"period_id"`
	FiscalYearID string    `db:"fiscal_year_id"`
	CompanyID    string    `db:"company_id"`
	Name         string    `db:"name"`
	Sequence     int       `db:"sequence"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Status       string    `db:"status"`
	AuditFields
}
