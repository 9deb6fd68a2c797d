package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TaxReturn represents a row of the tax_returns table.
type TaxReturn struct {
	TaxReturnID           string          `db:"tax_return_id"`
	CompanyID             string          `db:"company_id"`
	ReturnNo              string          `db:"return_no"`
	StartDate             time.Time       `db:"start_date"`
	EndDate               time.Time       `db:"end_date"`
	DueDate               time.Time       `db:"due_date"`
	StandardRatedSupplies decimal.Decimal `db:"standard_rated_supplies"`
	ZeroRatedSupplies     decimal.Decimal `db:"zero_rated_supplies"`
	ExemptSupplies        decimal.Decimal `db:"exempt_supplies"`
	TotalSupplies         decimal.Decimal `db:"total_supplies"`
	TaxablePurchases      decimal.Decimal `db:"taxable_purchases"`
	OutputTax             decimal.Decimal `db:"output_tax"`
	InputTax              decimal.Decimal `db:"input_tax"`
	Adjustments           decimal.Decimal `db:"adjustments"`
	NetTax                decimal.Decimal `db:"net_tax"`
	Status                string          `db:"status"`
	SubmissionRef         string          `db:"submission_ref"`
	SubmittedAt           sql.NullTime    `db:"submitted_at"`
	SettlementEntryID     sql.NullString  `db:"settlement_entry_id"`
	AuditFields
}
