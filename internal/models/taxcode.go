package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// TaxCode represents a row of the tax_codes table.
type TaxCode struct {
	TaxCodeID   string          `db:"tax_code_id"`
	CompanyID   string          `db:"company_id"`
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	TaxType     string          `db:"tax_type"`
	RatePercent decimal.Decimal `db:"rate_percent"`
	IsDefault   bool            `db:"is_default"`
	IsActive    bool            `db:"is_active"`
	GLAccountID sql.NullString  `db:"gl_account_id"`
	Description string          `db:"description"`
	AuditFields
}
