package domain

import "github.com/shopspring/decimal"

// TaxType distinguishes the tax regimes a tax code can belong to.
type TaxType string

const (
	TaxTypeGST         TaxType = "GST"
	TaxTypeWithholding TaxType = "WITHHOLDING"
)

// Classification codes recognised by the tax return engine. Codes outside
// this set are carried on lines but ignored when a GST return is prepared.
const (
	TaxCodeStandardRated   = "SR" // Standard-rated supply, output tax applies
	TaxCodeZeroRated       = "ZR" // Zero-rated supply
	TaxCodeExempt          = "ES" // Exempt supply
	TaxCodeTaxablePurchase = "TX" // Taxable purchase, input tax claimable
	TaxCodeBlockedPurchase = "BL" // Taxable purchase, input tax never claimable
)

// TaxCode describes how a line's tax amount is computed and reported.
type TaxCode struct {
	TaxCodeID   string          `json:"taxCodeID"` // Primary Key (e.g., UUID)
	CompanyID   string          `json:"companyID"`
	Code        string          `json:"code"` // Short classification code, unique within the company
	Name        string          `json:"name"`
	TaxType     TaxType         `json:"taxType"`
	RatePercent decimal.Decimal `json:"ratePercent"` // e.g. 9 for 9% GST
	IsDefault   bool            `json:"isDefault"`   // Preselected for new lines of the matching kind
	IsActive    bool            `json:"isActive"`
	GLAccountID *string         `json:"glAccountID,omitempty"` // Account the tax amount is booked against
	Description string          `json:"description,omitempty"`
	AuditFields
}
