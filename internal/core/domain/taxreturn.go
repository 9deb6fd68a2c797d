package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxReturnStatus captures the lifecycle state of a tax return.
type TaxReturnStatus string

const (
	TaxReturnDraft     TaxReturnStatus = "DRAFT"
	TaxReturnSubmitted TaxReturnStatus = "SUBMITTED"
	TaxReturnAmended   TaxReturnStatus = "AMENDED"
)

// TaxReturn is a GST F5-style summary derived from the posted journal entries
// of a reporting window. Box values are snapshots; amending posted data after
// submission requires a new return.
type TaxReturn struct {
	TaxReturnID string    `json:"taxReturnID"` // Primary Key (e.g., UUID)
	CompanyID   string    `json:"companyID"`
	ReturnNo    string    `json:"returnNo"` // Sequential document number, e.g. GST-000007
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	DueDate     time.Time `json:"dueDate"` // Last day of the month following the period end

	StandardRatedSupplies decimal.Decimal `json:"standardRatedSupplies"` // Box 1
	ZeroRatedSupplies     decimal.Decimal `json:"zeroRatedSupplies"`     // Box 2
	ExemptSupplies        decimal.Decimal `json:"exemptSupplies"`        // Box 3
	TotalSupplies         decimal.Decimal `json:"totalSupplies"`         // Box 4 = 1 + 2 + 3
	TaxablePurchases      decimal.Decimal `json:"taxablePurchases"`      // Box 5
	OutputTax             decimal.Decimal `json:"outputTax"`             // Box 6
	InputTax              decimal.Decimal `json:"inputTax"`              // Box 7
	Adjustments           decimal.Decimal `json:"adjustments"`           // Manual corrections carried into box 8
	NetTax                decimal.Decimal `json:"netTax"`                // Box 8 = 6 - 7 + adjustments; positive is payable

	Status            TaxReturnStatus `json:"status"`
	SubmissionRef     string          `json:"submissionRef,omitempty"` // Filing reference from the tax authority
	SubmittedAt       *time.Time      `json:"submittedAt,omitempty"`
	SettlementEntryID *string         `json:"settlementEntryID,omitempty"` // Journal entry moving net tax to the clearing account
	AuditFields
}

// IsPayable reports whether the return results in tax owed to the authority.
func (r TaxReturn) IsPayable() bool {
	return r.NetTax.IsPositive()
}

// TaxActivityRow aggregates posted journal line activity for one tax code and
// account category over a reporting window. Reversed entries and their mirrors
// both contribute, so an in-range reversal pair nets to zero.
type TaxActivityRow struct {
	TaxCode      string          `json:"taxCode"`
	AccountType  AccountType     `json:"accountType"`
	DebitTotal   decimal.Decimal `json:"debitTotal"`
	CreditTotal  decimal.Decimal `json:"creditTotal"`
	TaxOnDebits  decimal.Decimal `json:"taxOnDebits"`
	TaxOnCredits decimal.Decimal `json:"taxOnCredits"`
}
