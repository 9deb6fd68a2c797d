package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Account codes the tax return settlement relies on. Seeded for every
// company so a return can always be settled against them.
const (
	gstOutputAccountCode   = "2100"
	gstInputAccountCode    = "2110"
	gstClearingAccountCode = "2150"
)

type seedAccount struct {
	code       string
	name       string
	accType    domain.AccountType
	subType    string
	parentCode string
	isControl  bool
	isBank     bool
}

// defaultChart is the chart of accounts every new company starts with.
var defaultChart = []seedAccount{
	{code: "1000", name: "Cash at Bank", accType: domain.Asset, subType: "CURRENT_ASSET", isBank: true},
	{code: "1100", name: "Accounts Receivable", accType: domain.Asset, subType: "CURRENT_ASSET", isControl: true},
	{code: "1200", name: "Inventory", accType: domain.Asset, subType: "CURRENT_ASSET"},
	{code: "2000", name: "Accounts Payable", accType: domain.Liability, subType: "CURRENT_LIABILITY", isControl: true},
	{code: gstOutputAccountCode, name: "GST Output Tax", accType: domain.Liability, subType: "CURRENT_LIABILITY"},
	{code: gstInputAccountCode, name: "GST Input Tax", accType: domain.Asset, subType: "CURRENT_ASSET"},
	{code: gstClearingAccountCode, name: "GST Clearing", accType: domain.Liability, subType: "CURRENT_LIABILITY", isControl: true},
	{code: "3000", name: "Owner Capital", accType: domain.Equity, subType: "EQUITY"},
	{code: "3100", name: "Retained Earnings", accType: domain.Equity, subType: "EQUITY"},
	{code: "4000", name: "Sales Revenue", accType: domain.Revenue, subType: "OPERATING_REVENUE"},
	{code: "4100", name: "Service Revenue", accType: domain.Revenue, subType: "OPERATING_REVENUE"},
	{code: "5000", name: "Cost of Goods Sold", accType: domain.Expense, subType: "COST_OF_SALES"},
	{code: "6000", name: "Operating Expenses", accType: domain.Expense, subType: "OPERATING_EXPENSE"},
	{code: "6100", name: "Rent Expense", accType: domain.Expense, subType: "OPERATING_EXPENSE", parentCode: "6000"},
	{code: "6200", name: "Salaries Expense", accType: domain.Expense, subType: "OPERATING_EXPENSE", parentCode: "6000"},
	{code: "6300", name: "Utilities Expense", accType: domain.Expense, subType: "OPERATING_EXPENSE", parentCode: "6000"},
}

type seedTaxCode struct {
	code          string
	name          string
	ratePercent   string
	glAccountCode string
	isDefault     bool
	description   string
}

// defaultTaxCodes follows the Singapore GST categories. Blocked input tax has
// no GL account because it is never claimable and stays in the expense.
var defaultTaxCodes = []seedTaxCode{
	{code: domain.TaxCodeStandardRated, name: "Standard-Rated Supply", ratePercent: "9", glAccountCode: gstOutputAccountCode, isDefault: true, description: "Local supply of goods and services"},
	{code: domain.TaxCodeZeroRated, name: "Zero-Rated Supply", ratePercent: "0", glAccountCode: gstOutputAccountCode, description: "Exports and international services"},
	{code: domain.TaxCodeExempt, name: "Exempt Supply", ratePercent: "0", glAccountCode: gstOutputAccountCode, description: "Financial services and residential property"},
	{code: domain.TaxCodeTaxablePurchase, name: "Taxable Purchase", ratePercent: "9", glAccountCode: gstInputAccountCode, description: "Standard-rated purchases with claimable input tax"},
	{code: domain.TaxCodeBlockedPurchase, name: "Blocked Input Tax", ratePercent: "9", description: "Purchases with non-claimable input tax"},
}

// seedCompanyDefaults creates the default chart of accounts, tax codes and
// document sequences for a newly created company.
func (s *companyService) seedCompanyDefaults(ctx context.Context, companyID string, userID string, now time.Time) error {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	accountIDsByCode := make(map[string]string, len(defaultChart))
	for _, acc := range defaultChart {
		accountIDsByCode[acc.code] = uuid.NewString()
	}

	for _, acc := range defaultChart {
		var parentID *string
		if acc.parentCode != "" {
			id := accountIDsByCode[acc.parentCode]
			parentID = &id
		}

		account := domain.Account{
			AccountID:        accountIDsByCode[acc.code],
			CompanyID:        companyID,
			Code:             acc.code,
			Name:             acc.name,
			AccountType:      acc.accType,
			SubType:          acc.subType,
			ParentAccountID:  parentID,
			OpeningBalance:   decimal.Zero,
			IsActive:         true,
			IsControlAccount: acc.isControl,
			IsBankAccount:    acc.isBank,
			Balance:          decimal.Zero,
			AuditFields:      audit,
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", acc.code, err)
		}
	}

	taxCodes := make([]domain.TaxCode, 0, len(defaultTaxCodes))
	for _, tc := range defaultTaxCodes {
		rate, err := decimal.NewFromString(tc.ratePercent)
		if err != nil {
			return fmt.Errorf("invalid seed rate for tax code %s: %w", tc.code, err)
		}

		var glAccountID *string
		if tc.glAccountCode != "" {
			id := accountIDsByCode[tc.glAccountCode]
			glAccountID = &id
		}

		taxCodes = append(taxCodes, domain.TaxCode{
			TaxCodeID:   uuid.NewString(),
			CompanyID:   companyID,
			Code:        tc.code,
			Name:        tc.name,
			TaxType:     domain.TaxTypeGST,
			RatePercent: rate,
			IsDefault:   tc.isDefault,
			IsActive:    true,
			GLAccountID: glAccountID,
			Description: tc.description,
			AuditFields: audit,
		})
	}
	if err := s.taxCodeRepo.SaveTaxCodes(ctx, taxCodes); err != nil {
		return fmt.Errorf("failed to seed tax codes: %w", err)
	}

	sequences := []domain.DocumentSequence{
		{CompanyID: companyID, Kind: domain.SequenceJournal, Prefix: "JE-", Padding: 6, LastNumber: 0, LastUpdatedAt: now},
		{CompanyID: companyID, Kind: domain.SequenceTaxReturn, Prefix: "GST-", Padding: 4, LastNumber: 0, LastUpdatedAt: now},
	}
	for _, seq := range sequences {
		if err := s.sequenceRepo.EnsureSequence(ctx, seq); err != nil {
			return fmt.Errorf("failed to seed %s sequence: %w", seq.Kind, err)
		}
	}

	return nil
}
