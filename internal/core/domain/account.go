package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account into one of the five fundamental categories.
// The category decides which side of an entry increases the account's balance.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsDebitNormal reports whether debits increase balances of this category.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a node in a company's chart of accounts. The chart is
// stored flat; the hierarchy lives in ParentAccountID references only.
type Account struct {
	AccountID          string          `json:"accountID"` // Primary Key (e.g., UUID)
	CompanyID          string          `json:"companyID"` // FK -> companies.company_id
	Code               string          `json:"code"`      // User-facing code, unique within the company
	Name               string          `json:"name"`
	AccountType        AccountType     `json:"accountType"`
	SubType            string          `json:"subType,omitempty"` // Free-form refinement, e.g. "CURRENT_ASSET"
	ParentAccountID    *string         `json:"parentAccountID,omitempty"`
	Description        string          `json:"description,omitempty"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceDate *time.Time      `json:"openingBalanceDate,omitempty"`
	IsActive           bool            `json:"isActive"`
	IsControlAccount   bool            `json:"isControlAccount"` // System-managed, e.g. GST clearing
	IsBankAccount      bool            `json:"isBankAccount"`
	Balance            decimal.Decimal `json:"balance"` // Opening balance plus signed posted activity
	AuditFields
}

// AccountNode is an account with its resolved children, produced when the
// flat chart is assembled into a tree. Children link downward only so the
// structure stays acyclic.
type AccountNode struct {
	Account  Account        `json:"account"`
	Children []*AccountNode `json:"children,omitempty"`
}
