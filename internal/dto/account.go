package dto

import (
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code               string             `json:"code" binding:"required"`
	Name               string             `json:"name" binding:"required"`
	AccountType        domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	SubType            string             `json:"subType"`
	ParentAccountID    *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	Description        string             `json:"description"`     // Optional
	OpeningBalance     *decimal.Decimal   `json:"openingBalance"`
	OpeningBalanceDate *time.Time         `json:"openingBalanceDate"`
	IsControlAccount   bool               `json:"isControlAccount"`
	IsBankAccount      bool               `json:"isBankAccount"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// AccountType and ParentAccountID are structural and require an admin role.
type UpdateAccountRequest struct {
	Name            *string             `json:"name"`        // Optional: New name
	SubType         *string             `json:"subType"`     // Optional: New sub type
	Description     *string             `json:"description"` // Optional: New description
	IsActive        *bool               `json:"isActive"`    // Optional: New active status
	AccountType     *domain.AccountType `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string             `json:"parentAccountID"` // Optional: New parent account
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID        string             `json:"accountID"`
	Code             string             `json:"code"`
	Name             string             `json:"name"`
	AccountType      domain.AccountType `json:"accountType"`
	SubType          string             `json:"subType,omitempty"`
	ParentAccountID  *string            `json:"parentAccountID,omitempty"`
	Description      string             `json:"description,omitempty"`
	OpeningBalance   decimal.Decimal    `json:"openingBalance"`
	Balance          decimal.Decimal    `json:"balance"`
	IsActive         bool               `json:"isActive"`
	IsControlAccount bool               `json:"isControlAccount"`
	IsBankAccount    bool               `json:"isBankAccount"`
	CreatedAt        time.Time          `json:"createdAt"`
	CreatedBy        string             `json:"createdBy"`
	LastUpdatedAt    time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy    string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		Code:             acc.Code,
		Name:             acc.Name,
		AccountType:      acc.AccountType,
		SubType:          acc.SubType,
		ParentAccountID:  acc.ParentAccountID,
		Description:      acc.Description,
		OpeningBalance:   acc.OpeningBalance,
		Balance:          acc.Balance,
		IsActive:         acc.IsActive,
		IsControlAccount: acc.IsControlAccount,
		IsBankAccount:    acc.IsBankAccount,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
		LastUpdatedAt:    acc.LastUpdatedAt,
		LastUpdatedBy:    acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc) // Reuse the single converter
	}
	return res
}

// AccountNodeResponse is one node of the chart-of-accounts tree.
type AccountNodeResponse struct {
	Account  AccountResponse       `json:"account"`
	Children []AccountNodeResponse `json:"children"`
}

// ToAccountTreeResponse converts domain account nodes to their DTO form.
func ToAccountTreeResponse(nodes []*domain.AccountNode) []AccountNodeResponse {
	res := make([]AccountNodeResponse, len(nodes))
	for i, node := range nodes {
		res[i] = AccountNodeResponse{
			Account:  ToAccountResponse(&node.Account),
			Children: ToAccountTreeResponse(node.Children),
		}
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      *string         `json:"asOf,omitempty"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
