package services

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its chart-of-accounts code.
	GetAccountByCode(ctx context.Context, companyID string, code string, userID string) (*domain.Account, error)

	// GetAccountByIDs retrieves multiple accounts by their IDs.
	GetAccountByIDs(ctx context.Context, companyID string, accountIDs []string, userID string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a given company.
	ListAccounts(ctx context.Context, companyID string, limit int, offset int, userID string) ([]domain.Account, error)

	// GetAccountTree retrieves the full chart of accounts arranged as parent/child trees.
	// Roots are accounts with no parent, ordered by account code.
	GetAccountTree(ctx context.Context, companyID string, userID string) ([]*domain.AccountNode, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error
}

// AccountCalculatorSvc defines calculation operations for account data
type AccountCalculatorSvc interface {
	// GetAccountBalance returns the account's current running balance.
	GetAccountBalance(ctx context.Context, companyID string, accountID string, userID string) (decimal.Decimal, error)

	// GetAccountBalanceAsOf computes the balance of an account from posted activity
	// up to and including the given date.
	GetAccountBalanceAsOf(ctx context.Context, companyID string, accountID string, asOf time.Time, userID string) (decimal.Decimal, error)

	// GetSubtreeBalance computes the rolled-up balance of an account and all its descendants.
	GetSubtreeBalance(ctx context.Context, companyID string, accountID string, userID string) (decimal.Decimal, error)

	// GetSubtreeBalanceAsOf computes the rolled-up balance of an account and all its
	// descendants from posted activity up to and including the given date.
	GetSubtreeBalanceAsOf(ctx context.Context, companyID string, accountID string, asOf time.Time, userID string) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
