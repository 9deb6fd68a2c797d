package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/shopspring/decimal"
)

// accountServiceImpl implements the AccountSvcFacade interface
type accountServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	lineReader  portsrepo.JournalLineReader
}

// ServiceOption is a functional option for configuring the account service
type ServiceOption func(*accountServiceImpl)

// WithCompanyAuthorizerImpl adds company authorizer dependency
func WithCompanyAuthorizerImpl(authorizer portssvc.CompanyAuthorizerSvc) ServiceOption {
	return func(s *accountServiceImpl) {
		s.CompanyAuthorizer = authorizer
	}
}

// WithJournalLineReaderImpl adds the journal line reader used for as-of balances
func WithJournalLineReaderImpl(reader portsrepo.JournalLineReader) ServiceOption {
	return func(s *accountServiceImpl) {
		s.lineReader = reader
	}
}

// NewAccountServiceImpl creates a new account service with the provided options
func NewAccountServiceImpl(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountServiceImpl{
		accountRepo: repo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountServiceImpl implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountServiceImpl)(nil)

func (s *accountServiceImpl) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	// Authorize user action
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create account",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	now := time.Now().UTC()
	newAccountID := uuid.NewString()

	// Collect every validation problem before rejecting, so the caller sees
	// the full list in one round trip.
	var problems []string
	if req.ParentAccountID != nil {
		parentAccount, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			problems = append(problems, "parent account "+*req.ParentAccountID+" does not exist")
		case err != nil:
			s.LogError(ctx, err, "Failed to find parent account",
				slog.String("parent_id", *req.ParentAccountID))
			return nil, fmt.Errorf("invalid parent account: %w", err)
		case parentAccount.CompanyID != companyID:
			problems = append(problems, "parent account belongs to a different company")
		case !parentAccount.IsActive:
			problems = append(problems, "parent account "+parentAccount.Code+" is inactive")
		}
	}
	if req.OpeningBalanceDate != nil && req.OpeningBalance == nil {
		problems = append(problems, "opening balance date provided without an opening balance")
	}
	if len(problems) > 0 {
		err := apperrors.NewValidationError(problems...)
		s.LogError(ctx, err, "Account failed validation",
			slog.String("company_id", companyID),
			slog.Int("problem_count", len(problems)))
		return nil, err
	}

	openingBalance := decimal.Zero
	if req.OpeningBalance != nil {
		openingBalance = *req.OpeningBalance
	}

	// Create domain.Account, ensuring CompanyID is set. The running balance
	// starts at the opening balance; posting moves it from there.
	account := domain.Account{
		AccountID:          newAccountID,
		CompanyID:          companyID,
		Code:               req.Code,
		Name:               req.Name,
		AccountType:        req.AccountType,
		SubType:            req.SubType,
		ParentAccountID:    req.ParentAccountID,
		Description:        req.Description,
		OpeningBalance:     openingBalance,
		OpeningBalanceDate: req.OpeningBalanceDate,
		IsActive:           true,
		IsControlAccount:   req.IsControlAccount,
		IsBankAccount:      req.IsBankAccount,
		Balance:            openingBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("company_id", companyID))
	return &account, nil
}

// findAccountInCompany fetches an account and verifies it belongs to the
// company. Accounts from other companies come back as NotFound to obscure
// their existence.
func (s *accountServiceImpl) findAccountInCompany(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.CompanyID != companyID {
		s.LogDebug(ctx, "Account found but belongs to different company",
			slog.String("account_id", accountID),
			slog.String("account_company", account.CompanyID),
			slog.String("requested_company", companyID))
		return nil, apperrors.ErrNotFound
	}

	return account, nil
}

func (s *accountServiceImpl) GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.findAccountInCompany(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Account retrieved successfully",
		slog.String("account_id", account.AccountID),
		slog.String("company_id", account.CompanyID))
	return account, nil
}

func (s *accountServiceImpl) GetAccountByCode(ctx context.Context, companyID string, code string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code",
				slog.String("code", code),
				slog.String("company_id", companyID))
		}
		return nil, err
	}

	return account, nil
}

func (s *accountServiceImpl) GetAccountByIDs(ctx context.Context, companyID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs",
			slog.String("account_ids", fmt.Sprintf("%v", accountIDs)))
		return nil, err
	}

	// Authorization: Check if all accounts belong to the expected company
	for _, account := range accounts {
		if account.CompanyID != companyID {
			s.LogDebug(ctx, "Account found but belongs to different company",
				slog.String("account_id", account.AccountID),
				slog.String("account_company", account.CompanyID),
				slog.String("requested_company", companyID))
			return nil, apperrors.ErrNotFound
		}
	}

	return accounts, nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, companyID string, limit int, offset int, userID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("company_id", companyID),
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts for company %s: %w", companyID, err)
	}

	if accounts == nil {
		return []domain.Account{}, nil // Return empty slice if repo returns nil
	}

	s.LogDebug(ctx, "Accounts listed successfully",
		slog.Int("count", len(accounts)),
		slog.String("company_id", companyID))
	return accounts, nil
}

func (s *accountServiceImpl) GetAccountTree(ctx context.Context, companyID string, userID string) ([]*domain.AccountNode, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAllAccounts(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for tree",
			slog.String("company_id", companyID))
		return nil, err
	}

	// The repository returns accounts ordered by code, so appending in order
	// keeps both root and child slices code-sorted.
	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for i := range accounts {
		nodes[accounts[i].AccountID] = &domain.AccountNode{Account: accounts[i]}
	}

	roots := make([]*domain.AccountNode, 0)
	for i := range accounts {
		node := nodes[accounts[i].AccountID]
		if parentID := accounts[i].ParentAccountID; parentID != nil {
			if parent, ok := nodes[*parentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
			// Parent missing from the chart; surface the node as a root
			// rather than dropping it.
			s.LogDebug(ctx, "Account has unknown parent, treating as root",
				slog.String("account_id", accounts[i].AccountID),
				slog.String("parent_id", *parentID))
		}
		roots = append(roots, node)
	}

	return roots, nil
}

func (s *accountServiceImpl) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to update account",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	// Structural changes reshape the chart of accounts, so they need an admin.
	if req.AccountType != nil || req.ParentAccountID != nil {
		if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
			s.LogError(ctx, err, "User not authorized for structural account update",
				slog.String("user_id", userID),
				slog.String("company_id", companyID))
			return nil, err
		}
	}

	// Fetch the existing account
	account, err := s.findAccountInCompany(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	// Apply updates
	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.SubType != nil {
		account.SubType = *req.SubType
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		if account.IsActive && !*req.IsActive {
			if err := s.ensureDeactivatable(ctx, account); err != nil {
				return nil, err
			}
		}
		account.IsActive = *req.IsActive
		updated = true
	}
	if req.AccountType != nil && *req.AccountType != account.AccountType {
		// The category fixes how every posted line is interpreted, so it is
		// frozen as soon as the account carries activity.
		if err := s.ensureNoPostedActivity(ctx, companyID, account); err != nil {
			return nil, err
		}
		account.AccountType = *req.AccountType
		updated = true
	}
	if req.ParentAccountID != nil {
		if err := s.validateNewParent(ctx, companyID, account, *req.ParentAccountID); err != nil {
			return nil, err
		}
		account.ParentAccountID = req.ParentAccountID
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.String("account_id", accountID))
		return account, nil
	}

	// Update audit fields
	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	err = s.accountRepo.UpdateAccount(ctx, *account)
	if err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", account.AccountID),
		slog.String("company_id", account.CompanyID))
	return account, nil
}

// ensureDeactivatable rejects deactivation while the account still carries a
// balance or has active children.
func (s *accountServiceImpl) ensureDeactivatable(ctx context.Context, account *domain.Account) error {
	if !account.Balance.IsZero() {
		s.LogDebug(ctx, "Deactivation blocked by non-zero balance",
			slog.String("account_id", account.AccountID),
			slog.String("balance", account.Balance.StringFixed(2)))
		return apperrors.NewConflictError(fmt.Sprintf("account %s still carries a balance of %s", account.Code, account.Balance.StringFixed(2)))
	}

	accounts, err := s.accountRepo.FindAllAccounts(ctx, account.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for deactivation check",
			slog.String("company_id", account.CompanyID))
		return err
	}
	for _, acc := range accounts {
		if acc.IsActive && acc.ParentAccountID != nil && *acc.ParentAccountID == account.AccountID {
			s.LogDebug(ctx, "Deactivation blocked by active child",
				slog.String("account_id", account.AccountID),
				slog.String("child_id", acc.AccountID))
			return apperrors.NewConflictError(fmt.Sprintf("account %s still has active child account %s", account.Code, acc.Code))
		}
	}
	return nil
}

// ensureNoPostedActivity rejects category changes once any posted line
// references the account.
func (s *accountServiceImpl) ensureNoPostedActivity(ctx context.Context, companyID string, account *domain.Account) error {
	if s.lineReader == nil {
		return errors.New("journal line reader not configured")
	}

	debitTotal, creditTotal, err := s.lineReader.SumAccountActivity(ctx, companyID, account.AccountID, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account activity for category check",
			slog.String("account_id", account.AccountID))
		return err
	}
	if !debitTotal.IsZero() || !creditTotal.IsZero() {
		return apperrors.NewConflictError(fmt.Sprintf("account %s has posted activity and its category cannot change", account.Code))
	}
	return nil
}

// validateNewParent checks that a reparenting target exists in the company and
// is not inside the account's own subtree.
func (s *accountServiceImpl) validateNewParent(ctx context.Context, companyID string, account *domain.Account, parentID string) error {
	if parentID == account.AccountID {
		return apperrors.NewValidationFailedError("account cannot be its own parent")
	}

	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("parent account " + parentID + " does not exist")
		}
		s.LogError(ctx, err, "Failed to find new parent account",
			slog.String("parent_id", parentID))
		return err
	}
	if parent.CompanyID != companyID {
		return apperrors.NewValidationFailedError("parent account belongs to a different company")
	}

	accounts, err := s.accountRepo.FindAllAccounts(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for reparent check",
			slog.String("company_id", companyID))
		return err
	}
	childrenByParent := make(map[string][]string)
	for _, acc := range accounts {
		if acc.ParentAccountID != nil {
			childrenByParent[*acc.ParentAccountID] = append(childrenByParent[*acc.ParentAccountID], acc.AccountID)
		}
	}

	// Walk the account's subtree; landing on the new parent would form a cycle.
	stack := []string{account.AccountID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == parentID {
			return apperrors.NewValidationFailedError("parent account " + parent.Code + " is a descendant of the account")
		}
		stack = append(stack, childrenByParent[id]...)
	}

	return nil
}

func (s *accountServiceImpl) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to deactivate account",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return err
	}

	// First verify that the account exists and belongs to the company
	account, err := s.findAccountInCompany(ctx, companyID, accountID)
	if err != nil {
		return err
	}

	if err := s.ensureDeactivatable(ctx, account); err != nil {
		return err
	}

	// Deactivate the account
	now := time.Now().UTC()
	err = s.accountRepo.DeactivateAccount(ctx, accountID, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully",
		slog.String("account_id", accountID),
		slog.String("company_id", companyID))
	return nil
}

func (s *accountServiceImpl) GetAccountBalance(ctx context.Context, companyID string, accountID string, userID string) (decimal.Decimal, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return decimal.Zero, err
	}

	account, err := s.findAccountInCompany(ctx, companyID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find account for balance lookup",
			slog.String("account_id", accountID),
			slog.String("company_id", companyID))
		return decimal.Zero, err
	}

	// The running balance is maintained at posting time.
	return account.Balance, nil
}

func (s *accountServiceImpl) GetAccountBalanceAsOf(ctx context.Context, companyID string, accountID string, asOf time.Time, userID string) (decimal.Decimal, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return decimal.Zero, err
	}

	account, err := s.findAccountInCompany(ctx, companyID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return s.asOfBalance(ctx, companyID, account, asOf)
}

// asOfBalance reconstructs one account's balance from posted activity up to
// and including asOf, plus its opening balance once the effective date passed.
func (s *accountServiceImpl) asOfBalance(ctx context.Context, companyID string, account *domain.Account, asOf time.Time) (decimal.Decimal, error) {
	if s.lineReader == nil {
		err := errors.New("journal line reader not configured")
		s.LogError(ctx, err, "Cannot compute as-of balance",
			slog.String("account_id", account.AccountID))
		return decimal.Zero, err
	}

	debitTotal, creditTotal, err := s.lineReader.SumAccountActivity(ctx, companyID, account.AccountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account activity",
			slog.String("account_id", account.AccountID),
			slog.String("as_of", asOf.Format("2006-01-02")))
		return decimal.Zero, err
	}

	var signedActivity decimal.Decimal
	if account.AccountType.IsDebitNormal() {
		signedActivity = debitTotal.Sub(creditTotal)
	} else {
		signedActivity = creditTotal.Sub(debitTotal)
	}

	balance := signedActivity
	if account.OpeningBalanceDate == nil || !account.OpeningBalanceDate.After(asOf) {
		balance = balance.Add(account.OpeningBalance)
	}

	return balance, nil
}

func (s *accountServiceImpl) GetSubtreeBalance(ctx context.Context, companyID string, accountID string, userID string) (decimal.Decimal, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return decimal.Zero, err
	}

	root, err := s.findAccountInCompany(ctx, companyID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	accounts, err := s.accountRepo.FindAllAccounts(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for subtree balance",
			slog.String("company_id", companyID))
		return decimal.Zero, err
	}

	childrenByParent := make(map[string][]string)
	for _, acc := range accounts {
		if acc.ParentAccountID != nil {
			childrenByParent[*acc.ParentAccountID] = append(childrenByParent[*acc.ParentAccountID], acc.AccountID)
		}
	}
	balancesByID := make(map[string]decimal.Decimal, len(accounts))
	for _, acc := range accounts {
		balancesByID[acc.AccountID] = acc.Balance
	}

	// Walk the subtree iteratively; the chart is acyclic by construction.
	total := decimal.Zero
	stack := []string{root.AccountID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total = total.Add(balancesByID[id])
		stack = append(stack, childrenByParent[id]...)
	}

	return total, nil
}

func (s *accountServiceImpl) GetSubtreeBalanceAsOf(ctx context.Context, companyID string, accountID string, asOf time.Time, userID string) (decimal.Decimal, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return decimal.Zero, err
	}

	root, err := s.findAccountInCompany(ctx, companyID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	accounts, err := s.accountRepo.FindAllAccounts(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for subtree balance",
			slog.String("company_id", companyID))
		return decimal.Zero, err
	}

	childrenByParent := make(map[string][]string)
	accountsByID := make(map[string]*domain.Account, len(accounts))
	for i := range accounts {
		acc := &accounts[i]
		accountsByID[acc.AccountID] = acc
		if acc.ParentAccountID != nil {
			childrenByParent[*acc.ParentAccountID] = append(childrenByParent[*acc.ParentAccountID], acc.AccountID)
		}
	}

	// Each member's balance is reconstructed from activity up to asOf, so the
	// rollup is consistent with the single-account as-of view.
	total := decimal.Zero
	stack := []string{root.AccountID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if acc, ok := accountsByID[id]; ok {
			balance, err := s.asOfBalance(ctx, companyID, acc, asOf)
			if err != nil {
				return decimal.Zero, err
			}
			total = total.Add(balance)
		}
		stack = append(stack, childrenByParent[id]...)
	}

	return total, nil
}
