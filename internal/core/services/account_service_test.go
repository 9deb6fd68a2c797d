package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/core/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAllAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Test Suite ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	mockCompanySvc  *MockCompanyService
	service         portssvc.AccountSvcFacade
	companyID       string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewAccountServiceImpl(
		suite.mockAccountRepo,
		services.WithCompanyAuthorizerImpl(suite.mockCompanySvc),
		services.WithJournalLineReaderImpl(suite.mockJournalRepo),
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) authorizeReadOnly() {
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
}

func (suite *AccountServiceTestSuite) authorizeMember() {
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
}

func (suite *AccountServiceTestSuite) authorizeAdmin() {
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleAdmin).Return(nil).Once()
}

func (suite *AccountServiceTestSuite) account(code string, accType domain.AccountType, parentID *string, balance string) domain.Account {
	return domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       suite.companyID,
		Code:            code,
		Name:            "Account " + code,
		AccountType:     accType,
		ParentAccountID: parentID,
		Balance:         decimal.RequireFromString(balance),
		IsActive:        true,
	}
}

// --- CreateAccount ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	opening := decimal.RequireFromString("2500.50")
	req := dto.CreateAccountRequest{
		Code:           "1010",
		Name:           "DBS Operating Account",
		AccountType:    domain.Asset,
		SubType:        "CURRENT_ASSET",
		OpeningBalance: &opening,
		IsBankAccount:  true,
	}

	suite.authorizeMember()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.CompanyID == suite.companyID &&
			acc.Code == "1010" &&
			acc.IsActive &&
			acc.Balance.Equal(opening) &&
			acc.OpeningBalance.Equal(opening)
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("1010", account.Code)
	suite.True(account.Balance.Equal(opening))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentInOtherCompany() {
	ctx := context.Background()
	parent := suite.account("1000", domain.Asset, nil, "0")
	parent.CompanyID = uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:            "1010",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		ParentAccountID: &parent.AccountID,
	}

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(&parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CollectsAllProblems() {
	ctx := context.Background()
	parent := suite.account("1000", domain.Asset, nil, "0")
	parent.IsActive = false
	openingDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateAccountRequest{
		Code:               "1010",
		Name:               "Petty Cash",
		AccountType:        domain.Asset,
		ParentAccountID:    &parent.AccountID,
		OpeningBalanceDate: &openingDate,
	}

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(&parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	var vErr *apperrors.ValidationError
	suite.Require().True(errors.As(err, &vErr))
	suite.Len(vErr.Problems, 2)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

// --- GetAccountTree ---

func (suite *AccountServiceTestSuite) TestGetAccountTree_BuildsHierarchy() {
	ctx := context.Background()
	bank := suite.account("1000", domain.Asset, nil, "0")
	cash := suite.account("1100", domain.Asset, &bank.AccountID, "0")
	pettyCash := suite.account("1110", domain.Asset, &cash.AccountID, "0")
	liabilities := suite.account("2000", domain.Liability, nil, "0")
	unknownParent := uuid.NewString()
	orphan := suite.account("9999", domain.Expense, &unknownParent, "0")

	suite.authorizeReadOnly()
	suite.mockAccountRepo.On("FindAllAccounts", ctx, suite.companyID).Return([]domain.Account{bank, cash, pettyCash, liabilities, orphan}, nil).Once()

	roots, err := suite.service.GetAccountTree(ctx, suite.companyID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(roots, 3)
	suite.Equal("1000", roots[0].Account.Code)
	suite.Equal("2000", roots[1].Account.Code)
	suite.Equal("9999", roots[2].Account.Code)
	suite.Require().Len(roots[0].Children, 1)
	suite.Equal("1100", roots[0].Children[0].Account.Code)
	suite.Require().Len(roots[0].Children[0].Children, 1)
	suite.Equal("1110", roots[0].Children[0].Children[0].Account.Code)
	suite.Empty(roots[1].Children)
}

// --- Balances ---

func (suite *AccountServiceTestSuite) TestGetSubtreeBalance_SumsDescendants() {
	ctx := context.Background()
	root := suite.account("1000", domain.Asset, nil, "100")
	childA := suite.account("1100", domain.Asset, &root.AccountID, "50")
	childB := suite.account("1200", domain.Asset, &root.AccountID, "25")
	grandchild := suite.account("1110", domain.Asset, &childA.AccountID, "5")
	unrelated := suite.account("2000", domain.Liability, nil, "999")

	suite.authorizeReadOnly()
	suite.mockAccountRepo.On("FindAccountByID", ctx, root.AccountID).Return(&root, nil).Once()
	suite.mockAccountRepo.On("FindAllAccounts", ctx, suite.companyID).Return([]domain.Account{root, childA, childB, grandchild, unrelated}, nil).Once()

	total, err := suite.service.GetSubtreeBalance(ctx, suite.companyID, root.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.RequireFromString("180")), "got %s", total)
}

func (suite *AccountServiceTestSuite) TestGetSubtreeBalanceAsOf_ReconstructsEachMember() {
	ctx := context.Background()
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	root := suite.account("1000", domain.Asset, nil, "0")
	child := suite.account("1100", domain.Asset, &root.AccountID, "0")
	unrelated := suite.account("2000", domain.Liability, nil, "999")

	suite.authorizeReadOnly()
	suite.mockAccountRepo.On("FindAccountByID", ctx, root.AccountID).Return(&root, nil).Once()
	suite.mockAccountRepo.On("FindAllAccounts", ctx, suite.companyID).Return([]domain.Account{root, child, unrelated}, nil).Once()
	suite.mockJournalRepo.On("SumAccountActivity", ctx, suite.companyID, root.AccountID, asOf).Return(decimal.RequireFromString("400"), decimal.RequireFromString("100"), nil).Once()
	suite.mockJournalRepo.On("SumAccountActivity", ctx, suite.companyID, child.AccountID, asOf).Return(decimal.RequireFromString("50"), decimal.Zero, nil).Once()

	total, err := suite.service.GetSubtreeBalanceAsOf(ctx, suite.companyID, root.AccountID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.RequireFromString("350")), "got %s", total)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SumAccountActivity", ctx, suite.companyID, unrelated.AccountID, asOf)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalanceAsOf_DebitNormal() {
	ctx := context.Background()
	openingDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	account := suite.account("1000", domain.Asset, nil, "0")
	account.OpeningBalance = decimal.RequireFromString("1000")
	account.OpeningBalanceDate = &openingDate

	suite.authorizeReadOnly()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockJournalRepo.On("SumAccountActivity", ctx, suite.companyID, account.AccountID, asOf).Return(decimal.RequireFromString("500"), decimal.RequireFromString("200"), nil).Once()

	balance, err := suite.service.GetAccountBalanceAsOf(ctx, suite.companyID, account.AccountID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("1300")), "got %s", balance)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalanceAsOf_OpeningBalanceNotYetEffective() {
	ctx := context.Background()
	openingDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	account := suite.account("1000", domain.Asset, nil, "0")
	account.OpeningBalance = decimal.RequireFromString("1000")
	account.OpeningBalanceDate = &openingDate

	suite.authorizeReadOnly()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockJournalRepo.On("SumAccountActivity", ctx, suite.companyID, account.AccountID, asOf).Return(decimal.RequireFromString("500"), decimal.RequireFromString("200"), nil).Once()

	balance, err := suite.service.GetAccountBalanceAsOf(ctx, suite.companyID, account.AccountID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("300")), "got %s", balance)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalanceAsOf_CreditNormal() {
	ctx := context.Background()
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	account := suite.account("4000", domain.Revenue, nil, "0")

	suite.authorizeReadOnly()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockJournalRepo.On("SumAccountActivity", ctx, suite.companyID, account.AccountID, asOf).Return(decimal.RequireFromString("100"), decimal.RequireFromString("800"), nil).Once()

	balance, err := suite.service.GetAccountBalanceAsOf(ctx, suite.companyID, account.AccountID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("700")), "got %s", balance)
}

// --- Update and deactivate ---

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFieldsProvided() {
	ctx := context.Background()
	account := suite.account("1000", domain.Asset, nil, "0")

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	unchanged, err := suite.service.UpdateAccount(ctx, suite.companyID, account.AccountID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(account.Name, unchanged.Name)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_DeactivateWithBalanceRejected() {
	ctx := context.Background()
	account := suite.account("1000", domain.Asset, nil, "250.00")
	inactive := false

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.companyID, account.AccountID, dto.UpdateAccountRequest{IsActive: &inactive}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_StructuralRequiresAdmin() {
	ctx := context.Background()
	account := suite.account("6000", domain.Expense, nil, "0")
	newType := domain.Asset

	suite.authorizeMember()
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.companyID, account.AccountID, dto.UpdateAccountRequest{AccountType: &newType}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CategoryFrozenByPostedActivity() {
	ctx := context.Background()
	account := suite.account("6000", domain.Expense, nil, "0")
	newType := domain.Asset

	suite.authorizeMember()
	suite.authorizeAdmin()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockJournalRepo.On("SumAccountActivity", ctx, suite.companyID, account.AccountID, mock.AnythingOfType("time.Time")).Return(decimal.RequireFromString("120"), decimal.Zero, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.companyID, account.AccountID, dto.UpdateAccountRequest{AccountType: &newType}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CategoryChangeWithoutActivity() {
	ctx := context.Background()
	account := suite.account("6000", domain.Expense, nil, "0")
	newType := domain.Asset

	suite.authorizeMember()
	suite.authorizeAdmin()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockJournalRepo.On("SumAccountActivity", ctx, suite.companyID, account.AccountID, mock.AnythingOfType("time.Time")).Return(decimal.Zero, decimal.Zero, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountType == domain.Asset
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, account.AccountID, dto.UpdateAccountRequest{AccountType: &newType}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Asset, updated.AccountType)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ReparentToDescendantRejected() {
	ctx := context.Background()
	root := suite.account("1000", domain.Asset, nil, "0")
	child := suite.account("1100", domain.Asset, &root.AccountID, "0")

	suite.authorizeMember()
	suite.authorizeAdmin()
	suite.mockAccountRepo.On("FindAccountByID", ctx, root.AccountID).Return(&root, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, child.AccountID).Return(&child, nil).Once()
	suite.mockAccountRepo.On("FindAllAccounts", ctx, suite.companyID).Return([]domain.Account{root, child}, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.companyID, root.AccountID, dto.UpdateAccountRequest{ParentAccountID: &child.AccountID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NonZeroBalanceRejected() {
	ctx := context.Background()
	account := suite.account("1000", domain.Asset, nil, "250.00")

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.companyID, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_ActiveChildRejected() {
	ctx := context.Background()
	parent := suite.account("1000", domain.Asset, nil, "0")
	child := suite.account("1100", domain.Asset, &parent.AccountID, "0")

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(&parent, nil).Once()
	suite.mockAccountRepo.On("FindAllAccounts", ctx, suite.companyID).Return([]domain.Account{parent, child}, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.companyID, parent.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_InactiveChildAllowed() {
	ctx := context.Background()
	parent := suite.account("1000", domain.Asset, nil, "0")
	child := suite.account("1100", domain.Asset, &parent.AccountID, "0")
	child.IsActive = false

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(&parent, nil).Once()
	suite.mockAccountRepo.On("FindAllAccounts", ctx, suite.companyID).Return([]domain.Account{parent, child}, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, parent.AccountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.companyID, parent.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_WrongCompany() {
	ctx := context.Background()
	account := suite.account("1000", domain.Asset, nil, "0")
	account.CompanyID = uuid.NewString()

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.companyID, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
