package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
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

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryWithLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, entry, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversalEntry(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, reversal, lines, originalEntryID, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	args := m.Called(ctx, companyID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalLine), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SumAccountActivity(ctx context.Context, companyID, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockJournalRepository) FindPostedEntriesInRange(ctx context.Context, companyID string, start, end time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) DeleteDraftEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock AccountService (as used by JournalService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, companyID string, code string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByIDs(ctx context.Context, companyID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountTree(ctx context.Context, companyID string, userID string) ([]*domain.AccountNode, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccountNode), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	args := m.Called(ctx, companyID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) GetAccountBalance(ctx context.Context, companyID string, accountID string, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountService) GetAccountBalanceAsOf(ctx context.Context, companyID string, accountID string, asOf time.Time, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, asOf, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountService) GetSubtreeBalance(ctx context.Context, companyID string, accountID string, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountService) GetSubtreeBalanceAsOf(ctx context.Context, companyID string, accountID string, asOf time.Time, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, asOf, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock CompanyService ---
type MockCompanyService struct {
	mock.Mock
}

var _ portssvc.CompanySvcFacade = (*MockCompanyService)(nil)

func (m *MockCompanyService) GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyService) ListCompanyUsers(ctx context.Context, companyID string, requestingUserID string) ([]domain.UserCompany, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserCompany), args.Error(1)
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) DeactivateCompany(ctx context.Context, companyID string, requestingUserID string) error {
	args := m.Called(ctx, companyID, requestingUserID)
	return args.Error(0)
}

func (m *MockCompanyService) AddUserToCompany(ctx context.Context, addingUserID, targetUserID, companyID string, role domain.UserCompanyRole) error {
	args := m.Called(ctx, addingUserID, targetUserID, companyID, role)
	return args.Error(0)
}

func (m *MockCompanyService) RemoveUserFromCompany(ctx context.Context, requestingUserID, targetUserID, companyID string) error {
	args := m.Called(ctx, requestingUserID, targetUserID, companyID)
	return args.Error(0)
}

func (m *MockCompanyService) UpdateUserCompanyRole(ctx context.Context, requestingUserID, targetUserID, companyID string, newRole domain.UserCompanyRole) error {
	args := m.Called(ctx, requestingUserID, targetUserID, companyID, newRole)
	return args.Error(0)
}

func (m *MockCompanyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}

// --- Mock FiscalPeriodReader ---
type MockFiscalPeriodReader struct {
	mock.Mock
}

var _ portsrepo.FiscalPeriodReader = (*MockFiscalPeriodReader)(nil)

func (m *MockFiscalPeriodReader) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodReader) FindPeriodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodReader) ListPeriodsByYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

// --- Mock TaxCodeReader ---
type MockTaxCodeReader struct {
	mock.Mock
}

var _ portsrepo.TaxCodeReader = (*MockTaxCodeReader)(nil)

func (m *MockTaxCodeReader) FindTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error) {
	args := m.Called(ctx, taxCodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCode), args.Error(1)
}

func (m *MockTaxCodeReader) FindTaxCodeByCode(ctx context.Context, companyID string, code string) (*domain.TaxCode, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCode), args.Error(1)
}

func (m *MockTaxCodeReader) FindTaxCodesByIDs(ctx context.Context, taxCodeIDs []string) (map[string]domain.TaxCode, error) {
	args := m.Called(ctx, taxCodeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.TaxCode), args.Error(1)
}

func (m *MockTaxCodeReader) ListTaxCodes(ctx context.Context, companyID string, activeOnly bool) ([]domain.TaxCode, error) {
	args := m.Called(ctx, companyID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxCode), args.Error(1)
}

// --- Mock DocumentNumberSvc ---
type MockDocumentNumberSvc struct {
	mock.Mock
}

var _ portssvc.DocumentNumberSvc = (*MockDocumentNumberSvc)(nil)

func (m *MockDocumentNumberSvc) NextJournalNumber(ctx context.Context, companyID string) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentNumberSvc) NextTaxReturnNumber(ctx context.Context, companyID string) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	mockCompanySvc  *MockCompanyService
	mockFiscalRepo  *MockFiscalPeriodReader
	mockTaxCodeRepo *MockTaxCodeReader
	mockNumberSvc   *MockDocumentNumberSvc
	service         portssvc.JournalSvcFacade
	companyID       string
	userID          string
	entryDate       time.Time
	openPeriod      *domain.FiscalPeriod
	bankAccount     domain.Account
	revenueAccount  domain.Account
	expenseAccount  domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.mockFiscalRepo = new(MockFiscalPeriodReader)
	suite.mockTaxCodeRepo = new(MockTaxCodeReader)
	suite.mockNumberSvc = new(MockDocumentNumberSvc)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockAccountSvc,
		suite.mockCompanySvc,
		suite.mockFiscalRepo,
		suite.mockTaxCodeRepo,
		suite.mockNumberSvc,
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.entryDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.openPeriod = &domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      "2026-03",
		Sequence:  3,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}

	suite.bankAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1000",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "4000",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "6100",
		AccountType: domain.Expense,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

// --- CreateEntry ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   suite.entryDate,
		Description: "Invoice 42 settled",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, suite.companyID, suite.entryDate).Return(suite.openPeriod, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, []string{suite.bankAccount.AccountID, suite.revenueAccount.AccountID}, suite.userID).
		Return(suite.accountsMap(suite.bankAccount, suite.revenueAccount), nil).Once()
	suite.mockNumberSvc.On("NextJournalNumber", ctx, suite.companyID).Return("JE-000042", nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.EntryDraft, entry.Status)
	suite.Equal("JE-000042", entry.EntryNumber)
	suite.Equal(domain.JournalGeneral, entry.JournalType)
	suite.True(entry.Amount.Equal(decimal.NewFromInt(100)))
	suite.Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineNo)
	suite.Equal(2, entry.Lines[1].LineNo)

	suite.mockCompanySvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockTaxCodeRepo.AssertNotCalled(suite.T(), "FindTaxCodesByIDs", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AuthorizationFail() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{EntryDate: suite.entryDate}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: suite.entryDate,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.RequireFromString("100.00")},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.RequireFromString("99.99")},
		},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)

	var unbalancedErr *apperrors.UnbalancedEntryError
	suite.Require().ErrorAs(err, &unbalancedErr)
	suite.True(unbalancedErr.TotalDebits.Equal(decimal.RequireFromString("100.00")))
	suite.True(unbalancedErr.TotalCredits.Equal(decimal.RequireFromString("99.99")))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_CollectsLineProblems() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: suite.entryDate,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100), TaxAmount: decimal.NewFromInt(9)},
		},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	// Both the double-sided line and the tax amount without a code are reported.
	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Len(vErr.Problems, 2)
	suite.Contains(vErr.Problems[0], "line 1")
	suite.Contains(vErr.Problems[1], "line 2")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_WithinTolerance() {
	ctx := context.Background()
	// 0.004 apart, inside the rounding tolerance.
	req := dto.CreateJournalEntryRequest{
		EntryDate: suite.entryDate,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.RequireFromString("100.000")},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.RequireFromString("99.996")},
		},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, suite.companyID, suite.entryDate).Return(suite.openPeriod, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, mock.Anything, suite.userID).
		Return(suite.accountsMap(suite.bankAccount, suite.revenueAccount), nil).Once()
	suite.mockNumberSvc.On("NextJournalNumber", ctx, suite.companyID).Return("JE-000043", nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(entry.Amount.Equal(decimal.RequireFromString("100.000")))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_OnlyPlaceholderLines() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: suite.entryDate,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Description: "memo only"},
			{AccountID: suite.revenueAccount.AccountID, Description: "another memo"},
		},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryNoAmountLines)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_PlaceholderExcludedFromTotals() {
	ctx := context.Background()
	// The memo line carries no amount and must not unbalance the entry.
	req := dto.CreateJournalEntryRequest{
		EntryDate: suite.entryDate,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(50)},
			{AccountID: suite.expenseAccount.AccountID, Description: "see contract 2026-17"},
		},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, suite.companyID, suite.entryDate).Return(suite.openPeriod, nil).Once()
	// Placeholder lines still reference an account, so all three get resolved.
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID,
		[]string{suite.bankAccount.AccountID, suite.revenueAccount.AccountID, suite.expenseAccount.AccountID}, suite.userID).
		Return(suite.accountsMap(suite.bankAccount, suite.revenueAccount, suite.expenseAccount), nil).Once()
	suite.mockNumberSvc.On("NextJournalNumber", ctx, suite.companyID).Return("JE-000044", nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.MatchedBy(func(lines []domain.JournalLine) bool {
		return len(lines) == 3 && lines[2].IsPlaceholder()
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(entry.Amount.Equal(decimal.NewFromInt(50)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleAccount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: suite.entryDate,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.bankAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinAccounts)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NoOpenPeriod() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: suite.entryDate,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, suite.companyID, suite.entryDate).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoOpenPeriod)
	suite.mockNumberSvc.AssertNotCalled(suite.T(), "NextJournalNumber", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.expenseAccount
	inactive.IsActive = false
	req := dto.CreateJournalEntryRequest{
		EntryDate: suite.entryDate,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: inactive.AccountID, Debit: decimal.NewFromInt(75)},
			{AccountID: suite.bankAccount.AccountID, Credit: decimal.NewFromInt(75)},
		},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, suite.companyID, suite.entryDate).Return(suite.openPeriod, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, mock.Anything, suite.userID).
		Return(suite.accountsMap(inactive, suite.bankAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotUsable)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SourceKindWithoutID() {
	ctx := context.Background()
	kind := domain.SourceSale
	req := dto.CreateJournalEntryRequest{
		EntryDate:  suite.entryDate,
		SourceKind: &kind,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(10)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(10)},
		},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- PostEntry ---

func (suite *JournalServiceTestSuite) draftEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		EntryNumber: "JE-000007",
		JournalType: domain.JournalGeneral,
		EntryDate:   suite.entryDate,
		Description: "Office rent March",
		Status:      domain.EntryDraft,
		Amount:      decimal.NewFromInt(200),
	}
}

func (suite *JournalServiceTestSuite) draftLines(entryID string) []domain.JournalLine {
	return []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, LineNo: 1, AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(200)},
		{LineID: uuid.NewString(), EntryID: entryID, LineNo: 2, AccountID: suite.bankAccount.AccountID, Credit: decimal.NewFromInt(200)},
	}
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entry := suite.draftEntry()
	lines := suite.draftLines(entry.EntryID)

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, suite.companyID, suite.entryDate).Return(suite.openPeriod, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, mock.Anything, suite.userID).
		Return(suite.accountsMap(suite.expenseAccount, suite.bankAccount), nil).Once()
	// Debiting an expense raises it; crediting an asset lowers it.
	suite.mockJournalRepo.On("PostEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes[suite.expenseAccount.AccountID].Equal(decimal.NewFromInt(200)) &&
			changes[suite.bankAccount.AccountID].Equal(decimal.NewFromInt(-200))
	})).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, posted.Status)
	suite.Require().NotNil(posted.PostedAt)
	suite.Require().NotNil(posted.PostedBy)
	suite.Equal(suite.userID, *posted.PostedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_ClosedPeriod() {
	ctx := context.Background()
	entry := suite.draftEntry()
	lines := suite.draftLines(entry.EntryID)
	closedPeriod := *suite.openPeriod
	closedPeriod.Status = domain.PeriodClosed

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, suite.companyID, suite.entryDate).Return(&closedPeriod, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrClosedPeriod)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entry := suite.draftEntry()
	entry.Status = domain.EntryPosted

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_WrongCompany() {
	ctx := context.Background()
	entry := suite.draftEntry()
	entry.CompanyID = uuid.NewString() // Different company

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.GetEntryByID(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- UpdateEntry ---

func (suite *JournalServiceTestSuite) TestUpdateEntry_PostedRejected() {
	ctx := context.Background()
	entry := suite.draftEntry()
	entry.Status = domain.EntryPosted
	req := dto.UpdateJournalEntryRequest{
		EntryDate:   suite.entryDate,
		Description: "should not apply",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(10)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(10)},
		},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.UpdateEntry(ctx, suite.companyID, entry.EntryID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryWithLines", mock.Anything, mock.Anything, mock.Anything)
}

// --- ReverseEntry ---

func (suite *JournalServiceTestSuite) postedEntry() *domain.JournalEntry {
	entry := suite.draftEntry()
	entry.Status = domain.EntryPosted
	postedAt := suite.entryDate
	entry.PostedAt = &postedAt
	entry.PostedBy = &suite.userID
	return entry
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	original := suite.postedEntry()
	originalLines := suite.draftLines(original.EntryID)

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).Return(originalLines, nil).Once()
	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, suite.companyID, suite.entryDate).Return(suite.openPeriod, nil).Once()
	suite.mockNumberSvc.On("NextJournalNumber", ctx, suite.companyID).Return("JE-000008", nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, mock.Anything, suite.userID).
		Return(suite.accountsMap(suite.expenseAccount, suite.bankAccount), nil).Once()
	// Mirrored lines and negated balance deltas.
	suite.mockJournalRepo.On("SaveReversalEntry", ctx,
		mock.AnythingOfType("domain.JournalEntry"),
		mock.MatchedBy(func(lines []domain.JournalLine) bool {
			return len(lines) == 2 &&
				lines[0].Credit.Equal(decimal.NewFromInt(200)) && lines[0].Debit.IsZero() &&
				lines[1].Debit.Equal(decimal.NewFromInt(200)) && lines[1].Credit.IsZero()
		}),
		original.EntryID,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[suite.expenseAccount.AccountID].Equal(decimal.NewFromInt(-200)) &&
				changes[suite.bankAccount.AccountID].Equal(decimal.NewFromInt(200))
		}),
		suite.userID,
		mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, dto.ReverseEntryRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(domain.EntryPosted, reversal.Status)
	suite.Require().NotNil(reversal.OriginalEntryID)
	suite.Equal(original.EntryID, *reversal.OriginalEntryID)
	suite.Equal("Reversal of: Office rent March", reversal.Description)
	suite.True(reversal.EntryDate.Equal(original.EntryDate))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	original := suite.postedEntry()
	original.Status = domain.EntryReversed

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, dto.ReverseEntryRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_OfReversalRejected() {
	ctx := context.Background()
	original := suite.postedEntry()
	upstreamID := uuid.NewString()
	original.OriginalEntryID = &upstreamID // It is itself a reversal

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, dto.ReverseEntryRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_DraftRejected() {
	ctx := context.Background()
	original := suite.draftEntry()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, dto.ReverseEntryRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_ClosedReversalPeriod() {
	ctx := context.Background()
	original := suite.postedEntry()
	originalLines := suite.draftLines(original.EntryID)
	reversalDate := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	closedApril := &domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      "2026-04",
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodClosed,
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).Return(originalLines, nil).Once()
	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, suite.companyID, reversalDate).Return(closedApril, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, dto.ReverseEntryRequest{ReversalDate: &reversalDate}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrClosedPeriod)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ListEntries ---

func (suite *JournalServiceTestSuite) TestListEntries_DefaultLimit() {
	ctx := context.Background()
	entries := []domain.JournalEntry{*suite.postedEntry()}
	nextToken := "opaque-token"

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("ListEntriesByCompany", ctx, suite.companyID, 20, (*string)(nil), false).Return(entries, nextToken, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.companyID, suite.userID, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(nextToken, *resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- DeleteEntry ---

func (suite *JournalServiceTestSuite) TestDeleteEntry_DraftSuccess() {
	ctx := context.Background()
	entry := suite.draftEntry()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("DeleteDraftEntry", ctx, entry.EntryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_PostedRejected() {
	ctx := context.Background()
	entry := suite.postedEntry()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteDraftEntry", mock.Anything, mock.Anything)
}

// --- ListPostedEntriesInRange ---

func (suite *JournalServiceTestSuite) TestListPostedEntriesInRange_Success() {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	entries := []domain.JournalEntry{*suite.postedEntry()}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindPostedEntriesInRange", ctx, suite.companyID, start, end).Return(entries, nil).Once()

	got, err := suite.service.ListPostedEntriesInRange(ctx, suite.companyID, start, end, suite.userID)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListPostedEntriesInRange_EndBeforeStart() {
	ctx := context.Background()
	start := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()

	_, err := suite.service.ListPostedEntriesInRange(ctx, suite.companyID, start, end, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindPostedEntriesInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
