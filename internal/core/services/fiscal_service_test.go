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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock FiscalRepository ---
type MockFiscalRepository struct {
	mock.Mock
}

// Ensure MockFiscalRepository implements portsrepo.FiscalRepositoryFacade
var _ portsrepo.FiscalRepositoryFacade = (*MockFiscalRepository)(nil)

func (m *MockFiscalRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) ListFiscalYearsByCompany(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) FindOverlappingYear(ctx context.Context, companyID string, start, end time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, companyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalRepository) FindPeriodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalRepository) ListPeriodsByYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalRepository) SaveFiscalYearWithPeriods(ctx context.Context, year domain.FiscalYear, periods []domain.FiscalPeriod) error {
	args := m.Called(ctx, year, periods)
	return args.Error(0)
}

func (m *MockFiscalRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockFiscalRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, userID string, now time.Time) error {
	args := m.Called(ctx, periodID, status, userID, now)
	return args.Error(0)
}

func (m *MockFiscalRepository) UpdateYearStatus(ctx context.Context, fiscalYearID string, fromStatus, toStatus domain.PeriodStatus, userID string, now time.Time) error {
	args := m.Called(ctx, fiscalYearID, fromStatus, toStatus, userID, now)
	return args.Error(0)
}

// --- Test Suite ---

type FiscalServiceTestSuite struct {
	suite.Suite
	mockFiscalRepo *MockFiscalRepository
	mockCompanySvc *MockCompanyService
	service        portssvc.FiscalSvcFacade
	companyID      string
	userID         string
}

func (suite *FiscalServiceTestSuite) SetupTest() {
	suite.mockFiscalRepo = new(MockFiscalRepository)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewFiscalService(suite.mockFiscalRepo, suite.mockCompanySvc)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *FiscalServiceTestSuite) authorizeAdmin() {
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleAdmin).Return(nil).Once()
}

// --- CreateFiscalYear ---

func (suite *FiscalServiceTestSuite) TestCreateFiscalYear_MonthlyPeriods() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Name:        "FY2026",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Granularity: domain.GranularityMonth,
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindOverlappingYear", ctx, suite.companyID, req.StartDate, req.EndDate).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFiscalRepo.On("SaveFiscalYearWithPeriods", ctx, mock.AnythingOfType("domain.FiscalYear"), mock.AnythingOfType("[]domain.FiscalPeriod")).Return(nil).Once()

	year, err := suite.service.CreateFiscalYear(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, year.Status)
	suite.Require().Len(year.Periods, 12)
	suite.Equal("2026-01", year.Periods[0].Name)
	suite.Equal("2026-12", year.Periods[11].Name)
	suite.Equal(1, year.Periods[0].Sequence)
	suite.Equal(12, year.Periods[11].Sequence)
	suite.True(year.Periods[0].EndDate.Equal(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)))
	suite.True(year.Periods[1].StartDate.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	suite.True(year.Periods[11].EndDate.Equal(req.EndDate))
	for _, p := range year.Periods {
		suite.Equal(domain.PeriodOpen, p.Status)
	}
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestCreateFiscalYear_QuarterlyPeriods() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Name:        "FY2026",
		StartDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC),
		Granularity: domain.GranularityQuarter,
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindOverlappingYear", ctx, suite.companyID, req.StartDate, req.EndDate).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFiscalRepo.On("SaveFiscalYearWithPeriods", ctx, mock.AnythingOfType("domain.FiscalYear"), mock.AnythingOfType("[]domain.FiscalPeriod")).Return(nil).Once()

	year, err := suite.service.CreateFiscalYear(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(year.Periods, 4)
	suite.Equal("FY2026 Q1", year.Periods[0].Name)
	suite.Equal("FY2026 Q4", year.Periods[3].Name)
	suite.True(year.Periods[0].EndDate.Equal(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)))
	suite.True(year.Periods[3].EndDate.Equal(req.EndDate))
}

func (suite *FiscalServiceTestSuite) TestCreateFiscalYear_SinglePeriod() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Name:        "FY2026",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Granularity: domain.GranularityYear,
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindOverlappingYear", ctx, suite.companyID, req.StartDate, req.EndDate).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFiscalRepo.On("SaveFiscalYearWithPeriods", ctx, mock.AnythingOfType("domain.FiscalYear"), mock.AnythingOfType("[]domain.FiscalPeriod")).Return(nil).Once()

	year, err := suite.service.CreateFiscalYear(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(year.Periods, 1)
	suite.Equal("FY2026", year.Periods[0].Name)
	suite.True(year.Periods[0].StartDate.Equal(req.StartDate))
	suite.True(year.Periods[0].EndDate.Equal(req.EndDate))
}

func (suite *FiscalServiceTestSuite) TestCreateFiscalYear_LastPeriodAbsorbsRemainder() {
	ctx := context.Background()
	// Thirteen and a half months: the trailing half month folds into
	// the December period instead of forming a stub.
	req := dto.CreateFiscalYearRequest{
		Name:        "FY2026L",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2027, 1, 14, 0, 0, 0, 0, time.UTC),
		Granularity: domain.GranularityMonth,
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindOverlappingYear", ctx, suite.companyID, req.StartDate, req.EndDate).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFiscalRepo.On("SaveFiscalYearWithPeriods", ctx, mock.AnythingOfType("domain.FiscalYear"), mock.AnythingOfType("[]domain.FiscalPeriod")).Return(nil).Once()

	year, err := suite.service.CreateFiscalYear(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(year.Periods, 12)
	last := year.Periods[11]
	suite.Equal("2026-12", last.Name)
	suite.True(last.StartDate.Equal(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)))
	suite.True(last.EndDate.Equal(req.EndDate))
}

func (suite *FiscalServiceTestSuite) TestCreateFiscalYear_OverlapConflict() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Name:        "FY2026",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Granularity: domain.GranularityMonth,
	}
	existing := &domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    suite.companyID,
		Name:         "FY2025-26",
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindOverlappingYear", ctx, suite.companyID, req.StartDate, req.EndDate).Return(existing, nil).Once()

	_, err := suite.service.CreateFiscalYear(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "SaveFiscalYearWithPeriods", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestCreateFiscalYear_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Name:        "FY2026",
		StartDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Granularity: domain.GranularityMonth,
	}

	suite.authorizeAdmin()

	_, err := suite.service.CreateFiscalYear(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalServiceTestSuite) TestCreateFiscalYear_RequiresAdmin() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{Name: "FY2026"}

	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateFiscalYear(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Period lifecycle ---

func (suite *FiscalServiceTestSuite) openPeriodFixture() *domain.FiscalPeriod {
	return &domain.FiscalPeriod{
		PeriodID:     uuid.NewString(),
		FiscalYearID: uuid.NewString(),
		CompanyID:    suite.companyID,
		Name:         "2026-01",
		Sequence:     1,
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:       domain.PeriodOpen,
	}
}

func (suite *FiscalServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()
	period := suite.openPeriodFixture()

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockFiscalRepo.On("UpdatePeriodStatus", ctx, period.PeriodID, domain.PeriodClosed, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	closed, err := suite.service.ClosePeriod(ctx, suite.companyID, period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, closed.Status)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	period := suite.openPeriodFixture()
	period.Status = domain.PeriodClosed

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()

	_, err := suite.service.ClosePeriod(ctx, suite.companyID, period.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestClosePeriod_WrongCompany() {
	ctx := context.Background()
	period := suite.openPeriodFixture()
	period.CompanyID = uuid.NewString()

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()

	_, err := suite.service.ClosePeriod(ctx, suite.companyID, period.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FiscalServiceTestSuite) TestReopenPeriod_Success() {
	ctx := context.Background()
	period := suite.openPeriodFixture()
	period.Status = domain.PeriodClosed
	year := &domain.FiscalYear{
		FiscalYearID: period.FiscalYearID,
		CompanyID:    suite.companyID,
		Name:         "FY2026",
		Status:       domain.PeriodOpen,
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, period.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("UpdatePeriodStatus", ctx, period.PeriodID, domain.PeriodOpen, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reopened, err := suite.service.ReopenPeriod(ctx, suite.companyID, period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, reopened.Status)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestReopenPeriod_ArchivedStaysClosed() {
	ctx := context.Background()
	period := suite.openPeriodFixture()
	period.Status = domain.PeriodArchived

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()

	_, err := suite.service.ReopenPeriod(ctx, suite.companyID, period.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestReopenPeriod_ClosedYearBlocks() {
	ctx := context.Background()
	period := suite.openPeriodFixture()
	period.Status = domain.PeriodClosed
	year := &domain.FiscalYear{
		FiscalYearID: period.FiscalYearID,
		CompanyID:    suite.companyID,
		Name:         "FY2026",
		Status:       domain.PeriodClosed,
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, period.FiscalYearID).Return(year, nil).Once()

	_, err := suite.service.ReopenPeriod(ctx, suite.companyID, period.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- Year lifecycle ---

func (suite *FiscalServiceTestSuite) TestCloseFiscalYear_OpenPeriodBlocks() {
	ctx := context.Background()
	year := &domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    suite.companyID,
		Name:         "FY2026",
		Status:       domain.PeriodOpen,
	}
	periods := []domain.FiscalPeriod{
		{PeriodID: uuid.NewString(), Name: "2026-01", Status: domain.PeriodClosed},
		{PeriodID: uuid.NewString(), Name: "2026-02", Status: domain.PeriodOpen},
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, year.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("ListPeriodsByYear", ctx, year.FiscalYearID).Return(periods, nil).Once()

	_, err := suite.service.CloseFiscalYear(ctx, suite.companyID, year.FiscalYearID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "UpdateYearStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestCloseFiscalYear_Success() {
	ctx := context.Background()
	year := &domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    suite.companyID,
		Name:         "FY2026",
		Status:       domain.PeriodOpen,
	}
	periods := []domain.FiscalPeriod{
		{PeriodID: uuid.NewString(), Name: "2026-01", Status: domain.PeriodClosed},
		{PeriodID: uuid.NewString(), Name: "2026-02", Status: domain.PeriodClosed},
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, year.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("ListPeriodsByYear", ctx, year.FiscalYearID).Return(periods, nil).Once()
	suite.mockFiscalRepo.On("UpdateYearStatus", ctx, year.FiscalYearID, domain.PeriodOpen, domain.PeriodClosed, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	closed, err := suite.service.CloseFiscalYear(ctx, suite.companyID, year.FiscalYearID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, closed.Status)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestArchiveFiscalYear_OpenYearRejected() {
	ctx := context.Background()
	year := &domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    suite.companyID,
		Name:         "FY2026",
		Status:       domain.PeriodOpen,
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, year.FiscalYearID).Return(year, nil).Once()

	_, err := suite.service.ArchiveFiscalYear(ctx, suite.companyID, year.FiscalYearID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *FiscalServiceTestSuite) TestArchiveFiscalYear_Success() {
	ctx := context.Background()
	year := &domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    suite.companyID,
		Name:         "FY2025",
		Status:       domain.PeriodClosed,
	}
	archivedPeriods := []domain.FiscalPeriod{
		{PeriodID: uuid.NewString(), Name: "2025-01", Status: domain.PeriodArchived},
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, year.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("UpdateYearStatus", ctx, year.FiscalYearID, domain.PeriodClosed, domain.PeriodArchived, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockFiscalRepo.On("ListPeriodsByYear", ctx, year.FiscalYearID).Return(archivedPeriods, nil).Once()

	archived, err := suite.service.ArchiveFiscalYear(ctx, suite.companyID, year.FiscalYearID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodArchived, archived.Status)
	suite.Require().Len(archived.Periods, 1)
	suite.Equal(domain.PeriodArchived, archived.Periods[0].Status)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

// --- AddPeriod ---

func (suite *FiscalServiceTestSuite) openYearFixture() *domain.FiscalYear {
	return &domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    suite.companyID,
		Name:         "FY2026",
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:       domain.PeriodOpen,
	}
}

func (suite *FiscalServiceTestSuite) TestAddPeriod_Success() {
	ctx := context.Background()
	year := suite.openYearFixture()
	existing := []domain.FiscalPeriod{
		{PeriodID: uuid.NewString(), Name: "2026-01", Sequence: 1,
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			Status:    domain.PeriodOpen},
	}
	req := dto.AddFiscalPeriodRequest{
		Name:      "2026-02",
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, year.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("ListPeriodsByYear", ctx, year.FiscalYearID).Return(existing, nil).Once()
	suite.mockFiscalRepo.On("SavePeriod", ctx, mock.MatchedBy(func(p domain.FiscalPeriod) bool {
		return p.Name == "2026-02" && p.Sequence == 2 && p.Status == domain.PeriodOpen
	})).Return(nil).Once()

	period, err := suite.service.AddPeriod(ctx, suite.companyID, year.FiscalYearID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("2026-02", period.Name)
	suite.Equal(2, period.Sequence)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestAddPeriod_OverlapConflict() {
	ctx := context.Background()
	year := suite.openYearFixture()
	existing := []domain.FiscalPeriod{
		{PeriodID: uuid.NewString(), Name: "2026-01", Sequence: 1,
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			Status:    domain.PeriodOpen},
	}
	req := dto.AddFiscalPeriodRequest{
		Name:      "2026-01b",
		StartDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, year.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("ListPeriodsByYear", ctx, year.FiscalYearID).Return(existing, nil).Once()

	_, err := suite.service.AddPeriod(ctx, suite.companyID, year.FiscalYearID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestAddPeriod_OutsideYearRejected() {
	ctx := context.Background()
	year := suite.openYearFixture()
	req := dto.AddFiscalPeriodRequest{
		Name:      "2027-01",
		StartDate: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, year.FiscalYearID).Return(year, nil).Once()

	_, err := suite.service.AddPeriod(ctx, suite.companyID, year.FiscalYearID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestAddPeriod_ClosedYearRejected() {
	ctx := context.Background()
	year := suite.openYearFixture()
	year.Status = domain.PeriodClosed
	req := dto.AddFiscalPeriodRequest{
		Name:      "2026-02",
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
	}

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, year.FiscalYearID).Return(year, nil).Once()

	_, err := suite.service.AddPeriod(ctx, suite.companyID, year.FiscalYearID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- ArchivePeriod ---

func (suite *FiscalServiceTestSuite) TestArchivePeriod_Success() {
	ctx := context.Background()
	period := suite.openPeriodFixture()
	period.Status = domain.PeriodClosed

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()
	suite.mockFiscalRepo.On("UpdatePeriodStatus", ctx, period.PeriodID, domain.PeriodArchived, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	archived, err := suite.service.ArchivePeriod(ctx, suite.companyID, period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodArchived, archived.Status)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestArchivePeriod_OpenRejected() {
	ctx := context.Background()
	period := suite.openPeriodFixture()

	suite.authorizeAdmin()
	suite.mockFiscalRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(period, nil).Once()

	_, err := suite.service.ArchivePeriod(ctx, suite.companyID, period.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFiscalService(t *testing.T) {
	suite.Run(t, new(FiscalServiceTestSuite))
}
