package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/core/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TaxCodeServiceTestSuite struct {
	suite.Suite
	mockTaxCodeRepo   *MockTaxCodeRepository
	mockAccountReader *MockAccountReader
	mockCompanySvc    *MockCompanyService
	service           portssvc.TaxCodeSvcFacade
	companyID         string
	userID            string
}

func (suite *TaxCodeServiceTestSuite) SetupTest() {
	suite.mockTaxCodeRepo = new(MockTaxCodeRepository)
	suite.mockAccountReader = new(MockAccountReader)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewTaxCodeService(suite.mockTaxCodeRepo, suite.mockAccountReader, suite.mockCompanySvc)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TaxCodeServiceTestSuite) authorizeMember() {
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
}

func (suite *TaxCodeServiceTestSuite) TestCreateTaxCode_DefaultsToGST() {
	ctx := context.Background()
	req := dto.CreateTaxCodeRequest{
		Code:        "SR",
		Name:        "Standard-Rated Supply",
		RatePercent: decimal.RequireFromString("9"),
	}

	suite.authorizeMember()
	suite.mockTaxCodeRepo.On("SaveTaxCode", ctx, mock.MatchedBy(func(tc domain.TaxCode) bool {
		return tc.CompanyID == suite.companyID &&
			tc.Code == "SR" &&
			tc.TaxType == domain.TaxTypeGST &&
			tc.IsActive
	})).Return(nil).Once()

	taxCode, err := suite.service.CreateTaxCode(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TaxTypeGST, taxCode.TaxType)
	suite.True(taxCode.RatePercent.Equal(decimal.RequireFromString("9")))
	suite.mockTaxCodeRepo.AssertExpectations(suite.T())
}

func (suite *TaxCodeServiceTestSuite) TestCreateTaxCode_NegativeRate() {
	ctx := context.Background()
	req := dto.CreateTaxCodeRequest{
		Code:        "NR",
		Name:        "Negative Rate",
		RatePercent: decimal.RequireFromString("-1"),
	}

	suite.authorizeMember()

	_, err := suite.service.CreateTaxCode(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTaxCodeRepo.AssertNotCalled(suite.T(), "SaveTaxCode", mock.Anything, mock.Anything)
}

func (suite *TaxCodeServiceTestSuite) TestCreateTaxCode_GLAccountInOtherCompany() {
	ctx := context.Background()
	glAccount := &domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: uuid.NewString(),
		Code:      "2100",
	}
	req := dto.CreateTaxCodeRequest{
		Code:        "SR",
		Name:        "Standard-Rated Supply",
		RatePercent: decimal.RequireFromString("9"),
		GLAccountID: &glAccount.AccountID,
	}

	suite.authorizeMember()
	suite.mockAccountReader.On("FindAccountByID", ctx, glAccount.AccountID).Return(glAccount, nil).Once()

	_, err := suite.service.CreateTaxCode(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTaxCodeRepo.AssertNotCalled(suite.T(), "SaveTaxCode", mock.Anything, mock.Anything)
}

func (suite *TaxCodeServiceTestSuite) TestCreateTaxCode_GLAccountMissing() {
	ctx := context.Background()
	glAccountID := uuid.NewString()
	req := dto.CreateTaxCodeRequest{
		Code:        "SR",
		Name:        "Standard-Rated Supply",
		RatePercent: decimal.RequireFromString("9"),
		GLAccountID: &glAccountID,
	}

	suite.authorizeMember()
	suite.mockAccountReader.On("FindAccountByID", ctx, glAccountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTaxCode(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TaxCodeServiceTestSuite) TestUpdateTaxCode_NegativeRate() {
	ctx := context.Background()
	existing := &domain.TaxCode{
		TaxCodeID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "SR",
		Name:        "Standard-Rated Supply",
		TaxType:     domain.TaxTypeGST,
		RatePercent: decimal.RequireFromString("9"),
		IsActive:    true,
	}
	badRate := decimal.RequireFromString("-5")

	suite.authorizeMember()
	suite.mockTaxCodeRepo.On("FindTaxCodeByID", ctx, existing.TaxCodeID).Return(existing, nil).Once()

	_, err := suite.service.UpdateTaxCode(ctx, suite.companyID, existing.TaxCodeID, dto.UpdateTaxCodeRequest{RatePercent: &badRate}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTaxCodeRepo.AssertNotCalled(suite.T(), "UpdateTaxCode", mock.Anything, mock.Anything)
}

func (suite *TaxCodeServiceTestSuite) TestGetTaxCodeByID_WrongCompany() {
	ctx := context.Background()
	foreign := &domain.TaxCode{
		TaxCodeID: uuid.NewString(),
		CompanyID: uuid.NewString(),
		Code:      "SR",
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTaxCodeRepo.On("FindTaxCodeByID", ctx, foreign.TaxCodeID).Return(foreign, nil).Once()

	_, err := suite.service.GetTaxCodeByID(ctx, suite.companyID, foreign.TaxCodeID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TaxCodeServiceTestSuite) TestDeactivateTaxCode_Success() {
	ctx := context.Background()
	existing := &domain.TaxCode{
		TaxCodeID: uuid.NewString(),
		CompanyID: suite.companyID,
		Code:      "ZR",
		IsActive:  true,
	}

	suite.authorizeMember()
	suite.mockTaxCodeRepo.On("FindTaxCodeByID", ctx, existing.TaxCodeID).Return(existing, nil).Once()
	suite.mockTaxCodeRepo.On("DeactivateTaxCode", ctx, existing.TaxCodeID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateTaxCode(ctx, suite.companyID, existing.TaxCodeID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTaxCodeRepo.AssertExpectations(suite.T())
}

func TestTaxCodeService(t *testing.T) {
	suite.Run(t, new(TaxCodeServiceTestSuite))
}
