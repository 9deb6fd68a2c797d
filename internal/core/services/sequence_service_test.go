package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type DocumentNumberServiceTestSuite struct {
	suite.Suite
	mockSequenceRepo *MockSequenceRepository
	service          portssvc.DocumentNumberSvc
	companyID        string
}

func (suite *DocumentNumberServiceTestSuite) SetupTest() {
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.service = services.NewDocumentNumberService(suite.mockSequenceRepo)
	suite.companyID = uuid.NewString()
}

func (suite *DocumentNumberServiceTestSuite) TestNextJournalNumber_ZeroPadded() {
	ctx := context.Background()
	seq := &domain.DocumentSequence{
		CompanyID:  suite.companyID,
		Kind:       domain.SequenceJournal,
		Prefix:     "JE-",
		Padding:    6,
		LastNumber: 42,
	}

	suite.mockSequenceRepo.On("ReserveNextNumber", ctx, suite.companyID, domain.SequenceJournal).Return(seq, nil).Once()

	number, err := suite.service.NextJournalNumber(ctx, suite.companyID)

	suite.Require().NoError(err)
	suite.Equal("JE-000042", number)
	suite.mockSequenceRepo.AssertExpectations(suite.T())
}

func (suite *DocumentNumberServiceTestSuite) TestNextTaxReturnNumber_UsesOwnSequence() {
	ctx := context.Background()
	seq := &domain.DocumentSequence{
		CompanyID:  suite.companyID,
		Kind:       domain.SequenceTaxReturn,
		Prefix:     "GST-",
		Padding:    4,
		LastNumber: 7,
	}

	suite.mockSequenceRepo.On("ReserveNextNumber", ctx, suite.companyID, domain.SequenceTaxReturn).Return(seq, nil).Once()

	number, err := suite.service.NextTaxReturnNumber(ctx, suite.companyID)

	suite.Require().NoError(err)
	suite.Equal("GST-0007", number)
}

func (suite *DocumentNumberServiceTestSuite) TestNextJournalNumber_GrowsBeyondPadding() {
	ctx := context.Background()
	seq := &domain.DocumentSequence{
		CompanyID:  suite.companyID,
		Kind:       domain.SequenceJournal,
		Prefix:     "JE-",
		Padding:    6,
		LastNumber: 1000000,
	}

	suite.mockSequenceRepo.On("ReserveNextNumber", ctx, suite.companyID, domain.SequenceJournal).Return(seq, nil).Once()

	number, err := suite.service.NextJournalNumber(ctx, suite.companyID)

	suite.Require().NoError(err)
	suite.Equal("JE-1000000", number)
}

func (suite *DocumentNumberServiceTestSuite) TestNextJournalNumber_ReserveFails() {
	ctx := context.Background()

	suite.mockSequenceRepo.On("ReserveNextNumber", ctx, suite.companyID, domain.SequenceJournal).Return(nil, apperrors.ErrInternal).Once()

	number, err := suite.service.NextJournalNumber(ctx, suite.companyID)

	suite.Require().Error(err)
	suite.Empty(number)
}

func TestDocumentNumberService(t *testing.T) {
	suite.Run(t, new(DocumentNumberServiceTestSuite))
}
