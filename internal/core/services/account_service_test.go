package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/core/services"
	"github.com/finbooks/gl_engine/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Account)
	}).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.Equal("1000", saved.Code)
	suite.Equal(domain.DebitNormal, account.NormalBalance())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsEmptyCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "  ", Name: "Cash", AccountType: domain.Asset}

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsInvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "SUSPENSE"}

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}

	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_MutableFieldsOnly() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	newName := "Cash and Equivalents"

	var updated domain.Account
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updated = args.Get(1).(domain.Account)
	}).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, existing.AccountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Cash and Equivalents", account.Name)
	// Code and type survive the update untouched.
	suite.Equal("1000", updated.Code)
	suite.Equal(domain.Asset, updated.AccountType)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_EmptyNameRejected() {
	ctx := context.Background()
	existing := domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset}
	blank := "   "

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, existing.AccountID).Return(&existing, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, existing.AccountID, dto.UpdateAccountRequest{Name: &blank}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	existing := domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", mock.Anything, existing.AccountID, suite.userID, mock.Anything).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, existing.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestInitializeChartOfAccounts_SkipsExisting() {
	ctx := context.Background()
	existingCash := domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true}

	// Cash already exists; every other seed is missing and gets created.
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, "1000").Return(&existingCash, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.Anything).Return(nil)

	err := suite.service.InitializeChartOfAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", 18)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
