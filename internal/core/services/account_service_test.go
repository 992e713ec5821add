package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/centavohq/centavo_app/internal/apperrors"
	"github.com/centavohq/centavo_app/internal/core/domain"
	portssvc "github.com/centavohq/centavo_app/internal/core/ports/services"
	"github.com/centavohq/centavo_app/internal/core/services"
	"github.com/centavohq/centavo_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	userID   string
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockRepo)
	s.userID = "user-1"
}

func (s *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	s.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	req := dto.CreateAccountRequest{
		Name:           "Everyday Checking",
		Kind:           domain.Checking,
		InitialBalance: 150_000,
	}
	account, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().NoError(err)
	s.NotEmpty(account.AccountID)
	s.Equal(s.userID, account.UserID)
	s.Equal(int64(150_000), account.Balance)
	s.True(account.IsActive)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_CreditWithBillingCycle() {
	ctx := context.Background()
	s.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	req := dto.CreateAccountRequest{
		Name:        "Rewards Card",
		Kind:        domain.Credit,
		CreditLimit: 800_000,
		ClosingDay:  5,
		DueDay:      12,
	}
	account, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Equal(5, account.ClosingDay)
	s.Equal(12, account.DueDay)
	s.Equal(int64(800_000), account.AvailableFunds())
}

func (s *AccountServiceTestSuite) TestCreateAccount_RejectsBillingCycleOnBankAccount() {
	req := dto.CreateAccountRequest{
		Name:       "Checking",
		Kind:       domain.Checking,
		ClosingDay: 5,
	}
	_, err := s.service.CreateAccount(context.Background(), req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestGetAccountByID_HidesForeignAccount() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc-1", UserID: "someone-else", IsActive: true}
	s.mockRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()

	_, err := s.service.GetAccountByID(ctx, "acc-1", s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_AppliesPartialChanges() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:   "acc-1",
		UserID:      s.userID,
		Name:        "Card",
		Kind:        domain.Credit,
		CreditLimit: 500_000,
		ClosingDay:  5,
		DueDay:      12,
		IsActive:    true,
	}
	s.mockRepo.On("FindAccountByID", ctx, "acc-1").Return(existing, nil).Once()
	s.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	newLimit := int64(900_000)
	updated, err := s.service.UpdateAccount(ctx, "acc-1", dto.UpdateAccountRequest{CreditLimit: &newLimit}, s.userID)

	s.Require().NoError(err)
	s.Equal(int64(900_000), updated.CreditLimit)
	s.Equal("Card", updated.Name) // untouched
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: "acc-1", UserID: s.userID, IsActive: true}
	s.mockRepo.On("FindAccountByID", ctx, "acc-1").Return(existing, nil).Once()
	s.mockRepo.On("DeactivateAccount", ctx, "acc-1", s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.DeactivateAccount(ctx, "acc-1", s.userID)

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
