package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/centavohq/centavo_app/internal/apperrors"
	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/core/ledger"
	portssvc "github.com/centavohq/centavo_app/internal/core/ports/services"
	"github.com/centavohq/centavo_app/internal/core/services"
	"github.com/centavohq/centavo_app/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockMovementRepo *MockMovementRepository
	mockTxnRepo      *MockTransactionRepository
	mockMovementSvc  *MockMovementService
	service          portssvc.TransactionSvcFacade

	userID      string
	bankAccount domain.Account
	cardAccount domain.Account
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockMovementRepo = new(MockMovementRepository)
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockMovementSvc = new(MockMovementService)

	accountSvc := services.NewAccountService(s.mockAccountRepo)
	s.service = services.NewTransactionService(
		accountSvc,
		s.mockMovementSvc,
		s.mockTxnRepo,
		s.mockMovementRepo,
		s.mockAccountRepo,
		ledger.Validator{WarnRatio: ledger.DefaultWarnRatio},
	)

	s.userID = "user-1"
	s.bankAccount = domain.Account{
		AccountID: "acc-bank",
		UserID:    s.userID,
		Kind:      domain.Checking,
		Balance:   100_000,
		IsActive:  true,
	}
	s.cardAccount = domain.Account{
		AccountID:   "acc-card",
		UserID:      s.userID,
		Kind:        domain.Credit,
		Balance:     0,
		CreditLimit: 500_000,
		ClosingDay:  5,
		DueDay:      12,
		IsActive:    true,
	}
}

func (s *TransactionServiceTestSuite) movementOK() *dto.MovementResponse {
	return &dto.MovementResponse{MovementID: "mov-x", Status: domain.MovementConfirmed}
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_BankInstallmentsSplit() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.bankAccount.AccountID).Return(&s.bankAccount, nil).Once()

	var committed []domain.Transaction
	s.mockMovementSvc.On("CommitEntries", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("[]domain.Transaction"), "new couch", s.userID).
		Run(func(args mock.Arguments) {
			committed = args.Get(2).([]domain.Transaction)
		}).
		Return(s.movementOK(), nil).Once()

	req := dto.CreateTransactionRequest{
		AccountID:        s.bankAccount.AccountID,
		Kind:             domain.Expense,
		Amount:           1_000,
		Date:             time.Now().UTC(),
		Description:      "new couch",
		InstallmentCount: 3,
	}
	entries, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Require().Len(committed, 3)

	// Floor split with the remainder on the first piece.
	s.Equal(int64(334), entries[0].Amount)
	s.Equal(int64(333), entries[1].Amount)
	s.Equal(int64(333), entries[2].Amount)

	var total int64
	for i, e := range entries {
		total += e.Amount
		s.Equal(i+1, e.InstallmentIndex)
		s.Equal(3, e.InstallmentCount)
		s.Require().NotNil(e.ParentTransactionID)
		s.Equal(*entries[0].ParentTransactionID, *e.ParentTransactionID)
		s.Nil(e.InvoiceMonth) // not a card entry
	}
	s.Equal(req.Amount, total)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_CardInstallmentStaysSingle() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.cardAccount.AccountID).Return(&s.cardAccount, nil).Once()
	s.mockMovementSvc.On("CommitEntries", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("string"), s.userID).
		Return(s.movementOK(), nil).Once()

	req := dto.CreateTransactionRequest{
		AccountID:        s.cardAccount.AccountID,
		Kind:             domain.Expense,
		Amount:           90_000,
		Date:             time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		InstallmentCount: 3,
	}
	entries, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(int64(90_000), entries[0].Amount)
	s.Equal(3, entries[0].InstallmentCount)
	s.Equal(1, entries[0].InstallmentIndex)

	// March 10 is past the closing day 5, so it lands on April's invoice.
	s.Require().NotNil(entries[0].InvoiceMonth)
	s.Equal("2025-04", *entries[0].InvoiceMonth)
	s.False(entries[0].InvoiceMonthOverridden)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_InvoiceMonthOverrideWins() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.cardAccount.AccountID).Return(&s.cardAccount, nil).Once()
	s.mockMovementSvc.On("CommitEntries", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("string"), s.userID).
		Return(s.movementOK(), nil).Once()

	req := dto.CreateTransactionRequest{
		AccountID:    s.cardAccount.AccountID,
		Kind:         domain.Expense,
		Amount:       5_000,
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		InvoiceMonth: "2025-06",
	}
	entries, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Require().NotNil(entries[0].InvoiceMonth)
	s.Equal("2025-06", *entries[0].InvoiceMonth)
	s.True(entries[0].InvoiceMonthOverridden)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_InstallmentsRequireExpense() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.bankAccount.AccountID).Return(&s.bankAccount, nil).Once()

	req := dto.CreateTransactionRequest{
		AccountID:        s.bankAccount.AccountID,
		Kind:             domain.Income,
		Amount:           1_000,
		Date:             time.Now().UTC(),
		InstallmentCount: 3,
	}
	_, err := s.service.CreateTransaction(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockMovementSvc.AssertNotCalled(s.T(), "CommitEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_NetChangeValidatedAndBalanceAdjusted() {
	ctx := context.Background()
	original := &domain.Transaction{
		TransactionID: "txn-1",
		AccountID:     s.bankAccount.AccountID,
		Kind:          domain.Expense,
		Amount:        10_000,
		Date:          time.Now().UTC().AddDate(0, 0, -1),
		Status:        domain.Completed,
	}

	s.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(original, nil).Once()
	s.mockMovementRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	s.mockMovementRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	s.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{s.bankAccount.AccountID}).
		Return(map[string]domain.Account{s.bankAccount.AccountID: s.bankAccount}, nil).Once()
	s.mockTxnRepo.On("UpdateTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	s.mockAccountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything, map[string]int64{s.bankAccount.AccountID: -5_000}, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockMovementRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	newAmount := int64(15_000)
	updated, err := s.service.UpdateTransaction(ctx, "txn-1", dto.UpdateTransactionRequest{Amount: &newAmount}, s.userID)

	s.Require().NoError(err)
	s.Equal(int64(15_000), updated.Amount)
	s.mockAccountRepo.AssertExpectations(s.T())
	s.mockMovementRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_RejectsLinkedEntries() {
	ctx := context.Background()
	linkedID := "txn-other"
	movementID := "mov-1"
	original := &domain.Transaction{
		TransactionID:       "txn-1",
		AccountID:           s.bankAccount.AccountID,
		Kind:                domain.Expense,
		Amount:              10_000,
		Status:              domain.Completed,
		LinkedTransactionID: &linkedID,
		MovementID:          &movementID,
	}
	s.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(original, nil).Once()

	newAmount := int64(5_000)
	_, err := s.service.UpdateTransaction(ctx, "txn-1", dto.UpdateTransactionRequest{Amount: &newAmount}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockMovementRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_StatusFlipAdjustsBalance() {
	ctx := context.Background()
	original := &domain.Transaction{
		TransactionID: "txn-1",
		AccountID:     s.bankAccount.AccountID,
		Kind:          domain.Expense,
		Amount:        10_000,
		Date:          time.Now().UTC().AddDate(0, 0, 3),
		Status:        domain.Pending, // no balance effect yet
	}

	s.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(original, nil).Once()
	s.mockMovementRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	s.mockMovementRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	s.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{s.bankAccount.AccountID}).
		Return(map[string]domain.Account{s.bankAccount.AccountID: s.bankAccount}, nil).Once()
	s.mockTxnRepo.On("UpdateTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	// Completing a pending expense applies its full amount.
	s.mockAccountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything, map[string]int64{s.bankAccount.AccountID: -10_000}, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockMovementRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	completed := domain.Completed
	updated, err := s.service.UpdateTransaction(ctx, "txn-1", dto.UpdateTransactionRequest{Status: &completed}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Completed, updated.Status)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestRecomputeInvoiceMonths_UpdatesOnlyChangedEntries() {
	ctx := context.Background()
	// Closing day has moved from 5 to 15; entries dated the 10th now belong
	// to the current month instead of the next.
	s.cardAccount.ClosingDay = 15
	s.mockAccountRepo.On("FindAccountByID", ctx, s.cardAccount.AccountID).Return(&s.cardAccount, nil).Once()

	aprMonth := "2025-04"
	marMonth := "2025-03"
	txns := []domain.Transaction{
		{TransactionID: "txn-1", AccountID: s.cardAccount.AccountID, Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), InvoiceMonth: &aprMonth},
		{TransactionID: "txn-2", AccountID: s.cardAccount.AccountID, Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), InvoiceMonth: &marMonth},
	}
	s.mockTxnRepo.On("ListRecomputableCardTransactions", ctx, s.cardAccount.AccountID).Return(txns, nil).Once()
	s.mockTxnRepo.On("UpdateInvoiceMonths", ctx, map[string]string{"txn-1": "2025-03"}, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := s.service.RecomputeInvoiceMonths(ctx, s.cardAccount.AccountID, s.userID)

	s.Require().NoError(err)
	s.Equal(1, updated)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestRecomputeInvoiceMonths_RejectsNonCreditAccount() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.bankAccount.AccountID).Return(&s.bankAccount, nil).Once()

	_, err := s.service.RecomputeInvoiceMonths(ctx, s.bankAccount.AccountID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockTxnRepo.AssertNotCalled(s.T(), "ListRecomputableCardTransactions", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestListTransactionsByAccount_DefaultsLimit() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.bankAccount.AccountID).Return(&s.bankAccount, nil).Once()
	s.mockTxnRepo.On("ListTransactionsByAccount", ctx, s.bankAccount.AccountID, 20, (*string)(nil)).
		Return([]domain.Transaction{{TransactionID: "txn-1"}}, nil, nil).Once()

	resp, err := s.service.ListTransactionsByAccount(ctx, s.bankAccount.AccountID, dto.ListTransactionsParams{}, s.userID)

	s.Require().NoError(err)
	s.Len(resp.Transactions, 1)
	s.Nil(resp.NextToken)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
