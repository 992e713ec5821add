package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/centavohq/centavo_app/internal/apperrors"
	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/core/ledger"
	portsrepo "github.com/centavohq/centavo_app/internal/core/ports/repositories"
	portssvc "github.com/centavohq/centavo_app/internal/core/ports/services"
	"github.com/centavohq/centavo_app/internal/dto"
	"github.com/centavohq/centavo_app/internal/middleware"
)

const defaultListLimit = 20

// transactionService creates and edits individual ledger entries. Creation
// composes the pure core (invoice resolver, installment allocator) and hands
// the resulting entries to the movement coordinator; edits run under the same
// per-account lock discipline the coordinator uses.
type transactionService struct {
	accountSvc   portssvc.AccountSvcFacade
	movementSvc  portssvc.MovementSvcFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	movementRepo portsrepo.MovementRepositoryWithTx
	accountRepo  portsrepo.AccountRepositoryFacade
	validator    ledger.Validator
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	accountSvc portssvc.AccountSvcFacade,
	movementSvc portssvc.MovementSvcFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	movementRepo portsrepo.MovementRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	validator ledger.Validator,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		accountSvc:   accountSvc,
		movementSvc:  movementSvc,
		txnRepo:      txnRepo,
		movementRepo: movementRepo,
		accountRepo:  accountRepo,
		validator:    validator,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction builds the ledger entries for a request (one entry, or
// an installment allocation), resolves the billing period for card entries,
// and commits everything atomically through the coordinator.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}

	account, err := s.accountSvc.GetAccountByID(ctx, req.AccountID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var entries []domain.Transaction

	if req.InstallmentCount > 0 {
		if req.Kind != domain.Expense {
			return nil, fmt.Errorf("%w: installments apply only to expenses", apperrors.ErrValidation)
		}
		entries, err = ledger.AllocateInstallments(ledger.InstallmentPlan{
			AccountID:   account.AccountID,
			AccountKind: account.Kind,
			Total:       req.Amount,
			Count:       req.InstallmentCount,
			StartDate:   req.Date,
			CategoryID:  req.CategoryID,
			Description: req.Description,
			Today:       now,
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries = []domain.Transaction{{
			TransactionID: uuid.NewString(),
			AccountID:     account.AccountID,
			Kind:          req.Kind,
			Amount:        req.Amount,
			Date:          req.Date,
			Status:        statusFor(req.Date, now),
			CategoryID:    req.CategoryID,
			Description:   req.Description,
		}}
	}

	// Billing-period classification applies to credit-card entries only. A
	// caller-supplied invoice month is a manual override and is recorded as
	// such so later recomputations leave it alone.
	if account.Kind == domain.Credit {
		for i := range entries {
			month := ledger.ResolveInvoiceMonth(entries[i].Date, account.ClosingDay, req.InvoiceMonth)
			entries[i].InvoiceMonth = &month
			entries[i].InvoiceMonthOverridden = req.InvoiceMonth != ""
		}
	}

	for i := range entries {
		entries[i].AuditFields = newAuditFields(userID, now)
	}

	correlationID := uuid.NewString()
	if req.CorrelationID != nil && *req.CorrelationID != "" {
		correlationID = *req.CorrelationID
	}

	resp, err := s.movementSvc.CommitEntries(ctx, correlationID, entries, req.Description, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction created",
		slog.String("account_id", account.AccountID),
		slog.Int("entries", len(entries)),
		slog.String("movement_id", resp.MovementID),
	)
	return entries, nil
}

// UpdateTransaction edits an entry's mutable fields. The affordability check
// charges only the net change versus the previous committed exposure, and
// the balance adjustment happens under the account's row lock in the same
// database transaction as the rewrite.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if original.MovementID != nil && original.LinkedTransactionID != nil {
		return nil, fmt.Errorf("%w: two-sided movement entries cannot be edited, reverse the movement instead", apperrors.ErrConflict)
	}

	updated := *original
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.Kind != nil {
		updated.Kind = *req.Kind
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.CategoryID != nil {
		updated.CategoryID = req.CategoryID
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.InvoiceMonth != nil {
		updated.InvoiceMonth = req.InvoiceMonth
		updated.InvoiceMonthOverridden = true
	}
	if updated.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	tx, err := s.movementRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin edit transaction: %w", err)
	}
	defer s.movementRepo.Rollback(ctx, tx)

	locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{original.AccountID})
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	account, found := locked[original.AccountID]
	if !found {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, original.AccountID)
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	// Re-derive the invoice month when the date moved and no override is in
	// force.
	if account.Kind == domain.Credit && !updated.InvoiceMonthOverridden {
		month := ledger.ResolveInvoiceMonth(updated.Date, account.ClosingDay, "")
		updated.InvoiceMonth = &month
	}

	if updated.Kind == domain.Expense {
		snap := ledger.Snapshot{Account: account}
		if account.Kind == domain.Credit {
			pending, err := s.movementRepo.SumPendingExpensesInTx(ctx, tx, account.AccountID, &transactionID)
			if err != nil {
				return nil, fmt.Errorf("failed to compute pending exposure: %w", err)
			}
			snap.PendingExposure = pending
		}
		edit := &ledger.EditContext{PreviousAmount: original.Amount, PreviousKind: original.Kind}
		result := s.validator.Validate(snap, updated.Amount, domain.Expense, edit)
		if !result.OK {
			return nil, &apperrors.InsufficientFundsError{Available: result.Available, Shortfall: result.Shortfall}
		}
	}

	if err := s.txnRepo.UpdateTransactionInTx(ctx, tx, updated); err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	// The balance absorbs the difference between the old and new effect of
	// the entry, including status flips between pending and completed.
	delta := updated.BalanceEffect() - original.BalanceEffect()
	if delta != 0 {
		changes := map[string]int64{account.AccountID: delta}
		if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, userID, now); err != nil {
			return nil, fmt.Errorf("failed to adjust balance for edit of %s: %w", transactionID, err)
		}
	}

	if err := s.movementRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit edit of %s: %w", transactionID, err)
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID), slog.Int64("balance_delta", delta))
	return &updated, nil
}

// ListTransactionsByAccount retrieves a page of an account's entries using
// token-based pagination.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams, userID string) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID, userID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByAccount(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// RecomputeInvoiceMonths re-derives the billing period of every
// non-overridden card entry of an account. Run after a closing-day change;
// overridden entries are authoritative and untouched.
func (s *transactionService) RecomputeInvoiceMonths(ctx context.Context, accountID string, userID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountSvc.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return 0, err
	}
	if account.Kind != domain.Credit {
		return 0, fmt.Errorf("%w: invoice recomputation applies only to credit accounts", apperrors.ErrValidation)
	}

	txns, err := s.txnRepo.ListRecomputableCardTransactions(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to list card transactions: %w", err)
	}

	updates := make(map[string]string)
	for _, txn := range txns {
		month := ledger.ResolveInvoiceMonth(txn.Date, account.ClosingDay, "")
		if txn.InvoiceMonth == nil || *txn.InvoiceMonth != month {
			updates[txn.TransactionID] = month
		}
	}
	if len(updates) == 0 {
		return 0, nil
	}

	if err := s.txnRepo.UpdateInvoiceMonths(ctx, updates, userID, time.Now().UTC()); err != nil {
		return 0, fmt.Errorf("failed to apply recomputed invoice months: %w", err)
	}

	logger.Info("Invoice months recomputed", slog.String("account_id", accountID), slog.Int("updated", len(updates)))
	return len(updates), nil
}

func statusFor(date, today time.Time) domain.TransactionStatus {
	if date.After(today) {
		return domain.Pending
	}
	return domain.Completed
}
