package services

import (
	"context"

	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/dto"
)

// TransactionSvcFacade defines operations on individual ledger entries:
// creation (including installment purchases), edits with re-validation, and
// the invoice-month maintenance recomputation.
type TransactionSvcFacade interface {
	// CreateTransaction resolves the invoice month, allocates installments
	// when requested, and commits the resulting entries through the movement
	// coordinator.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) ([]domain.Transaction, error)

	// UpdateTransaction edits an entry's amount/date/category/kind, charging
	// only the net change against the account's availability.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a page of an account's entries.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams, userID string) (*dto.ListTransactionsResponse, error)

	// RecomputeInvoiceMonths re-derives the billing period of every
	// non-overridden card entry of an account, after a closing-day change.
	RecomputeInvoiceMonths(ctx context.Context, accountID string, userID string) (int, error)
}
