package dto

import (
	"time"

	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/utils"
)

// CreateTransactionRequest defines a single-account transaction or an
// installment purchase. InstallmentCount zero means no installments; values
// 2-60 trigger allocation (split for bank accounts, single tagged entry for
// cards). InvoiceMonth, when set, is a manual override and wins over the
// computed billing period.
type CreateTransactionRequest struct {
	AccountID        string                 `json:"accountID" binding:"required"`
	Kind             domain.TransactionKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount           int64                  `json:"amount" binding:"required,gt=0"`
	Date             time.Time              `json:"date" binding:"required"`
	CategoryID       *string                `json:"categoryID"`
	Description      string                 `json:"description"`
	InstallmentCount int                    `json:"installmentCount" binding:"omitempty,min=2,max=60"`
	InvoiceMonth     string                 `json:"invoiceMonth" binding:"omitempty,invoicemonth"` // "YYYY-MM" override
	CorrelationID    *string                `json:"correlationID"`                          // Optional idempotency key
}

// UpdateTransactionRequest defines the editable fields of an existing entry.
// Edits are re-validated against the account with net-change semantics.
type UpdateTransactionRequest struct {
	Amount       *int64                    `json:"amount" binding:"omitempty,gt=0"`
	Kind         *domain.TransactionKind   `json:"kind" binding:"omitempty,oneof=INCOME EXPENSE"`
	Date         *time.Time                `json:"date"`
	CategoryID   *string                   `json:"categoryID"`
	Description  *string                   `json:"description"`
	Status       *domain.TransactionStatus `json:"status" binding:"omitempty,oneof=PENDING COMPLETED"`
	InvoiceMonth *string                   `json:"invoiceMonth" binding:"omitempty,invoicemonth"` // Sets the override
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID          string                   `json:"transactionID"`
	AccountID              string                   `json:"accountID"`
	ToAccountID            *string                  `json:"toAccountID,omitempty"`
	Kind                   domain.TransactionKind   `json:"kind"`
	Amount                 int64                    `json:"amount"`
	DisplayAmount          string                   `json:"displayAmount"`
	Date                   time.Time                `json:"date"`
	Status                 domain.TransactionStatus `json:"status"`
	CategoryID             *string                  `json:"categoryID,omitempty"`
	Description            string                   `json:"description"`
	InstallmentCount       int                      `json:"installmentCount,omitempty"`
	InstallmentIndex       int                      `json:"installmentIndex,omitempty"`
	ParentTransactionID    *string                  `json:"parentTransactionID,omitempty"`
	InvoiceMonth           *string                  `json:"invoiceMonth,omitempty"`
	InvoiceMonthOverridden bool                     `json:"invoiceMonthOverridden"`
	LinkedTransactionID    *string                  `json:"linkedTransactionID,omitempty"`
	MovementID             *string                  `json:"movementID,omitempty"`
	CreatedAt              time.Time                `json:"createdAt"`
}

// ListTransactionsParams holds pagination parameters for listing entries.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of entries plus the token for the next
// page, if any.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// RecomputeResponse reports a batch invoice-month recomputation.
type RecomputeResponse struct {
	UpdatedCount int `json:"updatedCount"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:          txn.TransactionID,
		AccountID:              txn.AccountID,
		ToAccountID:            txn.ToAccountID,
		Kind:                   txn.Kind,
		Amount:                 txn.Amount,
		DisplayAmount:          utils.FormatMinorUnits(txn.Amount, utils.DefaultPrecision),
		Date:                   txn.Date,
		Status:                 txn.Status,
		CategoryID:             txn.CategoryID,
		Description:            txn.Description,
		InstallmentCount:       txn.InstallmentCount,
		InstallmentIndex:       txn.InstallmentIndex,
		ParentTransactionID:    txn.ParentTransactionID,
		InvoiceMonth:           txn.InvoiceMonth,
		InvoiceMonthOverridden: txn.InvoiceMonthOverridden,
		LinkedTransactionID:    txn.LinkedTransactionID,
		MovementID:             txn.MovementID,
		CreatedAt:              txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
