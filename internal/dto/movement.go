package dto

import (
	"time"

	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/core/ledger"
)

// TransferRequest moves funds between two accounts as one atomic movement.
// CorrelationID is an optional idempotency key: retrying with the same id
// returns the original result instead of applying the movement again.
type TransferRequest struct {
	FromAccountID string    `json:"fromAccountID" binding:"required"`
	ToAccountID   string    `json:"toAccountID" binding:"required"`
	Amount        int64     `json:"amount" binding:"required,gt=0"`
	Date          time.Time `json:"date" binding:"required"`
	Description   string    `json:"description"`
	CorrelationID *string   `json:"correlationID"`
}

// PaymentRequest pays a credit-card bill from a bank account: structurally a
// transfer with the credit account as destination.
type PaymentRequest struct {
	CreditAccountID string    `json:"creditAccountID" binding:"required"`
	BankAccountID   string    `json:"bankAccountID" binding:"required"`
	Amount          int64     `json:"amount" binding:"required,gt=0"`
	Date            time.Time `json:"date" binding:"required"`
	Description     string    `json:"description"`
	CorrelationID   *string   `json:"correlationID"`
}

// ValidateMovementRequest is the advisory affordability pre-check. The result
// is for display only; the authoritative check reruns inside the commit.
type ValidateMovementRequest struct {
	AccountID         string                 `json:"accountID" binding:"required"`
	Amount            int64                  `json:"amount" binding:"required,gt=0"`
	Kind              domain.TransactionKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	EditTransactionID *string                `json:"editTransactionID"` // Set when editing an existing entry
}

// ValidateMovementResponse wraps the validator's decision.
type ValidateMovementResponse struct {
	ledger.Result
}

// MovementResponse is the committed (or re-fetched) state of a movement: the
// correlation record, its ledger entries and the affected accounts after the
// balance updates.
type MovementResponse struct {
	MovementID   string                    `json:"movementID"`
	Kind         domain.MovementKind       `json:"kind"`
	Status       domain.MovementStatus     `json:"status"`
	Amount       int64                     `json:"amount"`
	Date         time.Time                 `json:"date"`
	Description  string                    `json:"description"`
	Transactions []TransactionResponse     `json:"transactions"`
	Accounts     map[string]AccountResponse `json:"accounts,omitempty"`

	OriginalMovementID   *string `json:"originalMovementID,omitempty"`
	ReversedByMovementID *string `json:"reversedByMovementID,omitempty"`
}

// ToMovementResponse assembles a MovementResponse from domain state.
func ToMovementResponse(m *domain.Movement, txns []domain.Transaction, accounts map[string]domain.Account) MovementResponse {
	resp := MovementResponse{
		MovementID:           m.MovementID,
		Kind:                 m.Kind,
		Status:               m.Status,
		Amount:               m.Amount,
		Date:                 m.Date,
		Description:          m.Description,
		Transactions:         ToTransactionResponses(txns),
		OriginalMovementID:   m.OriginalMovementID,
		ReversedByMovementID: m.ReversedByMovementID,
	}
	if len(accounts) > 0 {
		resp.Accounts = make(map[string]AccountResponse, len(accounts))
		for id, acc := range accounts {
			resp.Accounts[id] = ToAccountResponse(&acc)
		}
	}
	return resp
}
