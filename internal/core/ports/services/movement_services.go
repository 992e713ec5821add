package services

import (
	"context"

	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/dto"
)

// MovementSvcFacade is the atomic ledger transaction coordinator: the only
// component that mutates account balances. Every operation commits as one
// indivisible unit: either all entries and balance updates land, or none do.
type MovementSvcFacade interface {
	// ExecuteTransfer commits a two-sided movement between two accounts.
	ExecuteTransfer(ctx context.Context, req dto.TransferRequest, userID string) (*dto.MovementResponse, error)

	// ExecutePayment commits a credit-card bill payment: debit on the bank
	// account, income on the credit account.
	ExecutePayment(ctx context.Context, req dto.PaymentRequest, userID string) (*dto.MovementResponse, error)

	// CommitEntries commits pre-built single-account entries (a plain
	// transaction or an installment group) through the same validated,
	// atomic, idempotent path as two-sided movements. All entries must
	// target the same account.
	CommitEntries(ctx context.Context, correlationID string, entries []domain.Transaction, description string, userID string) (*dto.MovementResponse, error)

	// ReverseMovement commits the exact inverse of a confirmed movement.
	// Original rows are never deleted or mutated beyond the REVERSED mark.
	ReverseMovement(ctx context.Context, movementID string, userID string) (*dto.MovementResponse, error)

	// GetMovement fetches a movement with its entries.
	GetMovement(ctx context.Context, movementID string) (*dto.MovementResponse, error)

	// ValidateMovement runs the advisory affordability check against the
	// latest persisted snapshot, without locking or mutating anything.
	ValidateMovement(ctx context.Context, req dto.ValidateMovementRequest, userID string) (*dto.ValidateMovementResponse, error)
}
