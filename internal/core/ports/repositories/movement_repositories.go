package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/centavohq/centavo_app/internal/core/domain"
)

// MovementReader defines read operations for committed movements.
type MovementReader interface {
	// FindMovementByID retrieves a movement by its correlation identifier.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// FindTransactionsByMovementID retrieves all ledger entries belonging to
	// a movement.
	FindTransactionsByMovementID(ctx context.Context, movementID string) ([]domain.Transaction, error)

	// SumPendingExpenses is the advisory counterpart of
	// SumPendingExpensesInTx, reading without a lock. Suitable for the UX
	// pre-check only; commits must use the in-transaction variant.
	SumPendingExpenses(ctx context.Context, accountID string, excludeTransactionID *string) (int64, error)
}

// MovementTxReader defines in-transaction reads for the coordinator's
// idempotency and exposure checks.
type MovementTxReader interface {
	// FindMovementByIDForUpdateInTx retrieves and locks a movement row, or
	// returns ErrNotFound. Used to detect retries of an already-confirmed
	// correlation identifier.
	FindMovementByIDForUpdateInTx(ctx context.Context, tx pgx.Tx, movementID string) (*domain.Movement, error)

	// SumPendingExpensesInTx sums the magnitudes of pending expense entries
	// on an account, optionally excluding one transaction (the one under
	// edit). Read under the account row lock so the figure is authoritative.
	SumPendingExpensesInTx(ctx context.Context, tx pgx.Tx, accountID string, excludeTransactionID *string) (int64, error)
}

// MovementTxWriter defines in-transaction writes for committing movements.
// The ledger is append-only: entries are inserted, never deleted; reversal is
// recorded as additional rows plus a status flip on the original movement.
type MovementTxWriter interface {
	// InsertMovementInTx persists the movement correlation record.
	InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error

	// InsertTransactionsInTx persists the movement's ledger entries.
	InsertTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.Transaction) error

	// MarkMovementReversedInTx flips a confirmed movement to REVERSED and
	// links it to the reversing movement.
	MarkMovementReversedInTx(ctx context.Context, tx pgx.Tx, movementID string, reversedByMovementID string, userID string, now time.Time) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces.
type MovementRepositoryFacade interface {
	MovementReader
	MovementTxReader
	MovementTxWriter
}

// MovementRepositoryWithTx extends MovementRepositoryFacade with database
// transaction control.
type MovementRepositoryWithTx interface {
	MovementRepositoryFacade
	TransactionManager
}
