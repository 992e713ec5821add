package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/centavohq/centavo_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves all accounts owned by a user.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account metadata. Balances are
// deliberately absent: only the movement coordinator mutates balances, and
// only through AccountTxWriter inside a database transaction.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an account's metadata (name, limit, billing cycle).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTxReader defines in-transaction reads used by the movement
// coordinator for its authoritative checks.
type AccountTxReader interface {
	// FindAccountsByIDsForUpdate retrieves accounts by IDs and locks their
	// rows for the remainder of the transaction. Returns ErrNotFound if any
	// requested account is missing.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
}

// AccountTxWriter defines in-transaction balance mutations.
type AccountTxWriter interface {
	// UpdateAccountBalancesInTx applies signed balance deltas to the given
	// accounts. Callers must have locked the rows first.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]int64, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTxReader
	AccountTxWriter
}
