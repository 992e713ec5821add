package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/centavohq/centavo_app/internal/core/domain"
)

// TransactionReader defines read operations for ledger entries outside the
// coordinator's commit path.
type TransactionReader interface {
	// FindTransactionByID retrieves a single ledger entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a paginated list of entries for an
	// account using token-based pagination. It returns the entries, a token
	// for the next page, and an error.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListRecomputableCardTransactions retrieves the credit-card entries of
	// an account whose invoice month has not been manually overridden.
	ListRecomputableCardTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for editing existing entries and
// batch maintenance.
type TransactionWriter interface {
	// UpdateTransactionInTx rewrites an entry's mutable fields (amount,
	// date, category, status, invoice month) inside a database transaction.
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateInvoiceMonths applies recomputed invoice months to the given
	// transaction IDs. Overridden entries must never appear in updates.
	UpdateInvoiceMonths(ctx context.Context, updates map[string]string, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines transaction read and write interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
