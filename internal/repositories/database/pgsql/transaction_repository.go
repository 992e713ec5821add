package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/centavohq/centavo_app/internal/apperrors"
	"github.com/centavohq/centavo_app/internal/core/domain"
	portsrepo "github.com/centavohq/centavo_app/internal/core/ports/repositories"
	"github.com/centavohq/centavo_app/internal/models"
	"github.com/centavohq/centavo_app/internal/utils/mapping"
	"github.com/centavohq/centavo_app/internal/utils/pagination"
)

const transactionColumns = `transaction_id, account_id, to_account_id, kind, amount, date, status, category_id, description, installment_count, installment_index, parent_transaction_id, invoice_month, invoice_month_overridden, linked_transaction_id, movement_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.ToAccountID,
		&m.Kind,
		&m.Amount,
		&m.Date,
		&m.Status,
		&m.CategoryID,
		&m.Description,
		&m.InstallmentCount,
		&m.InstallmentIndex,
		&m.ParentTransactionID,
		&m.InvoiceMonth,
		&m.InvoiceMonthOverridden,
		&m.LinkedTransactionID,
		&m.MovementID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindTransactionByID retrieves a single ledger entry.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactionsByAccount retrieves a page of entries for an account,
// newest first, using (date, transaction_id) token pagination.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1`
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (date, transaction_id) < ($2, $3)`
		args = append(args, tokenDate, tokenID)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY date DESC, transaction_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var newToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		token := pagination.EncodeToken(last.Date, last.TransactionID)
		newToken = &token
	}
	return txns, newToken, nil
}

// ListRecomputableCardTransactions retrieves an account's entries that carry
// an invoice month which has not been manually overridden.
func (r *PgxTransactionRepository) ListRecomputableCardTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1 AND invoice_month IS NOT NULL AND invoice_month_overridden = FALSE;
	`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recomputable transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// UpdateTransactionInTx rewrites an entry's mutable fields inside the given
// transaction. Identity and linkage columns are never touched.
func (r *PgxTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET amount = $2, date = $3, status = $4, category_id = $5, description = $6,
		    invoice_month = $7, invoice_month_overridden = $8, last_updated_at = $9, last_updated_by = $10
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Amount,
		m.Date,
		m.Status,
		m.CategoryID,
		m.Description,
		m.InvoiceMonth,
		m.InvoiceMonthOverridden,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateInvoiceMonths applies recomputed invoice months as one batch. The
// overridden guard is belt and braces: callers already filter overridden
// entries out.
func (r *PgxTransactionRepository) UpdateInvoiceMonths(ctx context.Context, updates map[string]string, userID string, now time.Time) error {
	if len(updates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		UPDATE transactions
		SET invoice_month = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND invoice_month_overridden = FALSE;
	`
	for transactionID, invoiceMonth := range updates {
		batch.Queue(query, transactionID, invoiceMonth, now, userID)
	}

	br := r.pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to apply invoice month updates: %w", err)
	}
	return nil
}
