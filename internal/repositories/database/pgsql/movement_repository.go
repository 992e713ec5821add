package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/centavohq/centavo_app/internal/apperrors"
	"github.com/centavohq/centavo_app/internal/core/domain"
	portsrepo "github.com/centavohq/centavo_app/internal/core/ports/repositories"
	"github.com/centavohq/centavo_app/internal/models"
	"github.com/centavohq/centavo_app/internal/utils/mapping"
)

const movementColumns = `movement_id, kind, status, amount, date, description, original_movement_id, reversed_by_movement_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for movement data.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryWithTx {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MovementRepositoryWithTx = (*PgxMovementRepository)(nil)

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var m models.Movement
	err := row.Scan(
		&m.MovementID,
		&m.Kind,
		&m.Status,
		&m.Amount,
		&m.Date,
		&m.Description,
		&m.OriginalMovementID,
		&m.ReversedByMovementID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	mov := mapping.ToDomainMovement(m)
	return &mov, nil
}

// FindMovementByID retrieves a movement by its correlation identifier.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE movement_id = $1;`

	mov, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movement by ID %s: %w", movementID, err)
	}
	return mov, nil
}

// FindTransactionsByMovementID retrieves every ledger entry belonging to a
// movement, ordered so the two legs of a pair come out deterministically.
func (r *PgxMovementRepository) FindTransactionsByMovementID(ctx context.Context, movementID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE movement_id = $1 ORDER BY kind DESC, transaction_id;`

	rows, err := r.Pool.Query(ctx, query, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for movement %s: %w", movementID, err)
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

const pendingExpensesQuery = `
	SELECT COALESCE(SUM(amount), 0)
	FROM transactions
	WHERE account_id = $1 AND kind = 'EXPENSE' AND status = 'PENDING'
	  AND ($2::text IS NULL OR transaction_id <> $2);
`

// SumPendingExpenses sums pending expense magnitudes without locking.
// Advisory reads only; the commit path uses SumPendingExpensesInTx.
func (r *PgxMovementRepository) SumPendingExpenses(ctx context.Context, accountID string, excludeTransactionID *string) (int64, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, pendingExpensesQuery, accountID, excludeTransactionID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum pending expenses for account %s: %w", accountID, err)
	}
	return total, nil
}

// SumPendingExpensesInTx sums pending expense magnitudes inside the commit
// transaction. The account row lock held by the caller makes the figure
// authoritative for the validation that follows.
func (r *PgxMovementRepository) SumPendingExpensesInTx(ctx context.Context, tx pgx.Tx, accountID string, excludeTransactionID *string) (int64, error) {
	var total int64
	if err := tx.QueryRow(ctx, pendingExpensesQuery, accountID, excludeTransactionID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum pending expenses for account %s: %w", accountID, err)
	}
	return total, nil
}

// FindMovementByIDForUpdateInTx retrieves and locks a movement row. Returns
// ErrNotFound when the correlation identifier has never been committed, which
// is the normal first-attempt case.
func (r *PgxMovementRepository) FindMovementByIDForUpdateInTx(ctx context.Context, tx pgx.Tx, movementID string) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE movement_id = $1 FOR UPDATE;`

	mov, err := scanMovement(tx.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock movement %s: %w", movementID, err)
	}
	return mov, nil
}

// InsertMovementInTx persists the movement correlation record. A concurrent
// commit of the same correlation identifier surfaces as ErrDuplicate through
// the primary key.
func (r *PgxMovementRepository) InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	m := mapping.ToModelMovement(movement)

	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.Kind,
		m.Status,
		m.Amount,
		m.Date,
		m.Description,
		m.OriginalMovementID,
		m.ReversedByMovementID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: movement %s already committed", apperrors.ErrDuplicate, m.MovementID)
		}
		return fmt.Errorf("failed to insert movement %s: %w", m.MovementID, err)
	}
	return nil
}

// InsertTransactionsInTx persists the movement's ledger entries as a batch.
func (r *PgxMovementRepository) InsertTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	for _, txn := range transactions {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(query,
			m.TransactionID,
			m.AccountID,
			m.ToAccountID,
			m.Kind,
			m.Amount,
			m.Date,
			m.Status,
			m.CategoryID,
			m.Description,
			m.InstallmentCount,
			m.InstallmentIndex,
			m.ParentTransactionID,
			m.InvoiceMonth,
			m.InvoiceMonthOverridden,
			m.LinkedTransactionID,
			m.MovementID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert transaction batch: %w", err)
	}
	return nil
}

// MarkMovementReversedInTx flips a confirmed movement to REVERSED and links
// it to the reversing movement. The status guard makes a double reversal a
// no-op at the SQL level; the coordinator rejects it earlier.
func (r *PgxMovementRepository) MarkMovementReversedInTx(ctx context.Context, tx pgx.Tx, movementID string, reversedByMovementID string, userID string, now time.Time) error {
	query := `
		UPDATE movements
		SET status = 'REVERSED', reversed_by_movement_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE movement_id = $1 AND status = 'CONFIRMED';
	`
	tag, err := tx.Exec(ctx, query, movementID, reversedByMovementID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark movement %s reversed: %w", movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movement %s is not in a reversible state", apperrors.ErrConflict, movementID)
	}
	return nil
}
