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

const recurringColumns = `recurring_id, account_id, kind, amount, category_id, description, frequency, day_of_month, start_date, last_generated_date, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxRecurringRepository struct {
	pool *pgxpool.Pool
}

// newPgxRecurringRepository creates a new repository for recurring definitions.
func newPgxRecurringRepository(pool *pgxpool.Pool) portsrepo.RecurringRepositoryFacade {
	return &PgxRecurringRepository{pool: pool}
}

var _ portsrepo.RecurringRepositoryFacade = (*PgxRecurringRepository)(nil)

func scanRecurring(row pgx.Row) (*domain.RecurringDefinition, error) {
	var m models.RecurringDefinition
	err := row.Scan(
		&m.RecurringID,
		&m.AccountID,
		&m.Kind,
		&m.Amount,
		&m.CategoryID,
		&m.Description,
		&m.Frequency,
		&m.DayOfMonth,
		&m.StartDate,
		&m.LastGeneratedDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	def := mapping.ToDomainRecurring(m)
	return &def, nil
}

// FindRecurringByID retrieves a single recurring definition.
func (r *PgxRecurringRepository) FindRecurringByID(ctx context.Context, recurringID string) (*domain.RecurringDefinition, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_definitions WHERE recurring_id = $1;`

	def, err := scanRecurring(r.pool.QueryRow(ctx, query, recurringID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring definition by ID %s: %w", recurringID, err)
	}
	return def, nil
}

func (r *PgxRecurringRepository) queryRecurring(ctx context.Context, query string, args ...any) ([]domain.RecurringDefinition, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring definitions: %w", err)
	}
	defer rows.Close()

	var defs []domain.RecurringDefinition
	for rows.Next() {
		def, err := scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring definition row: %w", err)
		}
		defs = append(defs, *def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring definition rows: %w", err)
	}
	return defs, nil
}

// ListActiveDefinitions retrieves every active recurring definition. Dueness
// is the generator's call; this just scopes out deactivated definitions.
func (r *PgxRecurringRepository) ListActiveDefinitions(ctx context.Context) ([]domain.RecurringDefinition, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_definitions WHERE is_active = TRUE ORDER BY recurring_id;`
	return r.queryRecurring(ctx, query)
}

// ListRecurringByUser retrieves a user's recurring definitions via the owning
// accounts.
func (r *PgxRecurringRepository) ListRecurringByUser(ctx context.Context, userID string) ([]domain.RecurringDefinition, error) {
	query := `
		SELECT ` + prefixedRecurringColumns("rd") + `
		FROM recurring_definitions rd
		JOIN accounts a ON a.account_id = rd.account_id
		WHERE a.user_id = $1
		ORDER BY rd.created_at ASC;
	`
	return r.queryRecurring(ctx, query, userID)
}

// SaveRecurring persists a new recurring definition.
func (r *PgxRecurringRepository) SaveRecurring(ctx context.Context, def domain.RecurringDefinition) error {
	m := mapping.ToModelRecurring(def)

	query := `
		INSERT INTO recurring_definitions (` + recurringColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		m.RecurringID,
		m.AccountID,
		m.Kind,
		m.Amount,
		m.CategoryID,
		m.Description,
		m.Frequency,
		m.DayOfMonth,
		m.StartDate,
		m.LastGeneratedDate,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: recurring definition %s already exists", apperrors.ErrDuplicate, m.RecurringID)
		}
		return fmt.Errorf("failed to save recurring definition %s: %w", m.RecurringID, err)
	}
	return nil
}

// UpdateRecurring updates a definition's mutable fields. The watermark is
// excluded here; it only moves through AdvanceWatermark.
func (r *PgxRecurringRepository) UpdateRecurring(ctx context.Context, def domain.RecurringDefinition) error {
	m := mapping.ToModelRecurring(def)

	query := `
		UPDATE recurring_definitions
		SET amount = $2, category_id = $3, description = $4, frequency = $5, day_of_month = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE recurring_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.RecurringID,
		m.Amount,
		m.CategoryID,
		m.Description,
		m.Frequency,
		m.DayOfMonth,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring definition %s: %w", m.RecurringID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdvanceWatermark records the last generated occurrence date. The guard
// keeps a stale concurrent generator run from moving the watermark backwards.
func (r *PgxRecurringRepository) AdvanceWatermark(ctx context.Context, recurringID string, generatedThrough time.Time, now time.Time) error {
	query := `
		UPDATE recurring_definitions
		SET last_generated_date = $2, last_updated_at = $3
		WHERE recurring_id = $1 AND (last_generated_date IS NULL OR last_generated_date < $2);
	`
	if _, err := r.pool.Exec(ctx, query, recurringID, generatedThrough, now); err != nil {
		return fmt.Errorf("failed to advance watermark for recurring definition %s: %w", recurringID, err)
	}
	return nil
}

// prefixedRecurringColumns qualifies the column list with a table alias for
// joined queries.
func prefixedRecurringColumns(alias string) string {
	return alias + `.recurring_id, ` + alias + `.account_id, ` + alias + `.kind, ` + alias + `.amount, ` + alias + `.category_id, ` + alias + `.description, ` + alias + `.frequency, ` + alias + `.day_of_month, ` + alias + `.start_date, ` + alias + `.last_generated_date, ` + alias + `.is_active, ` + alias + `.created_at, ` + alias + `.created_by, ` + alias + `.last_updated_at, ` + alias + `.last_updated_by`
}
