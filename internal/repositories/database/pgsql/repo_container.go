package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/centavohq/centavo_app/internal/core/services"
)

// NewRepositories builds the pgsql-backed repository set the service layer
// is constructed from.
func NewRepositories(dbPool *pgxpool.Pool) services.Repositories {
	return services.Repositories{
		Account:     newPgxAccountRepository(dbPool),
		Movement:    newPgxMovementRepository(dbPool),
		Transaction: newPgxTransactionRepository(dbPool),
		Recurring:   newPgxRecurringRepository(dbPool),
	}
}
