package repositories

import (
	"context"
	"time"

	"github.com/centavohq/centavo_app/internal/core/domain"
)

// RecurringReader defines read operations for recurring definitions.
type RecurringReader interface {
	// FindRecurringByID retrieves a single recurring definition.
	FindRecurringByID(ctx context.Context, recurringID string) (*domain.RecurringDefinition, error)

	// ListActiveDefinitions retrieves every active recurring definition.
	// The generator filters dueness itself against each watermark.
	ListActiveDefinitions(ctx context.Context) ([]domain.RecurringDefinition, error)

	// ListRecurringByUser retrieves a user's recurring definitions.
	ListRecurringByUser(ctx context.Context, userID string) ([]domain.RecurringDefinition, error)
}

// RecurringWriter defines write operations for recurring definitions.
type RecurringWriter interface {
	// SaveRecurring persists a new recurring definition.
	SaveRecurring(ctx context.Context, def domain.RecurringDefinition) error

	// UpdateRecurring updates a definition's mutable fields.
	UpdateRecurring(ctx context.Context, def domain.RecurringDefinition) error

	// AdvanceWatermark records the last generated occurrence date for a
	// definition. Never moves the watermark backwards.
	AdvanceWatermark(ctx context.Context, recurringID string, generatedThrough time.Time, now time.Time) error
}

// RecurringRepositoryFacade combines recurring read and write interfaces.
type RecurringRepositoryFacade interface {
	RecurringReader
	RecurringWriter
}
