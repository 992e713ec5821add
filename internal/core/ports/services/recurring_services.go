package services

import (
	"context"
	"time"

	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/dto"
)

// RecurringSvcFacade defines recurring definition management and the batch
// generator entry point.
type RecurringSvcFacade interface {
	CreateRecurring(ctx context.Context, req dto.CreateRecurringRequest, userID string) (*domain.RecurringDefinition, error)
	ListRecurring(ctx context.Context, userID string) ([]domain.RecurringDefinition, error)

	// UpdateRecurring edits a definition's mutable fields, including
	// pausing or resuming it via IsActive. The watermark is untouched.
	UpdateRecurring(ctx context.Context, recurringID string, req dto.UpdateRecurringRequest, userID string) (*domain.RecurringDefinition, error)

	// GenerateDue materializes every occurrence due at or before now across
	// all active definitions. Safe to invoke more often than any cadence:
	// the per-definition watermark plus deterministic correlation ids make
	// repeated runs no-ops. One definition failing does not stop the rest.
	GenerateDue(ctx context.Context, now time.Time) (*dto.GenerateResult, error)
}
