package mapping

import (
	"github.com/centavohq/centavo_app/internal/core/domain"
	"github.com/centavohq/centavo_app/internal/models"
)

// ToModelMovement converts a domain Movement to a model Movement. In-flight
// statuses never reach the database; callers persist CONFIRMED or REVERSED.
func ToModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:           d.MovementID,
		Kind:                 models.MovementKind(d.Kind),
		Status:               models.MovementStatus(d.Status),
		Amount:               d.Amount,
		Date:                 d.Date,
		Description:          d.Description,
		OriginalMovementID:   d.OriginalMovementID,
		ReversedByMovementID: d.ReversedByMovementID,
		AuditFields:          toModelAudit(d.AuditFields),
	}
}

// ToDomainMovement converts a model Movement to a domain Movement.
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:           m.MovementID,
		Kind:                 domain.MovementKind(m.Kind),
		Status:               domain.MovementStatus(m.Status),
		Amount:               m.Amount,
		Date:                 m.Date,
		Description:          m.Description,
		OriginalMovementID:   m.OriginalMovementID,
		ReversedByMovementID: m.ReversedByMovementID,
		AuditFields:          toDomainAudit(m.AuditFields),
	}
}
