package domain

import "time"

// MovementKind classifies a committed ledger movement.
type MovementKind string

const (
	MovementTransfer MovementKind = "TRANSFER"
	MovementPayment  MovementKind = "PAYMENT"  // Credit-card bill payment
	MovementEntry    MovementKind = "ENTRY"    // Single-account transaction
	MovementReversal MovementKind = "REVERSAL" // Inverse of a confirmed movement
)

// MovementStatus tracks a movement through its lifecycle. Requested,
// Validated, Persisted and Applied exist only in memory while the commit is
// in flight; the only statuses a reader can observe are Confirmed and
// Reversed, because the whole sequence runs inside one database transaction.
type MovementStatus string

const (
	MovementRequested MovementStatus = "REQUESTED"
	MovementValidated MovementStatus = "VALIDATED"
	MovementPersisted MovementStatus = "PERSISTED"
	MovementApplied   MovementStatus = "APPLIED"
	MovementConfirmed MovementStatus = "CONFIRMED"
	MovementReversed  MovementStatus = "REVERSED"
)

// Movement is the correlation record of an atomic ledger operation. Its ID is
// the correlation identifier shared by all entries of the movement; retrying
// a commit with a known ID is absorbed idempotently, and reversal looks the
// original movement up by it.
type Movement struct {
	MovementID           string         `json:"movementID"` // Correlation identifier (UUID or caller-supplied)
	Kind                 MovementKind   `json:"kind"`
	Status               MovementStatus `json:"status"`
	Amount               int64          `json:"amount"`
	Date                 time.Time      `json:"date"`
	Description          string         `json:"description"`
	OriginalMovementID   *string        `json:"originalMovementID,omitempty"`   // Set on reversals
	ReversedByMovementID *string        `json:"reversedByMovementID,omitempty"` // Set on reversed originals
	AuditFields
}
