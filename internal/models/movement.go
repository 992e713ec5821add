package models

import "time"

// MovementKind classifies a committed ledger movement.
type MovementKind string

const (
	MovementTransfer MovementKind = "TRANSFER"
	MovementPayment  MovementKind = "PAYMENT"
	MovementEntry    MovementKind = "ENTRY"
	MovementReversal MovementKind = "REVERSAL"
)

// MovementStatus is the persisted movement state. Only CONFIRMED and
// REVERSED ever reach the database.
type MovementStatus string

const (
	MovementConfirmed MovementStatus = "CONFIRMED"
	MovementReversed  MovementStatus = "REVERSED"
)

// Movement is the database representation of a movement correlation record.
type Movement struct {
	MovementID           string         `db:"movement_id"`
	Kind                 MovementKind   `db:"kind"`
	Status               MovementStatus `db:"status"`
	Amount               int64          `db:"amount"`
	Date                 time.Time      `db:"date"`
	Description          string         `db:"description"`
	OriginalMovementID   *string        `db:"original_movement_id"`
	ReversedByMovementID *string        `db:"reversed_by_movement_id"`
	AuditFields
}
