package models

import "time"

// RecurringFrequency is the cadence of a recurring definition.
type RecurringFrequency string

const (
	Daily   RecurringFrequency = "DAILY"
	Weekly  RecurringFrequency = "WEEKLY"
	Monthly RecurringFrequency = "MONTHLY"
)

// RecurringDefinition is the database representation of a recurring
// transaction definition. last_generated_date is the generation watermark.
type RecurringDefinition struct {
	RecurringID       string             `db:"recurring_id"`
	AccountID         string             `db:"account_id"`
	Kind              TransactionKind    `db:"kind"`
	Amount            int64              `db:"amount"`
	CategoryID        *string            `db:"category_id"`
	Description       string             `db:"description"`
	Frequency         RecurringFrequency `db:"frequency"`
	DayOfMonth        int                `db:"day_of_month"`
	StartDate         time.Time          `db:"start_date"`
	LastGeneratedDate *time.Time         `db:"last_generated_date"`
	IsActive          bool               `db:"is_active"`
	AuditFields
}
