package domain

import "time"

// RecurringFrequency is the cadence of a recurring definition.
type RecurringFrequency string

const (
	Daily   RecurringFrequency = "DAILY"
	Weekly  RecurringFrequency = "WEEKLY"
	Monthly RecurringFrequency = "MONTHLY"
)

// IsValid reports whether f is one of the known frequencies.
func (f RecurringFrequency) IsValid() bool {
	switch f {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// RecurringDefinition describes a transaction the generator materializes on a
// cadence. LastGeneratedDate is the watermark: occurrences at or before it
// have already been generated, so invoking the generator more often than the
// true cadence never duplicates entries.
type RecurringDefinition struct {
	RecurringID       string             `json:"recurringID"` // Primary Key (UUID)
	AccountID         string             `json:"accountID"`
	Kind              TransactionKind    `json:"kind"`
	Amount            int64              `json:"amount"`
	CategoryID        *string            `json:"categoryID,omitempty"`
	Description       string             `json:"description"`
	Frequency         RecurringFrequency `json:"frequency"`
	DayOfMonth        int                `json:"dayOfMonth,omitempty"` // Monthly only; clamped to month length
	StartDate         time.Time          `json:"startDate"`
	LastGeneratedDate *time.Time         `json:"lastGeneratedDate,omitempty"` // Watermark
	IsActive          bool               `json:"isActive"`
	AuditFields
}

// NextOccurrence returns the first occurrence strictly after the given date.
// Weekly occurrences are anchored to StartDate, so they always fall on the
// start date's weekday. For monthly definitions the configured day-of-month
// is clamped to the length of the target month (31 in February lands on the
// 28th/29th).
func (d RecurringDefinition) NextOccurrence(after time.Time) time.Time {
	switch d.Frequency {
	case Daily:
		if d.StartDate.After(after) {
			return d.StartDate
		}
		return after.AddDate(0, 0, 1)
	case Weekly:
		if d.StartDate.After(after) {
			return d.StartDate
		}
		weeks := int(after.Sub(d.StartDate).Hours()) / (24 * 7)
		return d.StartDate.AddDate(0, 0, (weeks+1)*7)
	default:
		day := d.DayOfMonth
		if day <= 0 {
			day = d.StartDate.Day()
		}
		if candidate := monthlyOccurrence(after.Year(), after.Month(), day, after.Location()); candidate.After(after) {
			return candidate
		}
		next := after.AddDate(0, 1, -after.Day()+1) // first day of next month
		return monthlyOccurrence(next.Year(), next.Month(), day, after.Location())
	}
}

// monthlyOccurrence places day-of-month in the given month, clamping to the
// month's length.
func monthlyOccurrence(year int, month time.Month, day int, loc *time.Location) time.Time {
	if last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day(); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
