// Package ledger holds the pure computation at the heart of the application:
// billing-period resolution, installment allocation and affordability
// validation. Nothing in this package performs I/O or mutates state, so the
// same functions serve interactive previews and batch maintenance alike.
package ledger

import "time"

const invoiceMonthLayout = "2006-01"

// ResolveInvoiceMonth maps a transaction date and an account's billing-cycle
// configuration to the "YYYY-MM" billing period the transaction belongs to.
//
// A non-empty override is returned verbatim: a manual assignment always wins
// and must never be silently recomputed. closingDay <= 0 means the account
// has no configured cycle and the calendar month of the date is used. The
// closing day is clamped to the last valid day of the date's month, so a
// closing day of 31 behaves in February. Purchases on or after the (clamped)
// closing day roll into the following month's bill.
func ResolveInvoiceMonth(date time.Time, closingDay int, override string) string {
	if override != "" {
		return override
	}
	if closingDay <= 0 {
		return date.Format(invoiceMonthLayout)
	}

	closing := closingDay
	if last := lastDayOfMonth(date); closing > last {
		closing = last
	}

	if date.Day() < closing {
		return date.Format(invoiceMonthLayout)
	}
	return date.AddDate(0, 1, -date.Day()+1).Format(invoiceMonthLayout)
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
