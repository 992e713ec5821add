package utils

import "github.com/shopspring/decimal"

// DefaultPrecision is the number of decimal places of the supported
// currencies (two for BRL/USD-style cents).
const DefaultPrecision = 2

// FormatMinorUnits renders an amount held in the smallest currency unit as a
// display string with the given precision. The ledger core works exclusively
// in integer minor units; this conversion exists only at the presentation
// boundary.
// Example: FormatMinorUnits(123456, 2) returns "1234.56".
func FormatMinorUnits(amount int64, precision int) string {
	return decimal.New(amount, -int32(precision)).StringFixed(int32(precision))
}
