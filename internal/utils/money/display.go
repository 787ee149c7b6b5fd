// Package money converts integer minor units into display decimals at the
// API edge. Storage and arithmetic stay in int64 cents throughout.
package money

import "github.com/shopspring/decimal"

// FromCents converts minor units to a major-unit decimal (4600 -> 46.00).
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

// FormatCents renders minor units as a fixed two-place string.
func FormatCents(cents int64) string {
	return FromCents(cents).StringFixed(2)
}
