package primitives

import (
	"math"

	"github.com/shopspring/decimal"
)

// Quantity converts a caller-supplied usage value into a decimal.
// Negative and NaN values clamp to zero; +Inf clamps to the largest float.
func Quantity(v float64) decimal.Decimal {
	switch {
	case math.IsNaN(v) || v <= 0:
		return decimal.Zero
	case math.IsInf(v, 1):
		return decimal.NewFromFloat(math.MaxFloat64)
	}
	return decimal.NewFromFloat(v)
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
