// Package primitives - Tiered pricing primitives
// Handles whole-volume rate cards and free-tier allowances
package primitives

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NewTierTable validates and returns a tier table.
// Bounds must be strictly ascending and the last tier must be the catch-all.
// Violations panic.
func NewTierTable(tiers ...Tier) TierTable {
	if len(tiers) == 0 {
		panic("primitives: tier table must not be empty")
	}

	for i, tier := range tiers {
		last := i == len(tiers)-1
		if tier.Unbounded != last {
			panic(fmt.Sprintf("primitives: tier %d: only the last tier may be unbounded", i))
		}
		if i > 0 && !last && !tier.UpTo.GreaterThan(tiers[i-1].UpTo) {
			panic(fmt.Sprintf("primitives: tier %d: bound %s is not above %s", i, tier.UpTo, tiers[i-1].UpTo))
		}
	}

	return TierTable(tiers)
}

// RateFor returns the rate of the first tier the quantity fits in
func (t TierTable) RateFor(quantity decimal.Decimal) decimal.Decimal {
	for _, tier := range t {
		if tier.Unbounded || quantity.LessThanOrEqual(tier.UpTo) {
			return tier.Rate
		}
	}

	// Unreachable for tables built with NewTierTable
	return t[len(t)-1].Rate
}

// WholeVolume bills the full quantity at the rate matched by bracket.
// bracket and billed differ when the rate card is keyed on a different unit
// than it charges for (e.g. matched on TB, billed per GB).
func (t TierTable) WholeVolume(bracket, billed decimal.Decimal) decimal.Decimal {
	return billed.Mul(t.RateFor(bracket))
}

// FreeAllowance subtracts a free-tier allowance and floors the result at zero
func FreeAllowance(quantity, free decimal.Decimal) decimal.Decimal {
	billable := quantity.Sub(free)
	if billable.IsNegative() {
		return decimal.Zero
	}
	return billable
}
