// Package primitives - Centralized pricing math
// Calculators declare rate cards, not do math.
// All tier lookups, free allowances and unit conversions flow through these primitives.
package primitives

import "github.com/shopspring/decimal"

// Tier is a single bracket of a whole-volume rate card.
// A quantity falls into the first tier whose UpTo it does not exceed.
type Tier struct {
	UpTo      decimal.Decimal // Inclusive upper limit (ignored when Unbounded)
	Unbounded bool            // Catch-all tier, must be last
	Rate      decimal.Decimal // Rate applied to the whole billed volume
}

// TierTable is an ordered list of tiers evaluated first-match-wins.
// Unlike graduated billing, the matched rate re-rates the entire volume.
type TierTable []Tier

// UpTo builds a bounded tier from exact decimal literals
func UpTo(bound, rate string) Tier {
	return Tier{
		UpTo: decimal.RequireFromString(bound),
		Rate: decimal.RequireFromString(rate),
	}
}

// Above builds the catch-all tier
func Above(rate string) Tier {
	return Tier{
		Unbounded: true,
		Rate:      decimal.RequireFromString(rate),
	}
}

// Rate parses an exact decimal rate literal
func Rate(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
