// Package primitives - Request and operation pricing primitives
// Requests, API operations, invocations
package primitives

import "github.com/shopspring/decimal"

// PerThousand prices a count quoted per 1,000 units (S3-style operations)
func PerThousand(count, rate decimal.Decimal) decimal.Decimal {
	return Thousands(count).Mul(rate)
}

// PerMillion prices a count quoted per 1,000,000 units (requests, messages)
func PerMillion(count, rate decimal.Decimal) decimal.Decimal {
	return Millions(count).Mul(rate)
}

// Thousands normalizes a count to thousands
func Thousands(count decimal.Decimal) decimal.Decimal {
	return count.Shift(-3)
}

// Millions normalizes a count to millions
func Millions(count decimal.Decimal) decimal.Decimal {
	return count.Shift(-6)
}

// CeilDiv returns ceil(n / d) without rounding the intermediate quotient.
// d must be positive.
func CeilDiv(n, d decimal.Decimal) decimal.Decimal {
	q, r := n.QuoRem(d, 0)
	if r.IsPositive() {
		return q.Add(decimal.NewFromInt(1))
	}
	return q
}
