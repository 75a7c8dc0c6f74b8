// Package primitives - Data volume primitives
// Decimal (SI) unit conversions: 1 GB = 1,000 MB = 1,000,000 kB
package primitives

import "github.com/shopspring/decimal"

// KilobytesToGigabytes converts kB to GB
func KilobytesToGigabytes(kb decimal.Decimal) decimal.Decimal {
	return kb.Shift(-6)
}

// MegabytesToGigabytes converts MB to GB
func MegabytesToGigabytes(mb decimal.Decimal) decimal.Decimal {
	return mb.Shift(-3)
}

// GigabytesToTerabytes converts GB to TB
func GigabytesToTerabytes(gb decimal.Decimal) decimal.Decimal {
	return gb.Shift(-3)
}
