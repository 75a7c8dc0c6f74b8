package fees

import (
	"github.com/shopspring/decimal"

	"cloud-fee/core/pricing/primitives"
)

// egressRates is the AWS data-transfer-out rate card, keyed by TB and
// charged per GB on the whole transferred volume.
// https://aws.amazon.com/s3/pricing/ (Data Transfer tab)
var egressRates = primitives.NewTierTable(
	primitives.UpTo("10", "0.114"),
	primitives.UpTo("40", "0.089"),
	primitives.UpTo("150", "0.086"),
	primitives.Above("0.084"),
)

// EgressFee prices transferredGB of outbound data.
// The whole volume is billed at the single rate of the TB bracket it falls
// into; brackets are not graduated.
func EgressFee(transferredGB float64) decimal.Decimal {
	return EgressFeeGB(primitives.Quantity(transferredGB))
}

// EgressFeeGB is EgressFee for an exact volume
func EgressFeeGB(gb decimal.Decimal) decimal.Decimal {
	if !gb.IsPositive() {
		return decimal.Zero
	}
	return egressRates.WholeVolume(primitives.GigabytesToTerabytes(gb), gb)
}
