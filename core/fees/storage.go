// Package fees - Object storage calculators
// Pricing model:
// - Storage: per GB-month (S3 tiered by TB, R2 flat)
// - Class A operations (PUT, COPY, POST, LIST)
// - Class B operations (GET, SELECT, HEAD)
// - Egress is not part of the contract; S3 callers add EgressFee
package fees

import (
	"github.com/shopspring/decimal"

	"cloud-fee/core/pricing/primitives"
)

var (
	// Keyed on TB, charged per GB on the whole volume
	s3StorageRates = primitives.NewTierTable(
		primitives.UpTo("50", "0.025"),
		primitives.UpTo("500", "0.024"),
		primitives.Above("0.023"),
	)

	s3ClassARate = primitives.Rate("0.047")   // per 1,000
	s3ClassBRate = primitives.Rate("0.00037") // per 1,000

	r2StorageRate = primitives.Rate("0.015") // per GB
	r2ClassARate  = primitives.Rate("4.5")   // per 1,000,000
	r2ClassBRate  = primitives.Rate("0.36")  // per 1,000,000
)

// AWSS3 prices S3 Standard, Tokyo region rates.
// https://aws.amazon.com/s3/pricing/
type AWSS3 struct{}

// NewAWSS3 creates an S3 calculator
func NewAWSS3() AWSS3 {
	return AWSS3{}
}

// Provider returns aws-s3
func (AWSS3) Provider() Provider {
	return ProviderAWSS3
}

// StorageFee bills the whole volume at the rate of its TB bracket
func (AWSS3) StorageFee(volumeGB float64) decimal.Decimal {
	gb := primitives.Quantity(volumeGB)
	return s3StorageRates.WholeVolume(primitives.GigabytesToTerabytes(gb), gb)
}

// ClassAOperationFee prices heavy operations per thousand
func (AWSS3) ClassAOperationFee(operations float64) decimal.Decimal {
	return primitives.PerThousand(primitives.Quantity(operations), s3ClassARate)
}

// ClassBOperationFee prices light operations per thousand
func (AWSS3) ClassBOperationFee(operations float64) decimal.Decimal {
	return primitives.PerThousand(primitives.Quantity(operations), s3ClassBRate)
}

// TotalFee is the sum of storage and both operation classes
func (s AWSS3) TotalFee(volumeGB, classA, classB float64) decimal.Decimal {
	return s.All(volumeGB, classA, classB).Sum()
}

// All returns the three storage components
func (s AWSS3) All(volumeGB, classA, classB float64) Breakdown {
	return storageBreakdown(s, volumeGB, classA, classB)
}

// CloudflareR2 prices R2 Standard storage. Egress is free.
// https://developers.cloudflare.com/r2/pricing/
type CloudflareR2 struct{}

// NewCloudflareR2 creates an R2 calculator
func NewCloudflareR2() CloudflareR2 {
	return CloudflareR2{}
}

// Provider returns cloudflare-r2
func (CloudflareR2) Provider() Provider {
	return ProviderCloudflareR2
}

// StorageFee bills GB-months at a flat rate
func (CloudflareR2) StorageFee(volumeGB float64) decimal.Decimal {
	return primitives.Quantity(volumeGB).Mul(r2StorageRate)
}

// ClassAOperationFee prices heavy operations per million
func (CloudflareR2) ClassAOperationFee(operations float64) decimal.Decimal {
	return primitives.PerMillion(primitives.Quantity(operations), r2ClassARate)
}

// ClassBOperationFee prices light operations per million
func (CloudflareR2) ClassBOperationFee(operations float64) decimal.Decimal {
	return primitives.PerMillion(primitives.Quantity(operations), r2ClassBRate)
}

// TotalFee is the sum of storage and both operation classes
func (s CloudflareR2) TotalFee(volumeGB, classA, classB float64) decimal.Decimal {
	return s.All(volumeGB, classA, classB).Sum()
}

// All returns the three storage components
func (s CloudflareR2) All(volumeGB, classA, classB float64) Breakdown {
	return storageBreakdown(s, volumeGB, classA, classB)
}

func storageBreakdown(c StorageFeeCalculator, volumeGB, classA, classB float64) Breakdown {
	return Breakdown{
		{Name: ComponentStorage, Amount: c.StorageFee(volumeGB)},
		{Name: ComponentClassA, Amount: c.ClassAOperationFee(classA)},
		{Name: ComponentClassB, Amount: c.ClassBOperationFee(classB)},
	}
}
