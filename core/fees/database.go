// Package fees - Serverless database calculator
package fees

import (
	"github.com/shopspring/decimal"

	"cloud-fee/core/pricing/primitives"
)

var (
	d1FreeStorageGB   = decimal.NewFromInt(5)
	d1FreeRowsRead    = decimal.NewFromInt(25_000_000)
	d1FreeRowsWritten = decimal.NewFromInt(50_000_000)
	d1StorageRate     = primitives.Rate("0.75")  // per GB
	d1RowsReadRate    = primitives.Rate("0.001") // per million
	d1RowsWrittenRate = primitives.Rate("1")     // per million
)

// CloudflareD1 prices Cloudflare D1 on the paid plan
// https://developers.cloudflare.com/d1/platform/pricing/
type CloudflareD1 struct{}

// NewCloudflareD1 creates a D1 calculator
func NewCloudflareD1() CloudflareD1 {
	return CloudflareD1{}
}

// Provider returns cloudflare-d1
func (CloudflareD1) Provider() Provider {
	return ProviderCloudflareD1
}

// StorageFee bills storage beyond the first 5 GB
func (CloudflareD1) StorageFee(volumeGB float64) decimal.Decimal {
	billable := primitives.FreeAllowance(primitives.Quantity(volumeGB), d1FreeStorageGB)
	return billable.Mul(d1StorageRate)
}

// RowsReadFee bills rows read beyond the first 25M
func (CloudflareD1) RowsReadFee(rows float64) decimal.Decimal {
	billable := primitives.FreeAllowance(primitives.Quantity(rows), d1FreeRowsRead)
	return primitives.PerMillion(billable, d1RowsReadRate)
}

// RowsWrittenFee bills rows written beyond the first 50M
func (CloudflareD1) RowsWrittenFee(rows float64) decimal.Decimal {
	billable := primitives.FreeAllowance(primitives.Quantity(rows), d1FreeRowsWritten)
	return primitives.PerMillion(billable, d1RowsWrittenRate)
}

// TotalFee is the sum of the three components
func (db CloudflareD1) TotalFee(rowsRead, rowsWritten, volumeGB float64) decimal.Decimal {
	return db.All(rowsRead, rowsWritten, volumeGB).Sum()
}

// All returns storage_fee, rows_read_fee and rows_write_fee
func (db CloudflareD1) All(rowsRead, rowsWritten, volumeGB float64) Breakdown {
	return Breakdown{
		{Name: ComponentStorage, Amount: db.StorageFee(volumeGB)},
		{Name: ComponentRowsRead, Amount: db.RowsReadFee(rowsRead)},
		{Name: ComponentRowsWritten, Amount: db.RowsWrittenFee(rowsWritten)},
	}
}
