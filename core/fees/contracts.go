package fees

import "github.com/shopspring/decimal"

// QueueFeeCalculator prices a message queue
type QueueFeeCalculator interface {
	// Provider returns the priced service
	Provider() Provider

	// MessageFee prices message delivery.
	// perBatch is the number of messages per batch (1-10); providers
	// without batching ignore it. sizeKB is the size of one message.
	MessageFee(messages, perBatch, sizeKB float64) decimal.Decimal

	// EgressFee prices the outbound transfer of all message payloads
	EgressFee(messages, sizeKB float64) decimal.Decimal

	// TotalFee is MessageFee + EgressFee
	TotalFee(messages, perBatch, sizeKB float64) decimal.Decimal

	// All returns message_fee and egress_fee
	All(messages, perBatch, sizeKB float64) Breakdown
}

// ServerlessFeeCalculator prices a serverless compute platform
type ServerlessFeeCalculator interface {
	// Provider returns the priced service
	Provider() Provider

	// RequestFee prices the request count
	RequestFee(requests float64) decimal.Decimal

	// RequestTimeFee prices billed execution time in milliseconds.
	// memoryMB is the per-request allocation; 0 means not specified.
	// Providers that do not weight by memory ignore it.
	RequestTimeFee(durationMs, memoryMB float64) decimal.Decimal

	// TotalFee prices requests each running elapsedMs, plus any fixed charge
	TotalFee(requests, elapsedMs, memoryMB float64) decimal.Decimal

	// All returns request_fee and request_time_fee, never the fixed charge
	All(requests, elapsedMs, memoryMB float64) Breakdown
}

// StorageFeeCalculator prices an object store.
//
// Class A operations are the heavy ones (write, list, copy, upload); class B
// operations are the light ones (read, head, metadata). Egress is priced by
// the caller with EgressFee so the contract stays the same for providers
// that do not charge for it.
type StorageFeeCalculator interface {
	// Provider returns the priced service
	Provider() Provider

	// StorageFee prices stored volume in GB-months
	StorageFee(volumeGB float64) decimal.Decimal

	// ClassAOperationFee prices heavy operations
	ClassAOperationFee(operations float64) decimal.Decimal

	// ClassBOperationFee prices light operations
	ClassBOperationFee(operations float64) decimal.Decimal

	// TotalFee is the sum of the three components
	TotalFee(volumeGB, classA, classB float64) decimal.Decimal

	// All returns storage_fee, class_a_operation_fee and class_b_operation_fee
	All(volumeGB, classA, classB float64) Breakdown
}

// DatabaseFeeCalculator prices a serverless SQL database
type DatabaseFeeCalculator interface {
	Provider() Provider
	StorageFee(volumeGB float64) decimal.Decimal
	RowsReadFee(rows float64) decimal.Decimal
	RowsWrittenFee(rows float64) decimal.Decimal
	TotalFee(rowsRead, rowsWritten, volumeGB float64) decimal.Decimal
	All(rowsRead, rowsWritten, volumeGB float64) Breakdown
}

// FixedCharger is implemented by calculators with a flat recurring charge.
// The charge is part of TotalFee but not of All.
type FixedCharger interface {
	FixedFee() decimal.Decimal
}

// FixedFeeOf returns the fixed recurring charge of a calculator, or zero
func FixedFeeOf(calculator any) decimal.Decimal {
	if fc, ok := calculator.(FixedCharger); ok {
		return fc.FixedFee()
	}
	return decimal.Zero
}
