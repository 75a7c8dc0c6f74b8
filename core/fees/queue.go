// Package fees - Queue calculators
// Pricing model:
// - Messages are billed in 64 kB chunks: a 65 kB message counts as two
// - AWS SQS bills batches of up to 10 messages, Cloudflare Queues bills messages
// - Both include 1M free units per month
// - Egress is billed through the shared AWS transfer rate card
package fees

import (
	"github.com/shopspring/decimal"

	"cloud-fee/core/pricing/primitives"
)

var (
	messageChunkKB     = decimal.NewFromInt(64)
	queueFreeAllowance = decimal.NewFromInt(1_000_000)

	minMessagesPerBatch = decimal.NewFromInt(1)
	maxMessagesPerBatch = decimal.NewFromInt(10)

	// Keyed on billable batches, charged per million on the whole volume
	sqsRates = primitives.NewTierTable(
		primitives.UpTo("100000000000", "0.4"),
		primitives.UpTo("200000000000", "0.35"),
		primitives.Above("0.32"),
	)

	cloudflareQueuesRate = primitives.Rate("0.4")
)

// splitMultiplier is the number of billed units per message
func splitMultiplier(sizeKB float64) decimal.Decimal {
	return primitives.CeilDiv(primitives.Quantity(sizeKB), messageChunkKB)
}

// queueEgressFee prices messages * sizeKB of outbound payload
func queueEgressFee(messages, sizeKB float64) decimal.Decimal {
	payloadKB := primitives.Quantity(messages).Mul(primitives.Quantity(sizeKB))
	return EgressFeeGB(primitives.KilobytesToGigabytes(payloadKB))
}

// AWSSQS prices AWS SQS standard queues.
// Message size is limited to 256 kB by the service; larger sizes are still
// priced.
// https://aws.amazon.com/sqs/pricing/
type AWSSQS struct{}

// NewAWSSQS creates an SQS calculator
func NewAWSSQS() AWSSQS {
	return AWSSQS{}
}

// Provider returns aws-sqs
func (AWSSQS) Provider() Provider {
	return ProviderAWSSQS
}

// MessageFee prices billed batches after the free allowance.
// perBatch is clamped to [1, 10].
func (AWSSQS) MessageFee(messages, perBatch, sizeKB float64) decimal.Decimal {
	units := primitives.Quantity(messages).Mul(splitMultiplier(sizeKB))
	batchSize := primitives.Clamp(primitives.Quantity(perBatch), minMessagesPerBatch, maxMessagesPerBatch)
	batches := primitives.CeilDiv(units, batchSize)

	billable := primitives.FreeAllowance(batches, queueFreeAllowance)
	return primitives.Millions(billable).Mul(sqsRates.RateFor(billable))
}

// EgressFee prices the outbound transfer of all message payloads
func (AWSSQS) EgressFee(messages, sizeKB float64) decimal.Decimal {
	return queueEgressFee(messages, sizeKB)
}

// TotalFee is MessageFee + EgressFee
func (q AWSSQS) TotalFee(messages, perBatch, sizeKB float64) decimal.Decimal {
	return q.All(messages, perBatch, sizeKB).Sum()
}

// All returns message_fee and egress_fee
func (q AWSSQS) All(messages, perBatch, sizeKB float64) Breakdown {
	return Breakdown{
		{Name: ComponentMessage, Amount: q.MessageFee(messages, perBatch, sizeKB)},
		{Name: ComponentEgress, Amount: q.EgressFee(messages, sizeKB)},
	}
}

// CloudflareQueues prices Cloudflare Queues.
// Message size is limited to 128 kB by the service; larger sizes are still
// priced.
// https://developers.cloudflare.com/queues/platform/pricing/
type CloudflareQueues struct{}

// NewCloudflareQueues creates a Cloudflare Queues calculator
func NewCloudflareQueues() CloudflareQueues {
	return CloudflareQueues{}
}

// Provider returns cloudflare-queues
func (CloudflareQueues) Provider() Provider {
	return ProviderCloudflareQueues
}

// MessageFee prices message units after the free allowance at a flat rate.
// Batching does not change the bill, so perBatch is ignored.
func (CloudflareQueues) MessageFee(messages, _ float64, sizeKB float64) decimal.Decimal {
	units := primitives.Quantity(messages).Mul(splitMultiplier(sizeKB))
	billable := primitives.FreeAllowance(units, queueFreeAllowance)
	return primitives.PerMillion(billable, cloudflareQueuesRate)
}

// EgressFee prices the outbound transfer of all message payloads
func (CloudflareQueues) EgressFee(messages, sizeKB float64) decimal.Decimal {
	return queueEgressFee(messages, sizeKB)
}

// TotalFee is MessageFee + EgressFee
func (q CloudflareQueues) TotalFee(messages, perBatch, sizeKB float64) decimal.Decimal {
	return q.All(messages, perBatch, sizeKB).Sum()
}

// All returns message_fee and egress_fee
func (q CloudflareQueues) All(messages, perBatch, sizeKB float64) Breakdown {
	return Breakdown{
		{Name: ComponentMessage, Amount: q.MessageFee(messages, perBatch, sizeKB)},
		{Name: ComponentEgress, Amount: q.EgressFee(messages, sizeKB)},
	}
}
