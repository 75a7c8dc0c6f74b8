// Package fees - Serverless compute calculators
// Pricing model:
// - Requests: per million requests
// - Duration: per million ms (Workers) or per GB-second weighted by memory (Lambda)
// - Workers adds a flat monthly subscription that covers its free allowances
package fees

import (
	"github.com/shopspring/decimal"

	"cloud-fee/core/pricing/primitives"
)

var (
	workersSubscriptionFee = decimal.NewFromInt(5)
	workersFreeRequests    = decimal.NewFromInt(10_000_000)
	workersFreeDurationMs  = decimal.NewFromInt(30_000_000)
	workersRequestRate     = primitives.Rate("0.3")
	workersDurationRate    = primitives.Rate("0.02")
	lambdaRequestRate      = primitives.Rate("0.2")
	lambdaMinMemoryMB      = decimal.NewFromInt(128)
	lambdaMaxMemoryMB      = decimal.NewFromInt(10_240)
	lambdaGBSecondScale    = decimal.NewFromInt(1_000)

	// Keyed and charged on GB-seconds, whole volume
	lambdaDurationRates = primitives.NewTierTable(
		primitives.UpTo("6000000000", "0.0000166667"),
		primitives.UpTo("9000000000", "0.000015"),
		primitives.Above("0.0000133334"),
	)
)

// billedDurationMs is the execution time of requests each running elapsedMs
func billedDurationMs(requests, elapsedMs float64) decimal.Decimal {
	return primitives.Quantity(requests).Mul(primitives.Quantity(elapsedMs))
}

// CloudflareWorkers prices Cloudflare Workers on the paid (standard) plan.
// https://developers.cloudflare.com/workers/platform/pricing/
type CloudflareWorkers struct {
	subscriptionFee decimal.Decimal
}

// NewCloudflareWorkers creates a Workers calculator
func NewCloudflareWorkers() CloudflareWorkers {
	return CloudflareWorkers{subscriptionFee: workersSubscriptionFee}
}

// Provider returns cloudflare-workers
func (CloudflareWorkers) Provider() Provider {
	return ProviderCloudflareWorkers
}

// FixedFee is the monthly subscription
func (w CloudflareWorkers) FixedFee() decimal.Decimal {
	return w.subscriptionFee
}

// RequestFee prices requests beyond the 10M included in the subscription
func (CloudflareWorkers) RequestFee(requests float64) decimal.Decimal {
	billable := primitives.FreeAllowance(primitives.Quantity(requests), workersFreeRequests)
	return primitives.PerMillion(billable, workersRequestRate)
}

// RequestTimeFee prices CPU time beyond the 30M ms included in the
// subscription. Memory is not billed.
func (w CloudflareWorkers) RequestTimeFee(durationMs, _ float64) decimal.Decimal {
	return w.requestTimeFee(primitives.Quantity(durationMs))
}

func (CloudflareWorkers) requestTimeFee(durationMs decimal.Decimal) decimal.Decimal {
	billable := primitives.FreeAllowance(durationMs, workersFreeDurationMs)
	return primitives.PerMillion(billable, workersDurationRate)
}

// TotalFee is RequestFee + RequestTimeFee + the subscription
func (w CloudflareWorkers) TotalFee(requests, elapsedMs, memoryMB float64) decimal.Decimal {
	return w.All(requests, elapsedMs, memoryMB).Sum().Add(w.FixedFee())
}

// All returns request_fee and request_time_fee
func (w CloudflareWorkers) All(requests, elapsedMs, memoryMB float64) Breakdown {
	return Breakdown{
		{Name: ComponentRequest, Amount: w.RequestFee(requests)},
		{Name: ComponentRequestTime, Amount: w.requestTimeFee(billedDurationMs(requests, elapsedMs))},
	}
}

// AWSLambda prices AWS Lambda on x86, Tokyo region rates.
// Neither the request nor the duration component has a free allowance.
// https://aws.amazon.com/lambda/pricing/
type AWSLambda struct{}

// NewAWSLambda creates a Lambda calculator
func NewAWSLambda() AWSLambda {
	return AWSLambda{}
}

// Provider returns aws-lambda
func (AWSLambda) Provider() Provider {
	return ProviderAWSLambda
}

// RequestFee prices every request
func (AWSLambda) RequestFee(requests float64) decimal.Decimal {
	return primitives.PerMillion(primitives.Quantity(requests), lambdaRequestRate)
}

// RequestTimeFee prices duration weighted by memory.
// memoryMB is clamped to [128, 10240]; 0 therefore bills as 128.
func (l AWSLambda) RequestTimeFee(durationMs, memoryMB float64) decimal.Decimal {
	return l.requestTimeFee(primitives.Quantity(durationMs), memoryMB)
}

func (AWSLambda) requestTimeFee(durationMs decimal.Decimal, memoryMB float64) decimal.Decimal {
	gbSeconds := gigabyteSeconds(durationMs, memoryMB)
	return lambdaDurationRates.WholeVolume(gbSeconds, gbSeconds)
}

// GigabyteSeconds is the duration volume the tier table is keyed on
func (AWSLambda) GigabyteSeconds(durationMs, memoryMB float64) decimal.Decimal {
	return gigabyteSeconds(primitives.Quantity(durationMs), memoryMB)
}

// gigabyteSeconds is clamped memory in GB x duration x 1000
func gigabyteSeconds(durationMs decimal.Decimal, memoryMB float64) decimal.Decimal {
	memory := primitives.Clamp(primitives.Quantity(memoryMB), lambdaMinMemoryMB, lambdaMaxMemoryMB)
	return primitives.MegabytesToGigabytes(memory).Mul(durationMs).Mul(lambdaGBSecondScale)
}

// TotalFee is RequestFee + RequestTimeFee
func (l AWSLambda) TotalFee(requests, elapsedMs, memoryMB float64) decimal.Decimal {
	return l.All(requests, elapsedMs, memoryMB).Sum()
}

// All returns request_fee and request_time_fee
func (l AWSLambda) All(requests, elapsedMs, memoryMB float64) Breakdown {
	return Breakdown{
		{Name: ComponentRequest, Amount: l.RequestFee(requests)},
		{Name: ComponentRequestTime, Amount: l.requestTimeFee(billedDurationMs(requests, elapsedMs), memoryMB)},
	}
}
