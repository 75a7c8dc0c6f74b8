package compare

import (
	"github.com/shopspring/decimal"

	"cloud-fee/core/fees"
	"cloud-fee/core/pricing/primitives"
)

// DefaultMemoryMB is the Lambda allocation used when none is given
const DefaultMemoryMB = 128

// QueueFactors are the fixed inputs of a queue sweep over message count
type QueueFactors struct {
	Sample          SampleFactor `json:"sample"`
	MessagePerBatch float64      `json:"message_per_batch"`
	SizeOfMessage   float64      `json:"size_of_message"` // kB
}

// ServerlessFactors are the fixed inputs of a serverless sweep over
// request count
type ServerlessFactors struct {
	Sample                SampleFactor `json:"sample"`
	ElapsedTimePerRequest float64      `json:"elapsed_time_per_request"` // ms
	ResponseBodySize      float64      `json:"response_body_size"`       // MB
	MemorySize            float64      `json:"memory_size,omitempty"`    // MB, Lambda only
}

// StorageFactors are the fixed inputs of a storage sweep over stored GB
type StorageFactors struct {
	Sample           SampleFactor `json:"sample"`
	ClassAOperations float64      `json:"class_a_operations"`
	ClassBOperations float64      `json:"class_b_operations"`
	EgressUsage      float64      `json:"egress_usage"` // GB
}

// Queue compares Cloudflare Queues with SQS. Both totals include egress.
func Queue(f QueueFactors) Comparison {
	labels := Labels(f.Sample)
	queues := fees.NewCloudflareQueues()
	sqs := fees.NewAWSSQS()

	return Comparison{
		Category: fees.CategoryQueue,
		XTitle:   "messages",
		Labels:   labels,
		Datasets: []Dataset{
			{
				Label:    queues.Provider().Name(),
				Provider: queues.Provider(),
				Values: sweep(labels, func(x float64) decimal.Decimal {
					return queues.TotalFee(x, f.MessagePerBatch, f.SizeOfMessage)
				}),
			},
			{
				Label:    sqs.Provider().Name() + " (incl. egress)",
				Provider: sqs.Provider(),
				Values: sweep(labels, func(x float64) decimal.Decimal {
					return sqs.TotalFee(x, f.MessagePerBatch, f.SizeOfMessage)
				}),
			},
		},
	}
}

// Serverless compares Workers with Lambda. Lambda responses leave AWS and
// pay egress; the egress share is also reported on its own.
func Serverless(f ServerlessFactors) Comparison {
	labels := Labels(f.Sample)
	workers := fees.NewCloudflareWorkers()
	lambda := fees.NewAWSLambda()

	memory := f.MemorySize
	if memory <= 0 {
		memory = DefaultMemoryMB
	}
	egress := func(requests float64) decimal.Decimal {
		return responseEgressFee(requests, f.ResponseBodySize)
	}

	return Comparison{
		Category: fees.CategoryServerless,
		XTitle:   "requests",
		Labels:   labels,
		Datasets: []Dataset{
			{
				Label:    workers.Provider().Name(),
				Provider: workers.Provider(),
				Values: sweep(labels, func(x float64) decimal.Decimal {
					return workers.TotalFee(x, f.ElapsedTimePerRequest, 0)
				}),
			},
			{
				Label:    lambda.Provider().Name() + " (incl. egress)",
				Provider: lambda.Provider(),
				Values: sweep(labels, func(x float64) decimal.Decimal {
					return lambda.TotalFee(x, f.ElapsedTimePerRequest, memory).Add(egress(x))
				}),
			},
			{
				Label:  "AWS egress",
				Values: sweep(labels, egress),
			},
		},
	}
}

// responseEgressFee prices requests responses of sizeMB each
func responseEgressFee(requests, sizeMB float64) decimal.Decimal {
	gb := primitives.Quantity(sizeMB).Shift(-3).Mul(primitives.Quantity(requests))
	return fees.EgressFeeGB(gb)
}

// Storage compares R2 with S3, with and without a fixed monthly egress
func Storage(f StorageFactors) Comparison {
	labels := Labels(f.Sample)
	r2 := fees.NewCloudflareR2()
	s3 := fees.NewAWSS3()
	egress := fees.EgressFee(f.EgressUsage)

	s3Total := sweep(labels, func(x float64) decimal.Decimal {
		return s3.TotalFee(x, f.ClassAOperations, f.ClassBOperations)
	})
	s3WithEgress := make([]decimal.Decimal, len(s3Total))
	for i, v := range s3Total {
		s3WithEgress[i] = v.Add(egress)
	}

	return Comparison{
		Category: fees.CategoryStorage,
		XTitle:   "stored GB",
		Labels:   labels,
		Datasets: []Dataset{
			{
				Label:    r2.Provider().Name(),
				Provider: r2.Provider(),
				Values: sweep(labels, func(x float64) decimal.Decimal {
					return r2.TotalFee(x, f.ClassAOperations, f.ClassBOperations)
				}),
			},
			{
				Label:    s3.Provider().Name(),
				Provider: s3.Provider(),
				Values:   s3Total,
			},
			{
				Label:    s3.Provider().Name() + " (incl. egress)",
				Provider: s3.Provider(),
				Values:   s3WithEgress,
			},
		},
	}
}
