// Package fees implements the per-provider fee calculators.
//
// Each service category (queue, serverless, storage, database) has one
// contract and one implementation per provider. Calculators are stateless
// values: every method is a pure function of its arguments and safe for
// concurrent use. Usage is passed as float64 and clamped to zero when
// negative; money is returned as an exact decimal in USD.
package fees

import (
	"github.com/shopspring/decimal"
)

// Category identifies a service category
type Category string

const (
	CategoryQueue      Category = "queue"
	CategoryServerless Category = "serverless"
	CategoryStorage    Category = "storage"
	CategoryDatabase   Category = "database"
)

// Categories lists all categories in display order
func Categories() []Category {
	return []Category{CategoryQueue, CategoryServerless, CategoryStorage, CategoryDatabase}
}

// Provider is the stable key of a priced service
type Provider string

const (
	ProviderAWSSQS            Provider = "aws-sqs"
	ProviderCloudflareQueues  Provider = "cloudflare-queues"
	ProviderAWSLambda         Provider = "aws-lambda"
	ProviderCloudflareWorkers Provider = "cloudflare-workers"
	ProviderAWSS3             Provider = "aws-s3"
	ProviderCloudflareR2      Provider = "cloudflare-r2"
	ProviderCloudflareD1      Provider = "cloudflare-d1"
)

var providerNames = map[Provider]string{
	ProviderAWSSQS:            "AWS SQS",
	ProviderCloudflareQueues:  "Cloudflare Queues",
	ProviderAWSLambda:         "AWS Lambda",
	ProviderCloudflareWorkers: "Cloudflare Workers",
	ProviderAWSS3:             "AWS S3",
	ProviderCloudflareR2:      "Cloudflare R2",
	ProviderCloudflareD1:      "Cloudflare D1",
}

// Name returns the human-readable service name
func (p Provider) Name() string {
	if name, ok := providerNames[p]; ok {
		return name
	}
	return string(p)
}

// String returns the provider key
func (p Provider) String() string {
	return string(p)
}

// Component names used in breakdowns
const (
	ComponentMessage      = "message_fee"
	ComponentEgress       = "egress_fee"
	ComponentRequest      = "request_fee"
	ComponentRequestTime  = "request_time_fee"
	ComponentStorage      = "storage_fee"
	ComponentClassA       = "class_a_operation_fee"
	ComponentClassB       = "class_b_operation_fee"
	ComponentRowsRead     = "rows_read_fee"
	ComponentRowsWritten  = "rows_write_fee"
	ComponentSubscription = "subscription_fee"
)

// LineItem is one named fee component
type LineItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Breakdown is the itemized result of a calculator's All method.
// It never contains a total entry.
type Breakdown []LineItem

// Sum adds all components
func (b Breakdown) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range b {
		sum = sum.Add(item.Amount)
	}
	return sum
}

// Get returns the amount of a named component
func (b Breakdown) Get(name string) (decimal.Decimal, bool) {
	for _, item := range b {
		if item.Name == name {
			return item.Amount, true
		}
	}
	return decimal.Zero, false
}

// Names returns component names in breakdown order
func (b Breakdown) Names() []string {
	names := make([]string, len(b))
	for i, item := range b {
		names[i] = item.Name
	}
	return names
}
