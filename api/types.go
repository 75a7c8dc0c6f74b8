package api

import (
	"cloud-fee/core/compare"
	"cloud-fee/core/fees"
	"cloud-fee/core/quote"
)

// FeeRequest is the body of POST /v1/fees/{category}
type FeeRequest struct {
	// Provider is a provider key such as aws-sqs. Ignored for egress.
	Provider string      `json:"provider"`
	Usage    quote.Usage `json:"usage"`
}

// ProvidersResponse is the body of GET /v1/providers
type ProvidersResponse struct {
	Categories map[fees.Category][]ProviderInfo `json:"categories"`
}

// ProviderInfo describes one registered calculator
type ProviderInfo struct {
	Key        fees.Provider `json:"key"`
	Name       string        `json:"name"`
	Components []string      `json:"components"`
	FixedFee   string        `json:"fixed_fee,omitempty"`
}

// ErrorBody is the error envelope of every failed request
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the error type and message
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// compareRequest decodes the factors of one category. The sample block is
// optional; the server default applies when step or count is zero.
type compareRequest interface {
	sample() *compare.SampleFactor
	run() compare.Comparison
}

type queueCompareRequest struct{ compare.QueueFactors }

func (r *queueCompareRequest) sample() *compare.SampleFactor { return &r.Sample }
func (r *queueCompareRequest) run() compare.Comparison       { return compare.Queue(r.QueueFactors) }

type serverlessCompareRequest struct{ compare.ServerlessFactors }

func (r *serverlessCompareRequest) sample() *compare.SampleFactor { return &r.Sample }
func (r *serverlessCompareRequest) run() compare.Comparison {
	return compare.Serverless(r.ServerlessFactors)
}

type storageCompareRequest struct{ compare.StorageFactors }

func (r *storageCompareRequest) sample() *compare.SampleFactor { return &r.Sample }
func (r *storageCompareRequest) run() compare.Comparison       { return compare.Storage(r.StorageFactors) }
