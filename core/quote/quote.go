// Package quote prices one provider for one usage record. It is the single
// entry point the CLI and the HTTP API share for itemized fees.
package quote

import (
	"github.com/shopspring/decimal"

	"cloud-fee/core/fees"
	apperrors "cloud-fee/internal/errors"
)

// CategoryEgress is accepted alongside the calculator categories. It has a
// single rate card and no provider choice.
const CategoryEgress = "egress"

// ProviderAWSEgress labels egress quotes
const ProviderAWSEgress fees.Provider = "aws-egress"

// Usage carries the inputs of every category; each category reads only
// its own fields.
type Usage struct {
	// queue
	Messages        float64 `json:"messages,omitempty"`
	MessagePerBatch float64 `json:"message_per_batch,omitempty"`
	MessageSizeKB   float64 `json:"message_size_kb,omitempty"`

	// serverless
	Requests  float64 `json:"requests,omitempty"`
	ElapsedMs float64 `json:"elapsed_ms,omitempty"`
	MemoryMB  float64 `json:"memory_mb,omitempty"`

	// storage and database
	VolumeGB         float64 `json:"volume_gb,omitempty"`
	ClassAOperations float64 `json:"class_a_operations,omitempty"`
	ClassBOperations float64 `json:"class_b_operations,omitempty"`
	RowsRead         float64 `json:"rows_read,omitempty"`
	RowsWritten      float64 `json:"rows_written,omitempty"`

	// egress
	TransferredGB float64 `json:"transferred_gb,omitempty"`
}

// Result is an itemized quote
type Result struct {
	Category  string          `json:"category"`
	Provider  fees.Provider   `json:"provider"`
	Name      string          `json:"name"`
	Usage     Usage           `json:"usage"`
	Breakdown fees.Breakdown  `json:"breakdown"`
	FixedFee  decimal.Decimal `json:"fixed_fee"`
	Total     decimal.Decimal `json:"total"`
}

// Quote prices usage with the named provider of a category. Unknown
// categories are input errors; unknown providers are not-found errors.
func Quote(category, provider string, usage Usage) (*Result, error) {
	if category == CategoryEgress {
		return Egress(usage.TransferredGB), nil
	}

	c, err := fees.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	var (
		calc      any
		p         fees.Provider
		breakdown fees.Breakdown
		total     decimal.Decimal
	)

	switch c {
	case fees.CategoryQueue:
		q, err := fees.LookupQueue(provider)
		if err != nil {
			return nil, err
		}
		calc, p = q, q.Provider()
		breakdown = q.All(usage.Messages, usage.MessagePerBatch, usage.MessageSizeKB)
		total = q.TotalFee(usage.Messages, usage.MessagePerBatch, usage.MessageSizeKB)

	case fees.CategoryServerless:
		s, err := fees.LookupServerless(provider)
		if err != nil {
			return nil, err
		}
		calc, p = s, s.Provider()
		breakdown = s.All(usage.Requests, usage.ElapsedMs, usage.MemoryMB)
		total = s.TotalFee(usage.Requests, usage.ElapsedMs, usage.MemoryMB)

	case fees.CategoryStorage:
		s, err := fees.LookupStorage(provider)
		if err != nil {
			return nil, err
		}
		calc, p = s, s.Provider()
		breakdown = s.All(usage.VolumeGB, usage.ClassAOperations, usage.ClassBOperations)
		total = s.TotalFee(usage.VolumeGB, usage.ClassAOperations, usage.ClassBOperations)

	case fees.CategoryDatabase:
		db, err := fees.LookupDatabase(provider)
		if err != nil {
			return nil, err
		}
		calc, p = db, db.Provider()
		breakdown = db.All(usage.RowsRead, usage.RowsWritten, usage.VolumeGB)
		total = db.TotalFee(usage.RowsRead, usage.RowsWritten, usage.VolumeGB)

	default:
		return nil, apperrors.NotSupported("quote for category " + category)
	}

	return &Result{
		Category:  string(c),
		Provider:  p,
		Name:      p.Name(),
		Usage:     usage,
		Breakdown: breakdown,
		FixedFee:  fees.FixedFeeOf(calc),
		Total:     total,
	}, nil
}

// Egress quotes outbound transfer alone
func Egress(transferredGB float64) *Result {
	fee := fees.EgressFee(transferredGB)
	return &Result{
		Category:  CategoryEgress,
		Provider:  ProviderAWSEgress,
		Name:      "AWS data transfer out",
		Usage:     Usage{TransferredGB: transferredGB},
		Breakdown: fees.Breakdown{{Name: fees.ComponentEgress, Amount: fee}},
		FixedFee:  decimal.Zero,
		Total:     fee,
	}
}
