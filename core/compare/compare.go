// Package compare sweeps one usage parameter across a range and prices
// each point with every provider of a category, producing chart-ready
// series.
package compare

import (
	"math"

	"github.com/shopspring/decimal"

	"cloud-fee/core/fees"
	"cloud-fee/core/pricing/primitives"
	apperrors "cloud-fee/internal/errors"
)

// SampleFactor describes the swept x axis: count points spaced step apart,
// starting at step.
type SampleFactor struct {
	Step  float64 `json:"step"`
	Count int     `json:"count"`
}

// Validate rejects sweeps that produce no points. maxCount of 0 disables
// the upper bound.
func (f SampleFactor) Validate(maxCount int) error {
	if f.Step <= 0 || math.IsNaN(f.Step) || math.IsInf(f.Step, 0) {
		return apperrors.Newf(apperrors.TypeInput, "sample step must be a positive number, got %v", f.Step)
	}
	if f.Count <= 0 {
		return apperrors.Newf(apperrors.TypeInput, "sample count must be positive, got %d", f.Count)
	}
	if maxCount > 0 && f.Count > maxCount {
		return apperrors.Newf(apperrors.TypeInput, "sample count %d exceeds the limit of %d", f.Count, maxCount)
	}
	return nil
}

// Labels returns (i+1)*step for i in [0, count). A step that is not a
// positive number clamps like any usage value.
func Labels(f SampleFactor) []decimal.Decimal {
	if f.Count <= 0 {
		return nil
	}
	step := primitives.Quantity(f.Step)
	labels := make([]decimal.Decimal, f.Count)
	for i := range labels {
		labels[i] = step.Mul(decimal.NewFromInt(int64(i + 1)))
	}
	return labels
}

// Dataset is one priced series
type Dataset struct {
	Label string `json:"label"`

	// Provider is empty for series that are not a single calculator
	Provider fees.Provider     `json:"provider,omitempty"`
	Values   []decimal.Decimal `json:"data"`
}

// Comparison is the result of a sweep
type Comparison struct {
	Category fees.Category     `json:"category"`
	XTitle   string            `json:"x_title"`
	Labels   []decimal.Decimal `json:"labels"`
	Datasets []Dataset         `json:"datasets"`
}

// Cheapest returns the index of the dataset with the lowest value at point
// i, considering only provider series. Ties keep the first dataset.
func (c Comparison) Cheapest(i int) int {
	best := -1
	for j, ds := range c.Datasets {
		if ds.Provider == "" || i >= len(ds.Values) {
			continue
		}
		if best < 0 || ds.Values[i].LessThan(c.Datasets[best].Values[i]) {
			best = j
		}
	}
	return best
}

// sweep prices every label with fn
func sweep(labels []decimal.Decimal, fn func(x float64) decimal.Decimal) []decimal.Decimal {
	values := make([]decimal.Decimal, len(labels))
	for i, x := range labels {
		values[i] = fn(x.InexactFloat64())
	}
	return values
}
