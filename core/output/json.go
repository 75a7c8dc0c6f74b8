package output

import (
	"encoding/json"
	"io"

	"cloud-fee/core/compare"
	"cloud-fee/core/quote"
	apperrors "cloud-fee/internal/errors"
)

// JSONFormatter writes indented JSON. Amounts are encoded as decimal
// strings so no precision is lost.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns json
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// RenderQuote writes the quote as one JSON object
func (f *JSONFormatter) RenderQuote(w io.Writer, result *quote.Result) error {
	return f.encode(w, result)
}

// RenderComparison writes the comparison as one JSON object
func (f *JSONFormatter) RenderComparison(w io.Writer, comparison compare.Comparison) error {
	return f.encode(w, comparison)
}

func (f *JSONFormatter) encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return apperrors.Internal("failed to write JSON output", err)
	}
	return nil
}
