// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"io"

	"cloud-fee/core/compare"
	"cloud-fee/core/quote"
	apperrors "cloud-fee/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderQuote produces output for one itemized quote
	RenderQuote(w io.Writer, result *quote.Result) error

	// RenderComparison produces output for a provider sweep
	RenderComparison(w io.Writer, comparison compare.Comparison) error
}

// Options tune the CLI formatter. JSON output ignores them.
type Options struct {
	// ShowDetails prints per-component lines under each quote
	ShowDetails bool

	// Color enables ANSI colors
	Color bool
}

// New returns the formatter for a format name
func New(format string, opts Options) (Formatter, error) {
	switch Format(format) {
	case FormatCLI, "":
		return NewCLIFormatter(opts), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	}
	return nil, apperrors.Newf(apperrors.TypeInput, "unsupported output format: %s", format).
		WithContext("formats", []Format{FormatCLI, FormatJSON})
}
