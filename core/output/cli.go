package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"cloud-fee/core/compare"
	"cloud-fee/core/fees"
	"cloud-fee/core/quote"
)

const (
	quoteLabelWidth  = 50
	quoteAmountWidth = 20
	labelColumnWidth = 14
	minColumnWidth   = 14
)

var cent = decimal.New(1, -2)

// CLIFormatter renders box-drawn tables for terminals
type CLIFormatter struct {
	opts    Options
	title   *color.Color
	total   *color.Color
	dim     *color.Color
	cheaper *color.Color
}

// NewCLIFormatter creates a table formatter
func NewCLIFormatter(opts Options) *CLIFormatter {
	f := &CLIFormatter{
		opts:    opts,
		title:   color.New(color.FgCyan, color.Bold),
		total:   color.New(color.FgYellow, color.Bold),
		dim:     color.New(color.Faint),
		cheaper: color.New(color.FgGreen),
	}
	if !opts.Color {
		for _, c := range []*color.Color{f.title, f.total, f.dim, f.cheaper} {
			c.DisableColor()
		}
	}
	return f
}

// Format returns cli
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// RenderQuote prints one quote with its components and total
func (f *CLIFormatter) RenderQuote(w io.Writer, result *quote.Result) error {
	inner := quoteLabelWidth + quoteAmountWidth + 3
	b := &strings.Builder{}

	rule(b, "┌", "┐", inner)
	fmt.Fprintf(b, "│%s│\n", f.title.Sprint(center(strings.ToUpper(result.Name)+" FEE ESTIMATE", inner)))
	rule(b, "├", "┤", inner)

	if f.opts.ShowDetails {
		for _, item := range result.Breakdown {
			f.quoteLine(b, "  └─ "+item.Name, Money(item.Amount), f.dim)
		}
		if result.FixedFee.IsPositive() {
			f.quoteLine(b, "  └─ "+fees.ComponentSubscription, Money(result.FixedFee), f.dim)
		}
		rule(b, "├", "┤", inner)
	}

	f.quoteLine(b, "TOTAL MONTHLY FEE", Money(result.Total), f.total)
	rule(b, "└", "┘", inner)

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *CLIFormatter) quoteLine(b *strings.Builder, label, amount string, c *color.Color) {
	fmt.Fprintf(b, "│ %-*s %s │\n",
		quoteLabelWidth, truncate(label, quoteLabelWidth),
		c.Sprintf("%*s", quoteAmountWidth, amount))
}

// RenderComparison prints one row per sample point and one column per
// dataset. The cheapest provider of each row is highlighted.
func (f *CLIFormatter) RenderComparison(w io.Writer, comparison compare.Comparison) error {
	widths := make([]int, len(comparison.Datasets))
	inner := labelColumnWidth + 2
	for i, ds := range comparison.Datasets {
		widths[i] = minColumnWidth
		if len(ds.Label) > widths[i] {
			widths[i] = len(ds.Label)
		}
		inner += widths[i] + 3
	}

	b := &strings.Builder{}
	rule(b, "┌", "┐", inner)
	title := strings.ToUpper(string(comparison.Category)) + " FEE COMPARISON (USD/month)"
	fmt.Fprintf(b, "│%s│\n", f.title.Sprint(center(title, inner)))
	rule(b, "├", "┤", inner)

	fmt.Fprintf(b, "│ %*s", labelColumnWidth, comparison.XTitle)
	for i, ds := range comparison.Datasets {
		fmt.Fprintf(b, " │ %*s", widths[i], ds.Label)
	}
	b.WriteString(" │\n")
	rule(b, "├", "┤", inner)

	for row, x := range comparison.Labels {
		cheapest := comparison.Cheapest(row)
		fmt.Fprintf(b, "│ %*s", labelColumnWidth, x.String())
		for i, ds := range comparison.Datasets {
			cell := fmt.Sprintf("%*s", widths[i], Money(ds.Values[row]))
			if i == cheapest {
				cell = f.cheaper.Sprint(cell)
			}
			fmt.Fprintf(b, " │ %s", cell)
		}
		b.WriteString(" │\n")
	}
	rule(b, "└", "┘", inner)

	_, err := io.WriteString(w, b.String())
	return err
}

// Money formats a USD amount with cents, keeping sub-cent amounts visible
func Money(d decimal.Decimal) string {
	if d.IsZero() || d.Abs().GreaterThanOrEqual(cent) {
		return "$" + d.StringFixed(2)
	}
	return "$" + d.StringFixed(6)
}

func rule(b *strings.Builder, left, right string, width int) {
	b.WriteString(left)
	b.WriteString(strings.Repeat("─", width))
	b.WriteString(right)
	b.WriteString("\n")
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
