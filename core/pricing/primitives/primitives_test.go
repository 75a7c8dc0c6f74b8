package primitives

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// TestTierTableFirstMatchWins checks inclusive bounds and the catch-all
func TestTierTableFirstMatchWins(t *testing.T) {
	table := NewTierTable(
		UpTo("10", "3"),
		UpTo("40", "2"),
		Above("1"),
	)

	tests := []struct {
		name     string
		quantity string
		wantRate string
	}{
		{name: "zero falls in first tier", quantity: "0", wantRate: "3"},
		{name: "bound is inclusive", quantity: "10", wantRate: "3"},
		{name: "just above first bound", quantity: "10.001", wantRate: "2"},
		{name: "second bound is inclusive", quantity: "40", wantRate: "2"},
		{name: "catch-all", quantity: "1000000", wantRate: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.RateFor(d(tt.quantity))
			if !got.Equal(d(tt.wantRate)) {
				t.Errorf("RateFor(%s) = %s, want %s", tt.quantity, got, tt.wantRate)
			}
		})
	}
}

// TestWholeVolumeRatesEntireQuantity proves tiers are not graduated
func TestWholeVolumeRatesEntireQuantity(t *testing.T) {
	table := NewTierTable(UpTo("10", "3"), Above("1"))

	got := table.WholeVolume(d("20"), d("20"))
	if !got.Equal(d("20")) {
		t.Fatalf("expected 20 * 1 = 20, got %s", got)
	}

	// Bracket and billed units may differ
	got = table.WholeVolume(d("5"), d("5000"))
	if !got.Equal(d("15000")) {
		t.Fatalf("expected 5000 * 3 = 15000, got %s", got)
	}
}

func TestNewTierTablePanicsOnMalformedTables(t *testing.T) {
	tests := []struct {
		name  string
		tiers []Tier
	}{
		{name: "empty", tiers: nil},
		{name: "no catch-all", tiers: []Tier{UpTo("10", "1"), UpTo("20", "1")}},
		{name: "catch-all not last", tiers: []Tier{Above("1"), UpTo("20", "1")}},
		{name: "descending bounds", tiers: []Tier{UpTo("20", "1"), UpTo("10", "1"), Above("1")}},
		{name: "duplicate bounds", tiers: []Tier{UpTo("10", "1"), UpTo("10", "1"), Above("1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Fatal("expected panic for malformed tier table")
				}
			}()
			NewTierTable(tt.tiers...)
		})
	}
}

func TestFreeAllowanceClampsAtZero(t *testing.T) {
	tests := []struct {
		quantity string
		free     string
		want     string
	}{
		{"0", "1000000", "0"},
		{"999999", "1000000", "0"},
		{"1000000", "1000000", "0"},
		{"1000001", "1000000", "1"},
		{"5", "0", "5"},
	}

	for _, tt := range tests {
		got := FreeAllowance(d(tt.quantity), d(tt.free))
		if !got.Equal(d(tt.want)) {
			t.Errorf("FreeAllowance(%s, %s) = %s, want %s", tt.quantity, tt.free, got, tt.want)
		}
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		n, d, want string
	}{
		{"0", "64", "0"},
		{"1", "64", "1"},
		{"64", "64", "1"},
		{"65", "64", "2"},
		{"128", "64", "2"},
		{"64.5", "64", "2"},
		{"2000000", "10", "200000"},
		{"2000001", "10", "200001"},
		{"7", "2.5", "3"},
	}

	for _, tt := range tests {
		got := CeilDiv(d(tt.n), d(tt.d))
		if !got.Equal(d(tt.want)) {
			t.Errorf("CeilDiv(%s, %s) = %s, want %s", tt.n, tt.d, got, tt.want)
		}
	}
}

// TestUnitConversionsAreExact verifies conversions shift rather than divide
func TestUnitConversionsAreExact(t *testing.T) {
	if got := KilobytesToGigabytes(d("20000000")); !got.Equal(d("20")) {
		t.Errorf("20,000,000 kB should be 20 GB, got %s", got)
	}
	if got := KilobytesToGigabytes(d("1")); !got.Equal(d("0.000001")) {
		t.Errorf("1 kB should be 0.000001 GB, got %s", got)
	}
	if got := MegabytesToGigabytes(d("128")); !got.Equal(d("0.128")) {
		t.Errorf("128 MB should be 0.128 GB, got %s", got)
	}
	if got := GigabytesToTerabytes(d("10001")); !got.Equal(d("10.001")) {
		t.Errorf("10001 GB should be 10.001 TB, got %s", got)
	}
	if got := Millions(d("3")); !got.Equal(d("0.000003")) {
		t.Errorf("3 should be 0.000003 million, got %s", got)
	}
}

func TestPerUnitPricing(t *testing.T) {
	if got := PerThousand(d("1000"), d("0.047")); !got.Equal(d("0.047")) {
		t.Errorf("PerThousand = %s, want 0.047", got)
	}
	if got := PerMillion(d("10000000"), d("0.3")); !got.Equal(d("3")) {
		t.Errorf("PerMillion = %s, want 3", got)
	}
}

func TestQuantityClampsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want decimal.Decimal
	}{
		{name: "negative", in: -5, want: decimal.Zero},
		{name: "NaN", in: math.NaN(), want: decimal.Zero},
		{name: "negative infinity", in: math.Inf(-1), want: decimal.Zero},
		{name: "fraction", in: 0.5, want: d("0.5")},
		{name: "integer", in: 20000000, want: d("20000000")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantity(tt.in); !got.Equal(tt.want) {
				t.Errorf("Quantity(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}

	if !Quantity(math.Inf(1)).IsPositive() {
		t.Error("+Inf should clamp to a positive quantity")
	}
}

func TestClamp(t *testing.T) {
	lo, hi := d("128"), d("10240")

	if got := Clamp(d("50"), lo, hi); !got.Equal(lo) {
		t.Errorf("Clamp(50) = %s, want 128", got)
	}
	if got := Clamp(d("20000"), lo, hi); !got.Equal(hi) {
		t.Errorf("Clamp(20000) = %s, want 10240", got)
	}
	if got := Clamp(d("512"), lo, hi); !got.Equal(d("512")) {
		t.Errorf("Clamp(512) = %s, want 512", got)
	}
}
