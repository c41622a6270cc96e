package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Currency
// ---------------------------------------------------------------------------

func TestNewCurrency_Valid(t *testing.T) {
	tests := []string{"EUR", "USD", "GBP"}
	for _, code := range tests {
		c, err := NewCurrency(code)
		if err != nil {
			t.Errorf("NewCurrency(%q) unexpected error: %v", code, err)
		}
		if c.Code() != code {
			t.Errorf("NewCurrency(%q).Code() = %q, want %q", code, c.Code(), code)
		}
	}
}

func TestNewCurrency_Invalid(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"lowercase", "eur"},
		{"too short", "EU"},
		{"digits", "EU1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCurrency(tt.code); err == nil {
				t.Errorf("NewCurrency(%q) expected error, got nil", tt.code)
			}
		})
	}
}

func TestMustCurrency_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCurrency(\"bad\") did not panic")
		}
	}()
	MustCurrency("bad")
}

// ---------------------------------------------------------------------------
// NewFromString
// ---------------------------------------------------------------------------

func TestNewFromString_Valid(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"100", "100.00 EUR"},
		{"14.1", "14.10 EUR"},
		{"0", "0.00 EUR"},
		{"-50.5", "-50.50 EUR"},
	}
	for _, tt := range tests {
		m, err := NewFromString(tt.amount, EUR)
		if err != nil {
			t.Errorf("NewFromString(%q) unexpected error: %v", tt.amount, err)
			continue
		}
		if got := m.String(); got != tt.want {
			t.Errorf("NewFromString(%q).String() = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestNewFromString_InvalidAmount(t *testing.T) {
	if _, err := NewFromString("not-a-number", EUR); err == nil {
		t.Error("NewFromString with invalid amount expected error, got nil")
	}
}

// ---------------------------------------------------------------------------
// MinorUnits
// ---------------------------------------------------------------------------

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"14.1", 1410},
		{"14.10", 1410},
		{"14.52", 1452},
		{"14", 1400},
		{"0.1", 10},
		{"0.29", 29},
		{"1.005", 101},
		{"0.004", 0},
		{"-1.005", -101},
		{"100.00", 10000},
		{"999999999.99", 99999999999},
	}
	for _, tt := range tests {
		m, err := NewFromString(tt.amount, EUR)
		if err != nil {
			t.Fatalf("NewFromString(%q) unexpected error: %v", tt.amount, err)
		}
		if got := m.MinorUnits(); got != tt.want {
			t.Errorf("MinorUnits(%s) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestMinorUnits_NoFloatDrift(t *testing.T) {
	// Every two-decimal amount up to 100.00 must map to its exact cent count.
	for cents := int64(0); cents <= 10000; cents++ {
		m := New(decimal.New(cents, -2), EUR)
		if got := m.MinorUnits(); got != cents {
			t.Fatalf("MinorUnits(%s) = %d, want %d", m.Amount(), got, cents)
		}
	}
}

// ---------------------------------------------------------------------------
// Predicates
// ---------------------------------------------------------------------------

func TestPredicates(t *testing.T) {
	if !New(decimal.NewFromInt(-5), EUR).IsNegative() {
		t.Error("expected IsNegative true for -5")
	}
	if New(decimal.NewFromInt(3), EUR).IsNegative() {
		t.Error("expected IsNegative false for 3")
	}
}

// ---------------------------------------------------------------------------
// Digits
// ---------------------------------------------------------------------------

func TestDigits(t *testing.T) {
	tests := []struct {
		n    int64
		want int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{99999999999, 11},
		{100000000000, 12},
		{-123, 3},
	}
	for _, tt := range tests {
		if got := Digits(tt.n); got != tt.want {
			t.Errorf("Digits(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
