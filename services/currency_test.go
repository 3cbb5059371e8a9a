package services

import (
	"math"
	"testing"
)

func TestConvertRate(t *testing.T) {
	rates := RateTable{"EUR": 90.0, "USD": 83.0, "INR": 1.0}

	tests := []struct {
		name     string
		currency string
		quote    string
		expect   Cell
	}{
		{"cross rate", "EUR", "USD", Num(90.0 / 83.0)},
		{"to base currency", "USD", "INR", Num(83.0)},
		{"no currency set", "", "INR", Empty()},
		{"unknown currency", "GBP", "INR", Empty()},
		{"unknown quote currency", "EUR", "CHF", Empty()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertRate(rates, tt.currency, tt.quote)
			if got.Valid != tt.expect.Valid {
				t.Fatalf("ConvertRate(%q, %q).Valid = %v, want %v",
					tt.currency, tt.quote, got.Valid, tt.expect.Valid)
			}
			if got.Valid && math.Abs(got.Value-tt.expect.Value) > 0.001 {
				t.Errorf("ConvertRate(%q, %q) = %v, want %v",
					tt.currency, tt.quote, got.Value, tt.expect.Value)
			}
		})
	}
}

func TestConvertRateSameCurrencyIsExactlyOne(t *testing.T) {
	// Exact even when the table disagrees with itself or lacks the code.
	for _, rates := range []RateTable{
		{"EUR": 90.0},
		{},
		nil,
	} {
		got := ConvertRate(rates, "EUR", "EUR")
		if !got.Valid || got.Value != 1.0 {
			t.Errorf("ConvertRate(EUR, EUR) with table %v = %+v, want exactly 1.0", rates, got)
		}
	}
}
