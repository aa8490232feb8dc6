package money_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"ofx/internal/domain/money"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₦0"},
		{"200", "₦200"},
		{"2600", "₦2,600"},
		{"1234.5", "₦1,234.5"},
		{"1000000", "₦1,000,000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := money.Format(decimal.RequireFromString(tt.in))
			if got != tt.want {
				t.Errorf("Format(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatInt(t *testing.T) {
	if got := money.FormatInt(0); got != "₦0" {
		t.Errorf("FormatInt(0) = %q, want ₦0", got)
	}
}

// TestParseAmount tests parsing of user-entered withdrawal and earning amounts.
func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{"integer", "500", "500", nil},
		{"decimal", "12.50", "12.5", nil},
		{"grouped with symbol", "₦2,500", "2500", nil},
		{"rounds to kobo", "1.005", "1.01", nil},
		{"empty", "  ", "", money.ErrEmptyAmount},
		{"not a number", "ten", "", money.ErrInvalidAmount},
		{"zero", "0", "", money.ErrNonPositive},
		{"negative", "-5", "", money.ErrNonPositive},
		{"rounds to zero", "0.001", "", money.ErrNonPositive},
		{"rounds to zero below half", "0.004", "", money.ErrNonPositive},
		{"smallest unit", "0.005", "0.01", nil},
		{"too large", "1000000000.01", "", money.ErrAmountTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseAmount(tt.raw)
			if err != tt.wantErr {
				t.Fatalf("ParseAmount(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
			if err == nil && !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}
