// Package money formats and parses naira amounts.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol prefixes every displayed amount.
const CurrencySymbol = "₦"

// MaxAmount caps user-entered amounts.
var MaxAmount = decimal.NewFromInt(1_000_000_000)

var (
	ErrEmptyAmount    = errors.New("amount is required")
	ErrInvalidAmount  = errors.New("amount must be a number")
	ErrNonPositive    = errors.New("amount must be greater than zero")
	ErrAmountTooLarge = errors.New("amount is too large")
)

// Format renders an amount with the currency symbol and thousands grouping,
// e.g. 0 -> "₦0", 2600 -> "₦2,600", 1234.5 -> "₦1,234.5".
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	p := message.NewPrinter(language.English)
	return CurrencySymbol + p.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(2)))
}

// FormatInt is Format for whole amounts.
func FormatInt(n int) string {
	return Format(decimal.NewFromInt(int64(n)))
}

// ParseAmount parses a form value into a positive amount with at most two
// decimal places. Thousands separators and a leading currency symbol are accepted.
// PRE: none
// POST: Returns a decimal that is positive after rounding, or a validation error
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, CurrencySymbol)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositive
	}
	if d.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrAmountTooLarge
	}
	return d, nil
}
