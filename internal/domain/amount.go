package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

// ParseAmount reads a donation amount typed as "12,5" or "12.50".
// The result is positive and rounded half-up to cents.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError("amount", "invalid amount: enter a number greater than zero")
	}

	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError("amount", "invalid amount: enter a number greater than zero")
	}
	return d, nil
}

// Currency is the ISO code donations are charged and recorded in.
// The payment provider only accepts whole units of it.
const Currency = "IDR"

// ChargeAmount rounds a parsed donation to the whole units the provider charges.
// Amounts that round to zero are rejected.
func ChargeAmount(d decimal.Decimal) (decimal.Decimal, error) {
	whole := d.Round(0)
	if !whole.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError("amount", "invalid amount: the minimum donation is 1 "+Currency)
	}
	return whole, nil
}

// GrossAmount is the integer amount sent to the payment provider
func GrossAmount(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// FormatAmount renders an amount as "1.234,56"
func FormatAmount(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
