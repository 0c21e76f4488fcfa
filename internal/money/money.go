// Package money holds amounts as integer minor units (cents).
//
// Every ledger computation works on Money so sums are exact; decimal
// strings only appear at the edges (forms, JSON, receipts) and are converted
// with shopspring/decimal.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units. 1234 is 12.34.
type Money int64

// Cent is the smallest representable amount.
const Cent Money = 1

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrSubCent       = errors.New("amount has more than two decimal places")
	ErrOverflow      = errors.New("amount out of range")
)

// FromCents wraps a raw minor-unit count.
func FromCents(cents int64) Money {
	return Money(cents)
}

// Parse converts a user-entered amount such as "12.34" or "12,34".
// Extra fractional digits are rounded half-up to cents. Negative values are
// rejected.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	return fromRounded(d.Round(2))
}

// FromDecimal converts d without rounding. Values with sub-cent precision
// return ErrSubCent.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Truncate(2)) {
		return 0, fmt.Errorf("%w: %s", ErrSubCent, d.String())
	}
	return fromRounded(d)
}

func fromRounded(d decimal.Decimal) (Money, error) {
	cents := d.Shift(2).BigInt()
	if !cents.IsInt64() {
		return 0, ErrOverflow
	}
	return Money(cents.Int64()), nil
}

// Cents returns the raw minor-unit count.
func (m Money) Cents() int64 {
	return int64(m)
}

// Decimal returns m as a two-place decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String always renders two decimals, e.g. "-15.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// MarshalJSON writes m as a bare JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both 12.34 and "12.34". Sub-cent values are rejected.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	v, err := FromDecimal(d)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Sum adds up amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}
