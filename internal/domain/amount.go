package domain

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount represents a non-negative integer number of token units.
// The underlying decimal always has exponent 0, so values of any size are kept exactly.
type Amount struct {
	value decimal.Decimal
}

// ZeroAmount is the zero token amount
var ZeroAmount = Amount{value: decimal.Zero}

var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

// ParseAmount parses a string of decimal digits into an Amount.
// Signs, fractions and exponent notation are rejected with ErrInvalidAmount.
func ParseAmount(raw string) (Amount, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Amount{}, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	if !digitsPattern.MatchString(trimmed) {
		return Amount{}, fmt.Errorf("%w: %q is not a whole number of units", ErrInvalidAmount, raw)
	}

	v, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return Amount{}, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}
	return Amount{value: decimal.NewFromBigInt(v, 0)}, nil
}

// NewAmountFromInt creates an Amount from an int64
func NewAmountFromInt(v int64) (Amount, error) {
	if v < 0 {
		return Amount{}, fmt.Errorf("%w: %d is negative", ErrInvalidAmount, v)
	}
	return Amount{value: decimal.NewFromInt(v)}, nil
}

// MustAmount is like NewAmountFromInt but panics on negative input.
// Intended for constants and tests.
func MustAmount(v int64) Amount {
	a, err := NewAmountFromInt(v)
	if err != nil {
		panic(err)
	}
	return a
}

// NewAmountFromDecimal creates an Amount from a decimal value
// The value must be a non-negative integer
func NewAmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, d.String())
	}
	if !d.IsInteger() {
		return Amount{}, fmt.Errorf("%w: %s is not a whole number of units", ErrInvalidAmount, d.String())
	}
	return Amount{value: decimal.NewFromBigInt(d.BigInt(), 0)}, nil
}

// NewAmountFromBigInt creates an Amount from a big integer
func NewAmountFromBigInt(v *big.Int) (Amount, error) {
	if v == nil {
		return Amount{}, fmt.Errorf("%w: nil value", ErrInvalidAmount)
	}
	return NewAmountFromDecimal(decimal.NewFromBigInt(v, 0))
}

// Decimal returns the amount as a decimal value
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// BigInt returns a copy of the amount as a big integer
func (a Amount) BigInt() *big.Int {
	return a.value.BigInt()
}

// Cmp compares two amounts and returns -1, 0 or +1
func (a Amount) Cmp(other Amount) int {
	return a.value.Cmp(other.value)
}

// GreaterThan reports whether a > other
func (a Amount) GreaterThan(other Amount) bool {
	return a.Cmp(other) > 0
}

// Equal reports whether both amounts hold the same number of units
func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

// IsZero reports whether the amount is zero
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Add returns a + other
func (a Amount) Add(other Amount) Amount {
	return Amount{value: a.value.Add(other.value)}
}

// Sub returns a - other as a signed decimal, since the difference may be negative
func (a Amount) Sub(other Amount) decimal.Decimal {
	return a.value.Sub(other.value)
}

// String returns the amount in base units without grouping
func (a Amount) String() string {
	return a.value.String()
}
