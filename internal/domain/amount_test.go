package domain

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "Plain integer", raw: "42", want: "42"},
		{name: "Zero is allowed", raw: "0", want: "0"},
		{name: "Surrounding whitespace is trimmed", raw: "  7 ", want: "7"},
		{name: "Leading zeros", raw: "007", want: "7"},
		{name: "Larger than int64", raw: "123456789012345678901234567890", want: "123456789012345678901234567890"},
		{name: "Negative is rejected", raw: "-5", wantErr: true},
		{name: "Fraction is rejected", raw: "1.5", wantErr: true},
		{name: "Empty is rejected", raw: "", wantErr: true},
		{name: "Garbage is rejected", raw: "ten", wantErr: true},
		{name: "Exponent form is rejected", raw: "1e3", wantErr: true},
		{name: "Huge exponent is rejected", raw: "1e20000000", wantErr: true},
		{name: "Trailing fraction is rejected", raw: "1.0", wantErr: true},
		{name: "Plus sign is rejected", raw: "+5", wantErr: true},
		{name: "Inner whitespace is rejected", raw: "1 000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewAmountFromInt_RejectsNegative(t *testing.T) {
	_, err := NewAmountFromInt(-1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	a, err := NewAmountFromInt(10)
	require.NoError(t, err)
	assert.True(t, a.Equal(MustAmount(10)))
}

func TestNewAmountFromDecimal_NormalizesExponent(t *testing.T) {
	// 1.50e2 == 150 but carries a non-zero exponent internally
	a, err := NewAmountFromDecimal(decimal.RequireFromString("1.50e2"))
	require.NoError(t, err)

	assert.Equal(t, "150", a.String())
	assert.Equal(t, int32(0), a.Decimal().Exponent())
}

func TestNewAmountFromBigInt(t *testing.T) {
	_, err := NewAmountFromBigInt(nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewAmountFromBigInt(big.NewInt(-3))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	a, err := NewAmountFromBigInt(big.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, 0, a.BigInt().Cmp(big.NewInt(3)))
}

func TestAmount_Compare(t *testing.T) {
	small := MustAmount(5)
	large := MustAmount(50)

	assert.True(t, large.GreaterThan(small))
	assert.False(t, small.GreaterThan(large))
	assert.False(t, small.GreaterThan(small))
	assert.Equal(t, -1, small.Cmp(large))
	assert.True(t, small.Add(MustAmount(45)).Equal(large))
	assert.True(t, ZeroAmount.IsZero())
}
