package domain

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var compactUnits = []struct {
	value  decimal.Decimal
	symbol string
}{
	{decimal.New(1, 12), "T"},
	{decimal.New(1, 9), "B"},
	{decimal.New(1, 6), "M"},
	{decimal.New(1, 3), "K"},
}

// FormatLargeNumber formats a value with K, M, B, T annotations, e.g. 1500 -> "1.5K".
// Values below 1000 are printed as-is. Trailing zeros after the decimal point are dropped.
func FormatLargeNumber(value decimal.Decimal, decimals int32) string {
	if value.Abs().LessThan(decimal.New(1, 3)) {
		return value.String()
	}

	for _, unit := range compactUnits {
		if value.Abs().GreaterThanOrEqual(unit.value) {
			formatted := value.Div(unit.value).StringFixed(decimals)
			if strings.Contains(formatted, ".") {
				formatted = strings.TrimRight(strings.TrimRight(formatted, "0"), ".")
			}
			return formatted + unit.symbol
		}
	}

	return value.String()
}

// FormatAmount renders an amount with thousands separators, e.g. "1,234,567"
func FormatAmount(a Amount) string {
	return humanize.BigComma(a.BigInt())
}
