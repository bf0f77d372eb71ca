package decimal

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount. Calculations keep full precision and
// amounts are only rounded to whole dollars for display.
type Money struct {
	decimal.Decimal
}

// Dollars returns the whole-dollar amount as an int64
func (m Money) Dollars() int64 {
	return m.Decimal.Round(0).IntPart()
}

// Format renders the amount as US currency: "$1,234" or "-$1,234"
func (m Money) Format() string {
	n := m.Dollars()
	if n < 0 {
		return "-$" + humanize.Comma(-n)
	}
	return "$" + humanize.Comma(n)
}

// FormatUSD renders a decimal amount as whole-dollar US currency
func FormatUSD(d decimal.Decimal) string {
	return Money{d}.Format()
}

// FormatPercent renders a rate as a percentage with at most one decimal
// place: 0.22 -> "22%", 0.0875 -> "8.8%"
func FormatPercent(rate decimal.Decimal) string {
	pct := rate.Mul(decimal.NewFromInt(100)).Round(1)
	if pct.Equal(pct.Truncate(0)) {
		return pct.StringFixed(0) + "%"
	}
	return pct.StringFixed(1) + "%"
}

// FormatThousands renders an amount as "$40k", rounded to the nearest thousand
func FormatThousands(d decimal.Decimal) string {
	return "$" + d.Div(decimal.NewFromInt(1000)).Round(0).StringFixed(0) + "k"
}
