package output

import (
	"strconv"

	pkgdecimal "github.com/saltcap/policy-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole-dollar USD with thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return pkgdecimal.FormatUSD(amount) }

// FormatPercentage formats a rate (0.22) as a percentage ("22%").
func FormatPercentage(rate decimal.Decimal) string { return pkgdecimal.FormatPercent(rate) }

// plain renders a whole-dollar amount for machine-readable outputs.
func plain(amount decimal.Decimal) string { return amount.Round(0).StringFixed(0) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
