package util

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// NotAvailable is printed for NaN and infinite values.
const NotAvailable = "n/a"

const amountFormat = "#,###.##"

// FormatAmount renders v with thousands separators and two decimals.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return humanize.FormatFloat(amountFormat, v)
}

// FormatMoney renders v as a dollar amount, sign before the currency.
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	if v < 0 {
		return "-$" + humanize.FormatFloat(amountFormat, -v)
	}
	return "$" + humanize.FormatFloat(amountFormat, v)
}

// FormatPercent renders a [0,1] ratio as a percentage with one decimal.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", v*100)
}
