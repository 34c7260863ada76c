package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD formats a dollar amount as "$1,234.56".
// NaN and infinite values are rendered as "n/a".
func FormatUSD(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	fixed := decimal.NewFromFloat(amount).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	// Insert thousands separators
	var builder strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return sign + "$" + builder.String() + "." + frac
}

// FormatPercent formats a percentage with up to three decimals, e.g. "6.5%"
func FormatPercent(percent float64) string {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(percent).Round(3).String() + "%"
}
