package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCurrency renders an amount with the user's currency symbol, two
// decimals and thousands separators. Negative amounts keep the minus sign in
// front of the symbol, e.g. -$1,234.56.
func FormatCurrency(amount float64, symbol string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	abs := math.Abs(amount)

	formatted := strconv.FormatFloat(abs, 'f', 2, 64)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return fmt.Sprintf("%s%s%s.%s", sign, symbol, b.String(), parts[1])
}

// FormatDuration renders a trade duration as "1h 5m" / "45m" / "30s".
func FormatDuration(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
