package parsers

import (
	"strconv"
	"strings"
)

var moneyStripper = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	",", "",
	"(", "",
	")", "",
	"-", "",
	" ", "",
)

// ParseMoney turns a broker-formatted P&L string into a signed amount.
// Negative values may be written with a leading minus or wrapped in
// parentheses; either marker anywhere in the string makes the amount negative.
// A non-numeric remainder reports ok == false rather than an error.
func ParseMoney(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	negative := strings.ContainsAny(raw, "(-")

	cleaned := moneyStripper.Replace(raw)
	magnitude, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}

	if negative {
		return -magnitude, true
	}
	return magnitude, true
}

// ParseQuantity parses a contract count. Values that are non-numeric or not
// strictly positive are rejected.
func ParseQuantity(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	quantity, err := strconv.Atoi(raw)
	if err != nil || quantity <= 0 {
		return 0, false
	}
	return quantity, true
}
