package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	testCases := []struct {
		amount float64
		symbol string
		want   string
	}{
		{0, "$", "$0.00"},
		{1234.56, "$", "$1,234.56"},
		{-1234.56, "$", "-$1,234.56"},
		{1000000, "$", "$1,000,000.00"},
		{42.5, "€", "€42.50"},
		{-0.01, "$", "-$0.01"},
		{999.999, "$", "$1,000.00"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatCurrency(tc.amount, tc.symbol), "amount %v", tc.amount)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30s", FormatDuration(30))
	assert.Equal(t, "45m", FormatDuration(45*60))
	assert.Equal(t, "45m", FormatDuration(45*60+30))
	assert.Equal(t, "1h 5m", FormatDuration(65*60))
	assert.Equal(t, "0s", FormatDuration(0))
}

func TestParseClock(t *testing.T) {
	minutes, ok := ParseClock("08:30")
	assert.True(t, ok)
	assert.Equal(t, 510, minutes)

	minutes, ok = ParseClock("15:00")
	assert.True(t, ok)
	assert.Equal(t, 900, minutes)

	_, ok = ParseClock("not a clock")
	assert.False(t, ok)
	_, ok = ParseClock("25:00")
	assert.False(t, ok)
}
