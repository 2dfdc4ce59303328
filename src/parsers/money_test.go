package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		raw  string
		want float64
	}{
		{"$1,234.56", 1234.56},
		{"$(1,234.56)", -1234.56},
		{"(150.00)", -150},
		{"-500", -500},
		{"150", 150},
		{"€2.50", 2.5},
		{"£1,000", 1000},
		{"$ 12.00", 12},
		{"  42.5  ", 42.5},
		{"0", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := ParseMoney(tc.raw)
			require.True(t, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestParseMoneyRejectsNonNumeric(t *testing.T) {
	for _, raw := range []string{"", "   ", "abc", "$", "(abc)", "1.2.3"} {
		_, ok := ParseMoney(raw)
		assert.False(t, ok, "expected %q to fail", raw)
	}
}

func TestParseQuantity(t *testing.T) {
	got, ok := ParseQuantity("2")
	require.True(t, ok)
	assert.Equal(t, 2, got)

	got, ok = ParseQuantity(" 15 ")
	require.True(t, ok)
	assert.Equal(t, 15, got)
}

func TestParseQuantityRejectsNonPositive(t *testing.T) {
	for _, raw := range []string{"", "0", "-3", "2.5", "abc"} {
		_, ok := ParseQuantity(raw)
		assert.False(t, ok, "expected %q to fail", raw)
	}
}
