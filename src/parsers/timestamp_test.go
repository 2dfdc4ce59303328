package parsers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampFormats(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	testCases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "slash date with seconds",
			raw:  "12/16/2024 09:31:02",
			want: time.Date(2024, 12, 16, 9, 31, 2, 0, chicago),
		},
		{
			name: "slash date without seconds",
			raw:  "12/16/2024 09:31",
			want: time.Date(2024, 12, 16, 9, 31, 0, 0, chicago),
		},
		{
			name: "iso date with seconds",
			raw:  "2024-12-16 09:31:02",
			want: time.Date(2024, 12, 16, 9, 31, 2, 0, chicago),
		},
		{
			name: "iso date without seconds",
			raw:  "2024-12-16 09:31",
			want: time.Date(2024, 12, 16, 9, 31, 0, 0, chicago),
		},
		{
			name: "surrounding whitespace",
			raw:  "  2024-12-16 09:31  ",
			want: time.Date(2024, 12, 16, 9, 31, 0, 0, chicago),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tc.raw, chicago)
			require.True(t, ok)
			assert.True(t, got.Equal(tc.want), "got %v, want %v", got, tc.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseTimestampAmbiguousDayMonth(t *testing.T) {
	// 01/02 must resolve as January 2nd, not February 1st.
	got, ok := ParseTimestamp("01/02/2024 10:00:00", time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 2, got.Day())
}

func TestParseTimestampLocationConversion(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// 09:30 Chicago in winter is 15:30 UTC.
	got, ok := ParseTimestamp("12/16/2024 09:30:00", chicago)
	require.True(t, ok)
	assert.Equal(t, 15, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a date", "16/12/2024 09:31", "2024-12-16T09:31:00Z"} {
		_, ok := ParseTimestamp(raw, time.UTC)
		assert.False(t, ok, "expected %q to fail", raw)
	}
}
