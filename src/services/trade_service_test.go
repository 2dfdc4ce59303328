package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteQuotedRow(t *testing.T) {
	var b strings.Builder
	err := writeQuotedRow(&b, []string{"2024-12-16", "ESZ", "$150.00"})
	require.NoError(t, err)
	assert.Equal(t, "\"2024-12-16\",\"ESZ\",\"$150.00\"\r\n", b.String())
}

func TestWriteQuotedRowEscapesEmbeddedQuotes(t *testing.T) {
	var b strings.Builder
	err := writeQuotedRow(&b, []string{`said "hello"`, ""})
	require.NoError(t, err)
	assert.Equal(t, "\"said \"\"hello\"\"\",\"\"\r\n", b.String())
}

func TestWriteQuotedRowKeepsCommasAndNewlinesInsideQuotes(t *testing.T) {
	var b strings.Builder
	err := writeQuotedRow(&b, []string{"a,b", "line1\nline2"})
	require.NoError(t, err)
	assert.Equal(t, "\"a,b\",\"line1\nline2\"\r\n", b.String())
}

func TestFormatInstant(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	assert.Equal(t, "2024-12-16 09:31:02", formatInstant("2024-12-16T15:31:02Z", chicago))
	// Unparseable input passes through untouched.
	assert.Equal(t, "garbage", formatInstant("garbage", chicago))
}
