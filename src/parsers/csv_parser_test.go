package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "Symbol, Qty ,P/L\nESZ4,2,150\nNQZ4,1,-75\n"
	header, rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Symbol", "Qty", "P/L"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ESZ4", "2", "150"}, rows[0])
	assert.Equal(t, []string{"NQZ4", "1", "-75"}, rows[1])
}

func TestParseCSVDiscardsBlankRows(t *testing.T) {
	input := "Symbol,Qty\nESZ4,2\n , \n\"\",\"\"\nNQZ4,1\n"
	_, rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseCSVRaggedRows(t *testing.T) {
	// Rows with differing field counts must survive parsing.
	input := "Symbol,Qty,P/L\nESZ4,2\nNQZ4,1,-75,extra\n"
	_, rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 4)
}

func TestParseCSVEmptyFile(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader("Symbol,Qty,P/L\n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseCSVBlankRowsOnly(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader("Symbol,Qty\n,\n , \n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}
