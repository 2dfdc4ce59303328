package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tradevault/backend/src/models"
)

func testMapping() *models.BrokerFieldMapping {
	return &models.BrokerFieldMapping{
		BrokerName: "TestBroker",
		Fields: map[string]string{
			models.FieldTicker:     "Symbol",
			models.FieldContracts:  "Qty",
			models.FieldBuyTime:    "Buy Time",
			models.FieldSellTime:   "Sell Time",
			models.FieldProfitLoss: "P/L",
		},
	}
}

var testHeader = []string{"Symbol", "Qty", "Buy Time", "Sell Time", "P/L"}

func TestMapRowValidLongTrade(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	assembler := NewTradeAssembler(chicago, 0.65)

	row := []string{"ESZ4", "2", "12/16/2024 09:31:02", "12/16/2024 09:45:10", "$150.00"}
	trade := assembler.MapRow(testHeader, row, testMapping())

	assert.True(t, trade.Valid)
	assert.Empty(t, trade.Errors)
	assert.Equal(t, "ESZ", trade.Ticker)
	assert.Equal(t, 2, trade.Contracts)
	assert.Equal(t, models.DirectionLong, trade.Direction)
	assert.InDelta(t, 150.0, trade.ProfitLoss, 1e-9)
	assert.InDelta(t, 148.70, trade.NetProfit, 1e-9)
	assert.Equal(t, "2024-12-16", trade.Date)

	wantEntry := time.Date(2024, 12, 16, 9, 31, 2, 0, chicago)
	assert.True(t, trade.EntryTime.Equal(wantEntry))
	assert.True(t, trade.EntryTime.Before(trade.ExitTime))
}

func TestMapRowShortTrade(t *testing.T) {
	assembler := NewTradeAssembler(time.UTC, 0)

	// Sell leg precedes buy leg: short, entry is still the earlier instant.
	row := []string{"NQZ4", "1", "12/16/2024 10:15:00", "12/16/2024 10:00:00", "(75.00)"}
	trade := assembler.MapRow(testHeader, row, testMapping())

	require.True(t, trade.Valid)
	assert.Equal(t, models.DirectionShort, trade.Direction)
	assert.Equal(t, 10, trade.EntryTime.Hour())
	assert.Equal(t, 0, trade.EntryTime.Minute())
	assert.Equal(t, 15, trade.ExitTime.Minute())
	assert.InDelta(t, -75.0, trade.ProfitLoss, 1e-9)
}

func TestMapRowEqualInstantsIsShort(t *testing.T) {
	assembler := NewTradeAssembler(time.UTC, 0)

	row := []string{"ESZ4", "1", "12/16/2024 10:00:00", "12/16/2024 10:00:00", "0"}
	trade := assembler.MapRow(testHeader, row, testMapping())

	require.True(t, trade.Valid)
	assert.Equal(t, models.DirectionShort, trade.Direction)
	assert.True(t, trade.EntryTime.Equal(trade.ExitTime))
}

func TestMapRowZeroQuantityInvalid(t *testing.T) {
	assembler := NewTradeAssembler(time.UTC, 0.65)

	row := []string{"ESZ4", "0", "12/16/2024 09:31:02", "12/16/2024 09:45:10", "$150.00"}
	trade := assembler.MapRow(testHeader, row, testMapping())

	assert.False(t, trade.Valid)
	assert.Equal(t, []string{"Invalid quantity"}, trade.Errors)
	// Net profit must stay zero when quantity never parsed.
	assert.Zero(t, trade.NetProfit)
}

func TestMapRowAccumulatesErrors(t *testing.T) {
	assembler := NewTradeAssembler(time.UTC, 0)

	row := []string{"", "abc", "not a date", "12/16/2024 09:45:10", "xyz"}
	trade := assembler.MapRow(testHeader, row, testMapping())

	assert.False(t, trade.Valid)
	assert.Equal(t, []string{
		"Missing ticker",
		"Invalid quantity",
		"Invalid timestamps",
		"Invalid P&L amount",
	}, trade.Errors)
}

func TestMapRowMissingFields(t *testing.T) {
	assembler := NewTradeAssembler(time.UTC, 0)

	row := []string{"ESZ4", "", "12/16/2024 09:31:02", "12/16/2024 09:45:10", ""}
	trade := assembler.MapRow(testHeader, row, testMapping())

	assert.False(t, trade.Valid)
	assert.Equal(t, []string{"Missing quantity", "Missing P&L"}, trade.Errors)
}

func TestMapRowTickerTruncation(t *testing.T) {
	assembler := NewTradeAssembler(time.UTC, 0)

	row := []string{"MESZ4", "1", "12/16/2024 09:31:02", "12/16/2024 09:45:10", "10"}
	trade := assembler.MapRow(testHeader, row, testMapping())

	require.True(t, trade.Valid)
	assert.Equal(t, "MES", trade.Ticker)
}

func TestMapRowDateFromEntryInLocalZone(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	assembler := NewTradeAssembler(chicago, 0)

	// Late evening Chicago is already the next day in UTC; the journal date
	// must stay on the local calendar day.
	row := []string{"ESZ4", "1", "12/16/2024 21:30:00", "12/16/2024 21:45:00", "25"}
	trade := assembler.MapRow(testHeader, row, testMapping())

	require.True(t, trade.Valid)
	assert.Equal(t, "2024-12-16", trade.Date)
	assert.Equal(t, 17, trade.EntryTime.UTC().Day())
}

func TestMapRowsCounts(t *testing.T) {
	assembler := NewTradeAssembler(time.UTC, 0)

	rows := [][]string{
		{"ESZ4", "2", "12/16/2024 09:31:02", "12/16/2024 09:45:10", "150"},
		{"NQZ4", "0", "12/16/2024 10:00:00", "12/16/2024 10:05:00", "75"},
	}
	trades := assembler.MapRows(testHeader, rows, testMapping())

	require.Len(t, trades, 2)
	assert.True(t, trades[0].Valid)
	assert.False(t, trades[1].Valid)
}
