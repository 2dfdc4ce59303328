package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tradevault/backend/src/models"
)

func TestTickerStats(t *testing.T) {
	trades := []models.Trade{
		{Ticker: "ESZ", NetProfit: 100},
		{Ticker: "NQZ", NetProfit: 250},
		{Ticker: "ESZ", NetProfit: -20},
		{Ticker: "CLF", NetProfit: 80},
	}

	stats := TickerStats(trades)

	require.Len(t, stats, 3)
	assert.Equal(t, "NQZ", stats[0].Ticker)
	assert.InDelta(t, 250.0, stats[0].PnL, 1e-9)
	assert.Equal(t, 1, stats[0].TotalTrades)

	assert.Equal(t, "CLF", stats[1].Ticker)
	assert.Equal(t, "ESZ", stats[2].Ticker)
	assert.InDelta(t, 80.0, stats[2].PnL, 1e-9)
	assert.Equal(t, 2, stats[2].TotalTrades)
}

func TestTickerStatsTieBrokenByName(t *testing.T) {
	trades := []models.Trade{
		{Ticker: "NQZ", NetProfit: 50},
		{Ticker: "ESZ", NetProfit: 50},
	}

	stats := TickerStats(trades)
	require.Len(t, stats, 2)
	assert.Equal(t, "ESZ", stats[0].Ticker)
	assert.Equal(t, "NQZ", stats[1].Ticker)
}

func TestTickerStatsEmpty(t *testing.T) {
	assert.Empty(t, TickerStats(nil))
}

func TestEquityCurveCumulative(t *testing.T) {
	trades := []models.Trade{
		{Date: "2024-12-17", EntryTime: "2024-12-17T15:00:00Z", NetProfit: -30},
		{Date: "2024-12-16", EntryTime: "2024-12-16T15:00:00Z", NetProfit: 100},
		{Date: "2024-12-16", EntryTime: "2024-12-16T16:00:00Z", NetProfit: 50},
	}

	points := EquityCurve(trades)

	require.Len(t, points, 3)
	assert.Equal(t, "2024-12-16", points[0].Date)
	assert.InDelta(t, 100.0, points[0].CumulativeValue, 1e-9)
	assert.Equal(t, "2024-12-16", points[1].Date)
	assert.InDelta(t, 150.0, points[1].CumulativeValue, 1e-9)
	assert.Equal(t, "2024-12-17", points[2].Date)
	assert.InDelta(t, 120.0, points[2].CumulativeValue, 1e-9)
}

func TestEquityCurveDoesNotMutateInput(t *testing.T) {
	trades := []models.Trade{
		{Date: "2024-12-17", EntryTime: "2024-12-17T15:00:00Z", NetProfit: 1},
		{Date: "2024-12-16", EntryTime: "2024-12-16T15:00:00Z", NetProfit: 2},
	}

	_ = EquityCurve(trades)
	assert.Equal(t, "2024-12-17", trades[0].Date)
}

func TestEquityCurveEmpty(t *testing.T) {
	points := EquityCurve(nil)
	assert.Empty(t, points)
	assert.NotNil(t, points)
}
