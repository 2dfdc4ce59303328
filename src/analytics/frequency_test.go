package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/username/tradevault/backend/src/models"
)

// 08:30 to 15:00 Chicago, the default futures session.
func testWindow(t *testing.T) MarketWindow {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatal(err)
	}
	return MarketWindow{OpenMinutes: 8*60 + 30, CloseMinutes: 15 * 60, Loc: loc}
}

// chicagoTrade builds a trade whose legs are given as Chicago wall-clock
// times; stored times are RFC3339 UTC like the persistence layer writes them.
func chicagoTrade(t *testing.T, date, entry, exit string, netProfit float64) models.Trade {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatal(err)
	}
	entryTime, err := time.ParseInLocation("2006-01-02 15:04", date+" "+entry, loc)
	if err != nil {
		t.Fatal(err)
	}
	exitTime, err := time.ParseInLocation("2006-01-02 15:04", date+" "+exit, loc)
	if err != nil {
		t.Fatal(err)
	}
	return models.Trade{
		Date:      date,
		EntryTime: entryTime.UTC().Format(time.RFC3339),
		ExitTime:  exitTime.UTC().Format(time.RFC3339),
		NetProfit: netProfit,
	}
}

func TestMarketWindowContains(t *testing.T) {
	window := testWindow(t)
	loc := window.Loc

	// Boundaries are inclusive.
	assert.True(t, window.Contains(time.Date(2024, 12, 16, 8, 30, 0, 0, loc)))
	assert.True(t, window.Contains(time.Date(2024, 12, 16, 15, 0, 0, 0, loc)))
	assert.True(t, window.Contains(time.Date(2024, 12, 16, 15, 0, 59, 0, loc)))

	assert.False(t, window.Contains(time.Date(2024, 12, 16, 8, 29, 0, 0, loc)))
	assert.False(t, window.Contains(time.Date(2024, 12, 16, 15, 1, 0, 0, loc)))
	// 2024-12-14 is a Saturday.
	assert.False(t, window.Contains(time.Date(2024, 12, 14, 10, 0, 0, 0, loc)))
}

func TestAverageTradeGapSingleDay(t *testing.T) {
	// Two trades on one weekday: one gap of 15 minutes.
	trades := []models.Trade{
		chicagoTrade(t, "2024-12-16", "09:00", "09:30", 10),
		chicagoTrade(t, "2024-12-16", "09:45", "10:00", -5),
	}
	assert.InDelta(t, 15.0, AverageTradeGapMinutes(trades, testWindow(t)), 1e-9)
}

func TestAverageTradeGapAcrossDays(t *testing.T) {
	// Gaps never span dates: 10 minutes on Monday, 30 on Tuesday, mean 20.
	trades := []models.Trade{
		chicagoTrade(t, "2024-12-16", "09:00", "09:20", 10),
		chicagoTrade(t, "2024-12-16", "09:30", "09:50", 5),
		chicagoTrade(t, "2024-12-17", "10:00", "10:15", -3),
		chicagoTrade(t, "2024-12-17", "10:45", "11:00", 8),
	}
	assert.InDelta(t, 20.0, AverageTradeGapMinutes(trades, testWindow(t)), 1e-9)
}

func TestAverageTradeGapExcludesOutsideWindow(t *testing.T) {
	// The pre-market trade never qualifies, leaving a single qualifying trade
	// on the day and therefore no gap.
	trades := []models.Trade{
		chicagoTrade(t, "2024-12-16", "07:00", "07:30", 10),
		chicagoTrade(t, "2024-12-16", "09:45", "10:00", -5),
	}
	assert.Zero(t, AverageTradeGapMinutes(trades, testWindow(t)))
}

func TestAverageTradeGapWeekendReturnsZero(t *testing.T) {
	// 2024-12-14 is a Saturday.
	trades := []models.Trade{
		chicagoTrade(t, "2024-12-14", "09:00", "09:30", 10),
		chicagoTrade(t, "2024-12-14", "09:45", "10:00", -5),
	}
	assert.Zero(t, AverageTradeGapMinutes(trades, testWindow(t)))
}

func TestAverageTradeGapNoTrades(t *testing.T) {
	assert.Zero(t, AverageTradeGapMinutes(nil, testWindow(t)))
}
