package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tradevault/backend/src/models"
)

func TestHourlyPerformanceAllHoursPresent(t *testing.T) {
	buckets := HourlyPerformance(nil, time.UTC)

	require.Len(t, buckets, 24)
	for hour, bucket := range buckets {
		assert.Equal(t, hour, bucket.Hour)
		assert.Zero(t, bucket.Trades)
		assert.Zero(t, bucket.WinRate)
		assert.Zero(t, bucket.AvgPnL)
	}
}

func TestHourlyPerformanceGrouping(t *testing.T) {
	trades := []models.Trade{
		{EntryTime: "2024-12-16T09:15:00Z", NetProfit: 100},
		{EntryTime: "2024-12-16T09:45:00Z", NetProfit: -50},
		{EntryTime: "2024-12-16T14:05:00Z", NetProfit: 30},
	}

	buckets := HourlyPerformance(trades, time.UTC)

	require.Len(t, buckets, 24)
	assert.Equal(t, 2, buckets[9].Trades)
	assert.InDelta(t, 0.5, buckets[9].WinRate, 1e-9)
	assert.InDelta(t, 25.0, buckets[9].AvgPnL, 1e-9)

	assert.Equal(t, 1, buckets[14].Trades)
	assert.InDelta(t, 1.0, buckets[14].WinRate, 1e-9)
	assert.InDelta(t, 30.0, buckets[14].AvgPnL, 1e-9)
}

func TestHourlyPerformanceHourInLocalZone(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// 15:30 UTC in winter is 09:30 Chicago.
	trades := []models.Trade{
		{EntryTime: "2024-12-16T15:30:00Z", NetProfit: 10},
	}

	buckets := HourlyPerformance(trades, chicago)
	assert.Equal(t, 1, buckets[9].Trades)
	assert.Zero(t, buckets[15].Trades)
}

func TestHourlyPerformanceZeroIsNotAWin(t *testing.T) {
	trades := []models.Trade{
		{EntryTime: "2024-12-16T10:00:00Z", NetProfit: 0},
	}

	buckets := HourlyPerformance(trades, time.UTC)
	assert.Equal(t, 1, buckets[10].Trades)
	assert.Zero(t, buckets[10].WinRate)
}
