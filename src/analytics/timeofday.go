package analytics

import (
	"time"

	"github.com/username/tradevault/backend/src/models"
)

// HourlyPerformance groups trades by entry hour in loc and computes count,
// win rate (fraction with positive net profit) and mean net profit per hour.
// All 24 hours are present in the result; hours without trades carry zeros.
func HourlyPerformance(trades []models.Trade, loc *time.Location) []models.HourBucket {
	buckets := make([]models.HourBucket, 24)
	for hour := range buckets {
		buckets[hour].Hour = hour
	}

	wins := make([]int, 24)
	sums := make([]float64, 24)

	for _, trade := range trades {
		entry, err := time.Parse(time.RFC3339, trade.EntryTime)
		if err != nil {
			continue
		}
		hour := entry.In(loc).Hour()
		buckets[hour].Trades++
		sums[hour] += trade.NetProfit
		if trade.NetProfit > 0 {
			wins[hour]++
		}
	}

	for hour := range buckets {
		if buckets[hour].Trades > 0 {
			buckets[hour].WinRate = float64(wins[hour]) / float64(buckets[hour].Trades)
			buckets[hour].AvgPnL = sums[hour] / float64(buckets[hour].Trades)
		}
	}

	return buckets
}
