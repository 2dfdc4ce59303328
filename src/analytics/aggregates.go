package analytics

import (
	"sort"

	"github.com/username/tradevault/backend/src/models"
)

// TickerStats sums trade count and net P&L per ticker, most profitable first.
// Ties fall back to ticker name so the order is stable.
func TickerStats(trades []models.Trade) []models.TickerStat {
	statsByTicker := make(map[string]*models.TickerStat)
	for _, trade := range trades {
		stat, ok := statsByTicker[trade.Ticker]
		if !ok {
			stat = &models.TickerStat{Ticker: trade.Ticker}
			statsByTicker[trade.Ticker] = stat
		}
		stat.PnL += trade.NetProfit
		stat.TotalTrades++
	}

	stats := make([]models.TickerStat, 0, len(statsByTicker))
	for _, stat := range statsByTicker {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].PnL != stats[j].PnL {
			return stats[i].PnL > stats[j].PnL
		}
		return stats[i].Ticker < stats[j].Ticker
	})
	return stats
}

// EquityCurve walks the trades in chronological order and emits one point per
// trade carrying the running cumulative net profit up to and including it.
func EquityCurve(trades []models.Trade) []models.EquityPoint {
	ordered := make([]models.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		return ordered[i].EntryTime < ordered[j].EntryTime
	})

	points := make([]models.EquityPoint, 0, len(ordered))
	var cumulative float64
	for _, trade := range ordered {
		cumulative += trade.NetProfit
		points = append(points, models.EquityPoint{
			Date:            trade.Date,
			CumulativeValue: cumulative,
		})
	}
	return points
}
