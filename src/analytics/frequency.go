package analytics

import (
	"sort"
	"time"

	"github.com/username/tradevault/backend/src/models"
)

// MarketWindow is the local wall-clock session used to decide whether a trade
// qualifies for the frequency statistic. Minutes are counted from midnight.
type MarketWindow struct {
	OpenMinutes  int
	CloseMinutes int
	Loc          *time.Location
}

// Contains reports whether t (converted to the window's zone) falls on a
// weekday inside the session. Both boundaries are inclusive.
func (w MarketWindow) Contains(t time.Time) bool {
	local := t.In(w.Loc)
	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	return minutes >= w.OpenMinutes && minutes <= w.CloseMinutes
}

// AverageTradeGapMinutes computes the mean gap in minutes between consecutive
// same-day trades: each qualifying trade's entry minus the previous qualifying
// trade's exit, per calendar date. Gaps never span dates. Trades entered on a
// weekend or outside the market window do not qualify, and a date needs at
// least two qualifying trades to contribute anything. Returns 0 when no gap
// exists anywhere in range.
func AverageTradeGapMinutes(trades []models.Trade, window MarketWindow) float64 {
	byDate := make(map[string][]models.Trade)
	for _, trade := range trades {
		byDate[trade.Date] = append(byDate[trade.Date], trade)
	}

	var totalMinutes float64
	var totalIntervals int

	for _, dayTrades := range byDate {
		sort.Slice(dayTrades, func(i, j int) bool {
			return dayTrades[i].ExitTime < dayTrades[j].ExitTime
		})

		var qualifying []models.Trade
		for _, trade := range dayTrades {
			entry, err := time.Parse(time.RFC3339, trade.EntryTime)
			if err != nil {
				continue
			}
			if window.Contains(entry) {
				qualifying = append(qualifying, trade)
			}
		}

		for i := 1; i < len(qualifying); i++ {
			entry, errEntry := time.Parse(time.RFC3339, qualifying[i].EntryTime)
			prevExit, errExit := time.Parse(time.RFC3339, qualifying[i-1].ExitTime)
			if errEntry != nil || errExit != nil {
				continue
			}
			totalMinutes += entry.Sub(prevExit).Minutes()
			totalIntervals++
		}
	}

	if totalIntervals == 0 {
		return 0
	}
	return totalMinutes / float64(totalIntervals)
}
