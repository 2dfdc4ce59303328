package services

import (
	"fmt"
	"time"

	"github.com/username/tradevault/backend/src/analytics"
	"github.com/username/tradevault/backend/src/config"
	"github.com/username/tradevault/backend/src/database"
	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/model"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/utils"
)

type analyticsServiceImpl struct {
	tradeService TradeService
}

func NewAnalyticsService(tradeService TradeService) AnalyticsService {
	return &analyticsServiceImpl{
		tradeService: tradeService,
	}
}

// DashboardStats fetches the full trade set for the range and recomputes
// every aggregate from scratch. Deliberately no caching or incremental
// update: each range change is an independent recomputation, so a stale
// response can never leak numbers from a previous range.
func (s *analyticsServiceImpl) DashboardStats(userID int64, startDate, endDate string) (*models.DashboardStats, error) {
	startTime := time.Now()

	user, err := model.GetUserByID(database.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc, err = time.LoadLocation(config.Cfg.MarketTimezone)
		if err != nil {
			return nil, fmt.Errorf("failed to load market timezone %q: %w", config.Cfg.MarketTimezone, err)
		}
	}

	trades, err := s.tradeService.ListTrades(userID, startDate, endDate, 0, 0)
	if err != nil {
		return nil, err
	}

	openMinutes, ok := utils.ParseClock(config.Cfg.MarketOpen)
	if !ok {
		openMinutes = 8*60 + 30
	}
	closeMinutes, ok := utils.ParseClock(config.Cfg.MarketClose)
	if !ok {
		closeMinutes = 15 * 60
	}
	window := analytics.MarketWindow{
		OpenMinutes:  openMinutes,
		CloseMinutes: closeMinutes,
		Loc:          loc,
	}

	stats := &models.DashboardStats{
		TotalTrades:        len(trades),
		AvgTradeGapMinutes: analytics.AverageTradeGapMinutes(trades, window),
		Distribution:       analytics.PnLDistribution(trades, user.CurrencySymbol),
		HourlyPerformance:  analytics.HourlyPerformance(trades, loc),
		TickerStats:        analytics.TickerStats(trades),
		EquityCurve:        analytics.EquityCurve(trades),
	}
	for _, trade := range trades {
		stats.TotalNetProfit += trade.NetProfit
	}

	logger.L.Debug("Dashboard stats computed", "userID", userID, "start", startDate, "end", endDate,
		"trades", len(trades), "duration", time.Since(startTime))
	return stats, nil
}
