package models

// Derived aggregates. All of these are recomputed on demand from the trades in
// the active date range and never persisted.

// HourBucket summarizes performance for one entry hour of the day (0..23).
type HourBucket struct {
	Hour      int     `json:"hour"`
	Trades    int     `json:"trades"`
	WinRate   float64 `json:"win_rate"` // fraction of trades with positive net profit
	AvgPnL    float64 `json:"avg_pnl"`
}

// HistogramBucket is one fixed-width slice of the net profit distribution.
type HistogramBucket struct {
	RangeLabel string `json:"range_label"`
	Count      int    `json:"count"`
}

// TickerStat aggregates net P&L and trade count per ticker.
type TickerStat struct {
	Ticker      string  `json:"ticker"`
	PnL         float64 `json:"pnl"`
	TotalTrades int     `json:"total_trades"`
}

// EquityPoint is one step of the cumulative equity curve, in trade order.
type EquityPoint struct {
	Date            string  `json:"date"`
	CumulativeValue float64 `json:"cumulative_value"`
}

// DashboardStats bundles every aggregate the dashboard shows for a date range.
type DashboardStats struct {
	TotalTrades        int               `json:"total_trades"`
	TotalNetProfit     float64           `json:"total_net_profit"`
	AvgTradeGapMinutes float64           `json:"avg_trade_gap_minutes"`
	Distribution       []HistogramBucket `json:"distribution"`
	HourlyPerformance  []HourBucket      `json:"hourly_performance"`
	TickerStats        []TickerStat      `json:"ticker_stats"`
	EquityCurve        []EquityPoint     `json:"equity_curve"`
}
