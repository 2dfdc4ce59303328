package models

import "time"

// Trade directions. Direction is inferred from the ordering of the two legs,
// never from which CSV column held which label.
const (
	DirectionLong  = "long"
	DirectionShort = "short"
)

// MappedTrade is the candidate trade produced while previewing an import.
// It is never persisted directly: only rows with Valid == true are submitted,
// and Valid/Errors are stripped at that point.
type MappedTrade struct {
	Date                  string    `json:"date"` // calendar day of the entry leg, user timezone
	EntryTime             time.Time `json:"entry_time"`
	ExitTime              time.Time `json:"exit_time"`
	Ticker                string    `json:"ticker"`
	Direction             string    `json:"direction"`
	Contracts             int       `json:"contracts"`
	ProfitLoss            float64   `json:"profit_loss"`
	CommissionPerContract float64   `json:"commission_per_contract"`
	NetProfit             float64   `json:"net_profit"`
	Valid                 bool      `json:"valid"`
	Errors                []string  `json:"errors"`
}

// Trade is the persisted canonical record once an import succeeds (or the row
// was entered manually).
type Trade struct {
	ID                    int64   `json:"id,omitempty"`
	UserID                int64   `json:"user_id,omitempty"`
	Date                  string  `json:"date"` // ISO calendar date, e.g. "2024-01-02"
	EntryTime             string  `json:"entry_time"`
	ExitTime              string  `json:"exit_time"`
	Ticker                string  `json:"ticker"`
	Direction             string  `json:"direction"`
	Contracts             int     `json:"contracts"`
	ProfitLoss            float64 `json:"profit_loss"`
	CommissionPerContract float64 `json:"commission_per_contract"`
	NetProfit             float64 `json:"net_profit"`
	DurationSeconds       int64   `json:"duration_seconds,omitempty"`
	Notes                 string  `json:"notes,omitempty"`
	StrategyID            *int64  `json:"strategy_id,omitempty"`
}

// ImportPreview holds a parsed-and-validated file between the preview call and
// the commit call. Kept server-side in the preview cache under PreviewID.
type ImportPreview struct {
	PreviewID    string        `json:"preview_id"`
	MappingID    int64         `json:"mapping_id"`
	Trades       []MappedTrade `json:"trades"`
	ValidCount   int           `json:"valid_count"`
	InvalidCount int           `json:"invalid_count"`
}
