package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/username/tradevault/backend/src/database"
	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/model"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/security/validation"
	"github.com/username/tradevault/backend/src/utils"
)

type tradeServiceImpl struct{}

func NewTradeService() TradeService {
	return &tradeServiceImpl{}
}

const tradeColumns = `id, user_id, date, entry_time, exit_time, ticker, direction, contracts, profit_loss, commission_per_contract, net_profit, duration_seconds, notes, strategy_id`

func scanTrade(scanner interface{ Scan(...interface{}) error }) (models.Trade, error) {
	var trade models.Trade
	var durationSeconds *int64
	var notes *string
	err := scanner.Scan(&trade.ID, &trade.UserID, &trade.Date, &trade.EntryTime, &trade.ExitTime,
		&trade.Ticker, &trade.Direction, &trade.Contracts, &trade.ProfitLoss,
		&trade.CommissionPerContract, &trade.NetProfit, &durationSeconds, &notes, &trade.StrategyID)
	if err != nil {
		return trade, err
	}
	if durationSeconds != nil {
		trade.DurationSeconds = *durationSeconds
	}
	if notes != nil {
		trade.Notes = *notes
	}
	return trade, nil
}

// ListTrades returns the user's trades within the inclusive date range in
// ascending date order. limit <= 0 means no pagination.
func (s *tradeServiceImpl) ListTrades(userID int64, startDate, endDate string, offset, limit int) ([]models.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date ASC, entry_time ASC, id ASC`
	args := []interface{}{userID, startDate, endDate}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying trades for userID %d: %w", userID, err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		trade, scanErr := scanTrade(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("error scanning trade row for userID %d: %w", userID, scanErr)
		}
		trades = append(trades, trade)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over trade rows for userID %d: %w", userID, err)
	}
	logger.L.Debug("Trade fetch complete", "userID", userID, "tradeCount", len(trades))
	return trades, nil
}

// CountTrades is the count-only companion of ListTrades, used for pagination.
func (s *tradeServiceImpl) CountTrades(userID int64, startDate, endDate string) (int, error) {
	var count int
	err := database.DB.QueryRow(`SELECT COUNT(*) FROM trades WHERE user_id = ? AND date >= ? AND date <= ?`,
		userID, startDate, endDate).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting trades for userID %d: %w", userID, err)
	}
	return count, nil
}

// DeleteTrades removes trades by identifier set, scoped to the owning user.
// Ids belonging to other users are silently ignored by the WHERE clause.
func (s *tradeServiceImpl) DeleteTrades(userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}

	result, err := database.DB.Exec(`DELETE FROM trades WHERE user_id = ? AND id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting trades for userID %d: %w", userID, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	logger.L.Info("Deleted trades", "userID", userID, "requested", len(ids), "deleted", deleted)
	return deleted, nil
}

var exportHeader = []string{"Date", "Entry Time", "Exit Time", "Duration", "Ticker", "Direction", "Contracts", "P&L", "Commission/Contract", "Net P&L", "Notes"}

// ExportCSV writes the user's trades in range as CSV, one row per trade.
// Every cell is quoted; monetary fields use the user's currency setting, and
// notes go through the formula-injection sanitizer.
func (s *tradeServiceImpl) ExportCSV(w io.Writer, userID int64, startDate, endDate string) error {
	user, err := model.GetUserByID(database.DB, userID)
	if err != nil {
		return fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	loc, locErr := time.LoadLocation(user.Timezone)
	if locErr != nil {
		loc = time.UTC
	}

	trades, err := s.ListTrades(userID, startDate, endDate, 0, 0)
	if err != nil {
		return err
	}

	if err := writeQuotedRow(w, exportHeader); err != nil {
		return err
	}
	for _, trade := range trades {
		row := []string{
			trade.Date,
			formatInstant(trade.EntryTime, loc),
			formatInstant(trade.ExitTime, loc),
			utils.FormatDuration(trade.DurationSeconds),
			trade.Ticker,
			trade.Direction,
			fmt.Sprintf("%d", trade.Contracts),
			utils.FormatCurrency(trade.ProfitLoss, user.CurrencySymbol),
			utils.FormatCurrency(trade.CommissionPerContract, user.CurrencySymbol),
			utils.FormatCurrency(trade.NetProfit, user.CurrencySymbol),
			validation.SanitizeForFormulaInjection(validation.StripUnprintable(trade.Notes)),
		}
		if err := writeQuotedRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func formatInstant(rfc3339 string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	return t.In(loc).Format("2006-01-02 15:04:05")
}

// writeQuotedRow emits one CSV line with every cell double-quoted, doubling
// embedded quotes per RFC 4180.
func writeQuotedRow(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, cell := range cells {
		quoted[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\r\n")
	return err
}
