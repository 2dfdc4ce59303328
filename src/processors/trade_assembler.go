package processors

import (
	"time"

	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/parsers"
)

// Row validation messages, surfaced to the user verbatim in the import preview.
const (
	errMissingTicker    = "Missing ticker"
	errMissingQuantity  = "Missing quantity"
	errInvalidQuantity  = "Invalid quantity"
	errInvalidTimestamp = "Invalid timestamps"
	errMissingPnL       = "Missing P&L"
	errInvalidPnL       = "Invalid P&L amount"
)

const tickerMaxLen = 3

// TradeAssembler turns mapped CSV rows into candidate trades. Timestamps are
// interpreted in loc; commission comes from the user's settings, never from
// the row.
type TradeAssembler struct {
	loc                   *time.Location
	commissionPerContract float64
}

func NewTradeAssembler(loc *time.Location, commissionPerContract float64) *TradeAssembler {
	return &TradeAssembler{
		loc:                   loc,
		commissionPerContract: commissionPerContract,
	}
}

// MapRows runs MapRow over every data row.
func (a *TradeAssembler) MapRows(header []string, rows [][]string, mapping *models.BrokerFieldMapping) []models.MappedTrade {
	trades := make([]models.MappedTrade, 0, len(rows))
	for _, row := range rows {
		trades = append(trades, a.MapRow(header, row, mapping))
	}
	return trades
}

// MapRow builds one MappedTrade from a CSV row. Every check runs
// independently and appends its own message; a row can carry several errors at
// once. A row with an empty error list is valid, and only valid rows are ever
// submitted to storage.
func (a *TradeAssembler) MapRow(header []string, row []string, mapping *models.BrokerFieldMapping) models.MappedTrade {
	trade := models.MappedTrade{
		CommissionPerContract: a.commissionPerContract,
		Errors:                []string{},
	}

	ticker := parsers.ResolveField(header, row, mapping, models.FieldTicker)
	if ticker == "" {
		trade.Errors = append(trade.Errors, errMissingTicker)
	} else {
		// Symbols longer than 3 characters are truncated. Known to mangle
		// option and multi-leg symbols; kept for compatibility with existing
		// journals.
		if len(ticker) > tickerMaxLen {
			ticker = ticker[:tickerMaxLen]
		}
		trade.Ticker = ticker
	}

	quantityRaw := parsers.ResolveField(header, row, mapping, models.FieldContracts)
	quantityOK := false
	if quantityRaw == "" {
		trade.Errors = append(trade.Errors, errMissingQuantity)
	} else if quantity, ok := parsers.ParseQuantity(quantityRaw); ok {
		trade.Contracts = quantity
		quantityOK = true
	} else {
		trade.Errors = append(trade.Errors, errInvalidQuantity)
	}

	buyRaw := parsers.ResolveField(header, row, mapping, models.FieldBuyTime)
	sellRaw := parsers.ResolveField(header, row, mapping, models.FieldSellTime)
	a.assembleLegs(&trade, buyRaw, sellRaw)

	pnlRaw := parsers.ResolveField(header, row, mapping, models.FieldProfitLoss)
	pnlOK := false
	if pnlRaw == "" {
		trade.Errors = append(trade.Errors, errMissingPnL)
	} else if pnl, ok := parsers.ParseMoney(pnlRaw); ok {
		trade.ProfitLoss = pnl
		pnlOK = true
	} else {
		trade.Errors = append(trade.Errors, errInvalidPnL)
	}

	// Net profit is only meaningful when both inputs parsed; otherwise the
	// row is already invalid and the field stays zero.
	if pnlOK && quantityOK {
		trade.NetProfit = trade.ProfitLoss - float64(trade.Contracts)*trade.CommissionPerContract
	}

	trade.Valid = len(trade.Errors) == 0
	return trade
}

// assembleLegs parses the two leg timestamps and derives direction, entry,
// exit and the trade's calendar date. The buy leg preceding the sell leg means
// long; otherwise short, including the equal-instant case. Entry is always the
// earlier leg regardless of which column it came from.
func (a *TradeAssembler) assembleLegs(trade *models.MappedTrade, buyRaw, sellRaw string) {
	buyTime, buyOK := parsers.ParseTimestamp(buyRaw, a.loc)
	sellTime, sellOK := parsers.ParseTimestamp(sellRaw, a.loc)
	if !buyOK || !sellOK {
		trade.Errors = append(trade.Errors, errInvalidTimestamp)
		return
	}

	if buyTime.Before(sellTime) {
		trade.Direction = models.DirectionLong
		trade.EntryTime = buyTime
		trade.ExitTime = sellTime
	} else {
		trade.Direction = models.DirectionShort
		trade.EntryTime = sellTime
		trade.ExitTime = buyTime
	}

	trade.Date = trade.EntryTime.In(a.loc).Format("2006-01-02")
}
