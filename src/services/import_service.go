package services

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/tradevault/backend/src/config"
	"github.com/username/tradevault/backend/src/database"
	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/model"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/parsers"
	"github.com/username/tradevault/backend/src/processors"
)

const ckImportPreview = "import_preview_user_%d_%s"

type importServiceImpl struct {
	previewCache *cache.Cache
}

func NewImportService(previewCache *cache.Cache) ImportService {
	return &importServiceImpl{
		previewCache: previewCache,
	}
}

// PreviewImport parses the uploaded file, maps every row through the broker
// field mapping and returns the validated candidate trades. The preview is
// held server-side under a fresh id until the user commits or it expires;
// nothing touches the trades table here.
func (s *importServiceImpl) PreviewImport(fileReader io.Reader, userID int64, mappingID int64) (*models.ImportPreview, error) {
	startTime := time.Now()
	logger.L.Info("PreviewImport START", "userID", userID, "mappingID", mappingID)

	user, err := model.GetUserByID(database.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	mapping, err := models.GetBrokerMapping(database.DB, userID, mappingID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingNotFound, err)
	}

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		logger.L.Warn("User has invalid timezone, falling back to configured market timezone",
			"userID", userID, "timezone", user.Timezone)
		loc, err = time.LoadLocation(config.Cfg.MarketTimezone)
		if err != nil {
			return nil, fmt.Errorf("failed to load market timezone %q: %w", config.Cfg.MarketTimezone, err)
		}
	}

	header, rows, err := parsers.ParseCSV(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	assembler := processors.NewTradeAssembler(loc, user.CommissionPerContract)
	mappedTrades := assembler.MapRows(header, rows, mapping)

	preview := &models.ImportPreview{
		PreviewID: uuid.NewString(),
		MappingID: mappingID,
		Trades:    mappedTrades,
	}
	for _, trade := range mappedTrades {
		if trade.Valid {
			preview.ValidCount++
		} else {
			preview.InvalidCount++
		}
	}

	s.previewCache.Set(fmt.Sprintf(ckImportPreview, userID, preview.PreviewID), preview, config.Cfg.PreviewExpiry)

	logger.L.Info("PreviewImport END", "userID", userID, "previewID", preview.PreviewID,
		"rows", len(mappedTrades), "valid", preview.ValidCount, "invalid", preview.InvalidCount,
		"duration", time.Since(startTime))
	return preview, nil
}

// CommitImport persists the valid subset of a preview as a single batch. The
// write is all-or-nothing: any insert failure rolls the whole batch back and
// the preview stays intact so the user can retry. Only full success clears
// the preview.
func (s *importServiceImpl) CommitImport(userID int64, previewID string) (*ImportResult, error) {
	cacheKey := fmt.Sprintf(ckImportPreview, userID, previewID)
	cached, found := s.previewCache.Get(cacheKey)
	if !found {
		return nil, ErrPreviewNotFound
	}
	preview := cached.(*models.ImportPreview)

	var validTrades []models.MappedTrade
	for _, trade := range preview.Trades {
		if trade.Valid {
			validTrades = append(validTrades, trade)
		}
	}
	if len(validTrades) == 0 {
		return nil, ErrNoValidTrades
	}

	dbTx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO trades (user_id, date, entry_time, exit_time, ticker, direction, contracts, profit_loss, commission_per_contract, net_profit, duration_seconds) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, trade := range validTrades {
		durationSeconds := int64(trade.ExitTime.Sub(trade.EntryTime).Seconds())
		_, err := stmt.Exec(userID, trade.Date,
			trade.EntryTime.Format(time.RFC3339), trade.ExitTime.Format(time.RFC3339),
			trade.Ticker, trade.Direction, trade.Contracts,
			trade.ProfitLoss, trade.CommissionPerContract, trade.NetProfit,
			durationSeconds)
		if err != nil {
			return nil, fmt.Errorf("error inserting trade (ticker %s, date %s): %w", trade.Ticker, trade.Date, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing trade batch: %w", err)
	}

	// Preview is only cleared once the batch fully committed.
	s.previewCache.Delete(cacheKey)

	logger.L.Info("CommitImport succeeded", "userID", userID, "previewID", previewID, "imported", len(validTrades))
	return &ImportResult{Imported: len(validTrades)}, nil
}
