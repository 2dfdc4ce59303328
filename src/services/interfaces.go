package services

import (
	"errors"
	"io"

	"github.com/username/tradevault/backend/src/models"
)

var (
	// ErrParsingFailed wraps any CSV-level failure (unreadable file, empty file).
	ErrParsingFailed = errors.New("parsing failed")
	// ErrNoValidTrades aborts a commit whose preview holds zero valid rows.
	ErrNoValidTrades = errors.New("No valid trades to import")
	// ErrPreviewNotFound means the preview id is unknown or has expired.
	ErrPreviewNotFound = errors.New("import preview not found or expired")
	// ErrMappingNotFound means the broker mapping id does not belong to the user.
	ErrMappingNotFound = errors.New("broker mapping not found")
)

// ImportResult reports a committed batch.
type ImportResult struct {
	Imported int `json:"imported"`
}

// ImportService runs the two-phase CSV import: preview (parse, map, validate,
// hold server-side) and commit (persist the valid subset as one batch).
type ImportService interface {
	PreviewImport(fileReader io.Reader, userID int64, mappingID int64) (*models.ImportPreview, error)
	CommitImport(userID int64, previewID string) (*ImportResult, error)
}

// TradeService covers reads, bulk deletion and CSV export of persisted trades.
type TradeService interface {
	ListTrades(userID int64, startDate, endDate string, offset, limit int) ([]models.Trade, error)
	CountTrades(userID int64, startDate, endDate string) (int, error)
	DeleteTrades(userID int64, ids []int64) (int64, error)
	ExportCSV(w io.Writer, userID int64, startDate, endDate string) error
}

// AnalyticsService recomputes every dashboard aggregate from a fresh fetch of
// the trades in range. Nothing is cached between calls.
type AnalyticsService interface {
	DashboardStats(userID int64, startDate, endDate string) (*models.DashboardStats, error)
}
