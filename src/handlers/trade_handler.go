package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/services"
	"github.com/username/tradevault/backend/src/utils"
)

type TradeHandler struct {
	tradeService services.TradeService
}

func NewTradeHandler(service services.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: service,
	}
}

// parseDateRange reads optional start/end query params. Missing values fall
// back to an open range.
func parseDateRange(r *http.Request) (string, string, error) {
	startDate := r.URL.Query().Get("start")
	endDate := r.URL.Query().Get("end")

	if startDate != "" {
		if _, err := utils.ParseISODate(startDate); err != nil {
			return "", "", fmt.Errorf("invalid 'start' date %q, expected YYYY-MM-DD", startDate)
		}
	} else {
		startDate = "0001-01-01"
	}
	if endDate != "" {
		if _, err := utils.ParseISODate(endDate); err != nil {
			return "", "", fmt.Errorf("invalid 'end' date %q, expected YYYY-MM-DD", endDate)
		}
	} else {
		endDate = "9999-12-31"
	}
	return startDate, endDate, nil
}

func (h *TradeHandler) HandleListTrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	offset := 0
	limit := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			utils.SendJSONError(w, "invalid 'offset' parameter", http.StatusBadRequest)
			return
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			utils.SendJSONError(w, "invalid 'limit' parameter", http.StatusBadRequest)
			return
		}
	}

	trades, err := h.tradeService.ListTrades(userID, startDate, endDate, offset, limit)
	if err != nil {
		logger.L.Error("Error listing trades", "userID", userID, "error", err)
		utils.SendJSONError(w, "Error retrieving trades", http.StatusInternalServerError)
		return
	}
	if trades == nil {
		trades = []models.Trade{}
	}

	total, err := h.tradeService.CountTrades(userID, startDate, endDate)
	if err != nil {
		logger.L.Error("Error counting trades", "userID", userID, "error", err)
		utils.SendJSONError(w, "Error retrieving trades", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"trades": trades,
		"total":  total,
	}); err != nil {
		logger.L.Error("Error encoding JSON response for trade list", "userID", userID, "error", err)
	}
}

func (h *TradeHandler) HandleDeleteTrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	var requestBody struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(requestBody.IDs) == 0 {
		utils.SendJSONError(w, "ids must not be empty", http.StatusBadRequest)
		return
	}

	deleted, err := h.tradeService.DeleteTrades(userID, requestBody.IDs)
	if err != nil {
		logger.L.Error("Error deleting trades", "userID", userID, "error", err)
		utils.SendJSONError(w, "Error deleting trades", http.StatusInternalServerError)
		return
	}

	logger.L.Info("Trades deleted", "userID", userID, "requested", len(requestBody.IDs), "deleted", deleted)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"deleted": deleted})
}

// HandleExportCSV streams the user's trades in the requested window as a
// CSV attachment.
func (h *TradeHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("trades_%s.csv", time.Now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.tradeService.ExportCSV(w, userID, startDate, endDate); err != nil {
		// Headers are already out; log and drop the connection mid-body.
		logger.L.Error("Error exporting trades to CSV", "userID", userID, "error", err)
	}
}
