package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/services"
	"github.com/username/tradevault/backend/src/utils"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(service services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: service,
	}
}

// HandleGetDashboardStats recomputes the dashboard aggregates for the
// requested window on every call. ETags let unchanged payloads short-circuit
// to 304 without any server-side caching of the stats themselves.
func (h *AnalyticsHandler) HandleGetDashboardStats(w http.ResponseWriter, r *http.Request) {
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

	stats, err := h.analyticsService.DashboardStats(userID, startDate, endDate)
	if err != nil {
		logger.L.Error("Error computing dashboard stats", "userID", userID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error computing dashboard stats for userID %d: %v", userID, err), http.StatusInternalServerError)
		return
	}

	currentETag, etagErr := utils.GenerateETag(stats)
	if etagErr != nil {
		logger.L.Error("Failed to generate ETag for dashboard stats", "userID", userID, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETag := r.Header.Get("If-None-Match")
		for _, cETag := range strings.Split(clientETag, ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				logger.L.Debug("ETag match for dashboard stats", "userID", userID, "etag", currentETag)
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		logger.L.Error("Error encoding JSON response for dashboard stats", "userID", userID, "error", err)
	}
}
