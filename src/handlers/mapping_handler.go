package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/tradevault/backend/src/database"
	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/utils"
)

type MappingHandler struct{}

func NewMappingHandler() *MappingHandler {
	return &MappingHandler{}
}

// knownLogicalFields guards mapping payloads against typos in field names.
var knownLogicalFields = map[string]bool{
	models.FieldTicker:     true,
	models.FieldContracts:  true,
	models.FieldBuyTime:    true,
	models.FieldSellTime:   true,
	models.FieldProfitLoss: true,
}

func validateMappingPayload(mapping *models.BrokerFieldMapping) string {
	if strings.TrimSpace(mapping.BrokerName) == "" {
		return "broker_name is required"
	}
	if len(mapping.Fields) == 0 {
		return "fields must contain at least one binding"
	}
	for logicalField := range mapping.Fields {
		if !knownLogicalFields[logicalField] {
			return "unknown logical field: " + logicalField
		}
	}
	return ""
}

func mappingIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *MappingHandler) HandleListMappings(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	mappings, err := models.ListBrokerMappings(database.DB, userID)
	if err != nil {
		logger.L.Error("Error listing broker mappings", "userID", userID, "error", err)
		utils.SendJSONError(w, "Error retrieving broker mappings", http.StatusInternalServerError)
		return
	}
	if mappings == nil {
		mappings = []models.BrokerFieldMapping{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mappings)
}

func (h *MappingHandler) HandleGetMapping(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	mappingID, ok := mappingIDFromPath(r)
	if !ok {
		utils.SendJSONError(w, "invalid mapping id", http.StatusBadRequest)
		return
	}

	mapping, err := models.GetBrokerMapping(database.DB, userID, mappingID)
	if err != nil {
		utils.SendJSONError(w, "Broker mapping not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mapping)
}

func (h *MappingHandler) HandleCreateMapping(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	var mapping models.BrokerFieldMapping
	if err := json.NewDecoder(r.Body).Decode(&mapping); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateMappingPayload(&mapping); msg != "" {
		utils.SendJSONError(w, msg, http.StatusBadRequest)
		return
	}

	mapping.UserID = userID
	if err := models.CreateBrokerMapping(database.DB, &mapping); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			utils.SendJSONError(w, "A mapping with this broker name already exists", http.StatusConflict)
			return
		}
		logger.L.Error("Error creating broker mapping", "userID", userID, "error", err)
		utils.SendJSONError(w, "Error creating broker mapping", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(mapping)
}

func (h *MappingHandler) HandleUpdateMapping(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	mappingID, ok := mappingIDFromPath(r)
	if !ok {
		utils.SendJSONError(w, "invalid mapping id", http.StatusBadRequest)
		return
	}

	var mapping models.BrokerFieldMapping
	if err := json.NewDecoder(r.Body).Decode(&mapping); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateMappingPayload(&mapping); msg != "" {
		utils.SendJSONError(w, msg, http.StatusBadRequest)
		return
	}

	mapping.ID = mappingID
	mapping.UserID = userID
	if err := models.UpdateBrokerMapping(database.DB, &mapping); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendJSONError(w, "Broker mapping not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Error updating broker mapping", "userID", userID, "mappingID", mappingID, "error", err)
		utils.SendJSONError(w, "Error updating broker mapping", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mapping)
}

func (h *MappingHandler) HandleDeleteMapping(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	mappingID, ok := mappingIDFromPath(r)
	if !ok {
		utils.SendJSONError(w, "invalid mapping id", http.StatusBadRequest)
		return
	}

	if err := models.DeleteBrokerMapping(database.DB, userID, mappingID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendJSONError(w, "Broker mapping not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Error deleting broker mapping", "userID", userID, "mappingID", mappingID, "error", err)
		utils.SendJSONError(w, "Error deleting broker mapping", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
