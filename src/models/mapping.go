package models

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Logical field names a BrokerFieldMapping can bind. These are the only names
// the import pipeline ever looks up.
const (
	FieldTicker     = "ticker"
	FieldContracts  = "contracts"
	FieldBuyTime    = "buy_time"
	FieldSellTime   = "sell_time"
	FieldProfitLoss = "profit_loss"
)

// BrokerFieldMapping maps logical field names to the literal CSV column
// headers of a specific broker export. Owned by a user, immutable during an
// import run.
type BrokerFieldMapping struct {
	ID         int64             `json:"id,omitempty"`
	UserID     int64             `json:"user_id,omitempty"`
	BrokerName string            `json:"broker_name"`
	Fields     map[string]string `json:"fields"`
}

// Column returns the mapped CSV header for a logical field, or "" when the
// field has no binding. Absence is never an error here; the row validator
// reports missing data.
func (m *BrokerFieldMapping) Column(logicalField string) string {
	if m == nil || m.Fields == nil {
		return ""
	}
	return m.Fields[logicalField]
}

// CreateBrokerMapping inserts a mapping, serializing the field map as JSON.
func CreateBrokerMapping(db *sql.DB, mapping *BrokerFieldMapping) error {
	fieldsJSON, err := json.Marshal(mapping.Fields)
	if err != nil {
		return fmt.Errorf("failed to serialize field map: %w", err)
	}

	stmt, err := db.Prepare(`INSERT INTO broker_mappings (user_id, broker_name, field_map) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.Exec(mapping.UserID, mapping.BrokerName, string(fieldsJSON))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	mapping.ID = id
	return nil
}

// GetBrokerMapping retrieves one mapping, scoped to the owning user.
func GetBrokerMapping(db *sql.DB, userID, mappingID int64) (*BrokerFieldMapping, error) {
	row := db.QueryRow(`SELECT id, user_id, broker_name, field_map FROM broker_mappings WHERE id = ? AND user_id = ?`, mappingID, userID)

	var mapping BrokerFieldMapping
	var fieldsJSON string
	err := row.Scan(&mapping.ID, &mapping.UserID, &mapping.BrokerName, &fieldsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("broker mapping not found")
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &mapping.Fields); err != nil {
		return nil, fmt.Errorf("failed to deserialize field map for mapping %d: %w", mapping.ID, err)
	}
	return &mapping, nil
}

// ListBrokerMappings returns all mappings owned by a user.
func ListBrokerMappings(db *sql.DB, userID int64) ([]BrokerFieldMapping, error) {
	rows, err := db.Query(`SELECT id, user_id, broker_name, field_map FROM broker_mappings WHERE user_id = ? ORDER BY broker_name ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []BrokerFieldMapping
	for rows.Next() {
		var mapping BrokerFieldMapping
		var fieldsJSON string
		if err := rows.Scan(&mapping.ID, &mapping.UserID, &mapping.BrokerName, &fieldsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(fieldsJSON), &mapping.Fields); err != nil {
			return nil, fmt.Errorf("failed to deserialize field map for mapping %d: %w", mapping.ID, err)
		}
		mappings = append(mappings, mapping)
	}
	return mappings, rows.Err()
}

// UpdateBrokerMapping replaces the name and field map of a mapping the user owns.
func UpdateBrokerMapping(db *sql.DB, mapping *BrokerFieldMapping) error {
	fieldsJSON, err := json.Marshal(mapping.Fields)
	if err != nil {
		return fmt.Errorf("failed to serialize field map: %w", err)
	}

	result, err := db.Exec(`UPDATE broker_mappings SET broker_name = ?, field_map = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		mapping.BrokerName, string(fieldsJSON), mapping.ID, mapping.UserID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("broker mapping not found")
	}
	return nil
}

// DeleteBrokerMapping removes a mapping the user owns.
func DeleteBrokerMapping(db *sql.DB, userID, mappingID int64) error {
	result, err := db.Exec(`DELETE FROM broker_mappings WHERE id = ? AND user_id = ?`, mappingID, userID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("broker mapping not found")
	}
	return nil
}
