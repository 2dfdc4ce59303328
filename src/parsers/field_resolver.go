package parsers

import (
	"strings"

	"github.com/username/tradevault/backend/src/models"
)

// ResolveField returns the trimmed cell value for a logical field name, going
// through the broker mapping to find the right column. Returns "" when the
// field has no mapping, the mapped header does not exist in this file, or the
// cell is empty or out of range. Never errors: missing data is a row
// validation concern, not a lookup failure.
func ResolveField(header []string, row []string, mapping *models.BrokerFieldMapping, logicalField string) string {
	columnName := mapping.Column(logicalField)
	if columnName == "" {
		return ""
	}

	columnIndex := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), columnName) {
			columnIndex = i
			break
		}
	}
	if columnIndex < 0 || columnIndex >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[columnIndex])
}
