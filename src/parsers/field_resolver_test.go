package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/tradevault/backend/src/models"
)

func TestResolveField(t *testing.T) {
	mapping := &models.BrokerFieldMapping{
		BrokerName: "TestBroker",
		Fields: map[string]string{
			models.FieldTicker:     "Symbol",
			models.FieldContracts:  "Qty",
			models.FieldProfitLoss: "P/L",
		},
	}

	header := []string{"Symbol", " Qty ", "P/L", "Extra"}
	row := []string{"ESZ4", "2", "$150.00", "x"}

	assert.Equal(t, "ESZ4", ResolveField(header, row, mapping, models.FieldTicker))
	assert.Equal(t, "2", ResolveField(header, row, mapping, models.FieldContracts))
	assert.Equal(t, "$150.00", ResolveField(header, row, mapping, models.FieldProfitLoss))
}

func TestResolveFieldCaseInsensitiveHeader(t *testing.T) {
	mapping := &models.BrokerFieldMapping{
		Fields: map[string]string{models.FieldTicker: "symbol"},
	}
	header := []string{"SYMBOL"}
	row := []string{"NQZ4"}

	assert.Equal(t, "NQZ4", ResolveField(header, row, mapping, models.FieldTicker))
}

func TestResolveFieldMissingCases(t *testing.T) {
	mapping := &models.BrokerFieldMapping{
		Fields: map[string]string{models.FieldTicker: "Symbol"},
	}
	header := []string{"Symbol", "Qty"}

	// Unmapped logical field.
	assert.Equal(t, "", ResolveField(header, []string{"ESZ4", "2"}, mapping, models.FieldContracts))
	// Mapped header absent from this file.
	assert.Equal(t, "", ResolveField([]string{"Other"}, []string{"x"}, mapping, models.FieldTicker))
	// Short row: column index beyond the row's cells.
	mapping.Fields[models.FieldContracts] = "Qty"
	assert.Equal(t, "", ResolveField(header, []string{"ESZ4"}, mapping, models.FieldContracts))
	// Cell value trimmed.
	assert.Equal(t, "ESZ4", ResolveField(header, []string{"  ESZ4  ", "2"}, mapping, models.FieldTicker))
}
