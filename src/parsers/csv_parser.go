package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyFile aborts an import before any row processing happens.
var ErrEmptyFile = errors.New("file contains no data rows")

// ParseCSV reads a broker export into a header row plus data rows. Column
// order and naming are broker-specific; nothing here interprets the cells.
// Rows whose cells are all blank are discarded before mapping.
func ParseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, ErrEmptyFile
		}
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read all CSV records: %w", err)
	}

	var rows [][]string
	for _, record := range records {
		if isBlankRow(record) {
			continue
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, nil, ErrEmptyFile
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return header, rows, nil
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
