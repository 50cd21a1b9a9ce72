package certwizard

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Row is one data line keyed by its lower-cased header.
type Row map[string]string

// FormatFromFilename maps a file name to its declared upload format.
func FormatFromFilename(filename string) (Format, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV, nil
	case strings.HasSuffix(lower, ".xlsx"):
		return FormatXLSX, nil
	default:
		return "", &FormatError{Reason: fmt.Sprintf("unsupported file %q, expected .csv or .xlsx", filename)}
	}
}

// ParseRecords converts raw file bytes into header-keyed rows. The first
// line is the header row; header keys are trimmed and lower-cased for
// determinism. Semantic validation is left to ValidateBatch.
func ParseRecords(data []byte, format Format) ([]Row, error) {
	switch format {
	case FormatCSV:
		return parseCSV(data)
	case FormatXLSX:
		return parseXLSX(data)
	default:
		return nil, &FormatError{Format: string(format), Reason: "unsupported format"}
	}
}

func parseCSV(data []byte) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	// Rows may carry fewer fields than the header; missing cells become "".
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &FormatError{Format: string(FormatCSV), Reason: err.Error()}
	}

	return recordsToRows(records, FormatCSV)
}

func parseXLSX(data []byte) ([]Row, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{Format: string(FormatXLSX), Reason: err.Error()}
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FormatError{Format: string(FormatXLSX), Reason: "workbook has no sheets"}
	}

	// Every cell arrives as a string already; GetRows applies number formats.
	records, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, &FormatError{Format: string(FormatXLSX), Reason: err.Error()}
	}

	return recordsToRows(records, FormatXLSX)
}

// recordsToRows projects positional records onto the header row. Duplicate
// headers are renamed header_2, header_3, ... so no column is lost.
func recordsToRows(records [][]string, format Format) ([]Row, error) {
	if len(records) < 2 {
		return nil, &FormatError{Format: string(format), Reason: "file must contain a header row and at least one data row"}
	}

	headers := make([]string, len(records[0]))
	headerCount := make(map[string]int)
	for i, header := range records[0] {
		header = strings.ToLower(strings.Trim(strings.TrimSpace(header), `"'`))
		if count, exists := headerCount[header]; exists {
			headerCount[header]++
			headers[i] = fmt.Sprintf("%s_%d", header, count+2)
		} else {
			headerCount[header] = 0
			headers[i] = header
		}
	}

	rows := make([]Row, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		row := make(Row, len(headers))
		empty := true
		for j, header := range headers {
			if j < len(records[i]) {
				value := strings.Trim(strings.TrimSpace(records[i][j]), `"'`)
				row[header] = value
				if value != "" {
					empty = false
				}
			} else {
				row[header] = ""
			}
		}

		// Skip fully empty lines, common at the end of spreadsheet exports.
		if empty {
			continue
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &FormatError{Format: string(format), Reason: "file must contain a header row and at least one data row"}
	}

	return rows, nil
}
