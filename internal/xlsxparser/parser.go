// =============================================================================
// Employee Records - XLSX Parser Module
// =============================================================================
//
// This module reads employee records from XLSX workbooks. It lets the same
// employee export be supplied as a spreadsheet instead of a CSV file.
//
// WORKBOOK LAYOUT:
//   - Only one sheet is read (the first sheet unless a name is given)
//   - Row 1 holds the field names
//   - Every following non-blank row holds one employee
//
// Cells are read as their formatted text, so every value is a string, the
// same as values read from CSV files.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/employee-records/internal/csvparser"
	"github.com/ginjaninja78/employee-records/internal/types"
	"github.com/xuri/excelize/v2"
)

// Extension is the file extension handled by this package.
const Extension = ".xlsx"

// IsWorkbook reports whether a path names an XLSX workbook.
func IsWorkbook(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), Extension)
}

// Parse reads employee records from the first sheet of a workbook.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//
// RETURNS:
//   - The parsed data, in the same shape as CSV data.
//   - An error wrapping csvparser.ErrUnreadable if the workbook cannot be
//     opened or read.
func Parse(filePath string) (*csvparser.CSVData, error) {
	return ParseSheet(filePath, "")
}

// ParseSheet reads employee records from the named sheet. An empty name
// selects the first sheet.
func ParseSheet(filePath, sheetName string) (*csvparser.CSVData, error) {
	data := &csvparser.CSVData{
		Headers:    []string{},
		Rows:       []*types.Record{},
		SourceFile: filePath,
	}

	// Open the XLSX file.
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return data, fmt.Errorf("%w: failed to open workbook: %w", csvparser.ErrUnreadable, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return data, fmt.Errorf("%w: workbook has no sheets", csvparser.ErrUnreadable)
	}

	// Get all rows from the sheet.
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return data, fmt.Errorf("%w: failed to read rows: %w", csvparser.ErrUnreadable, err)
	}

	if len(rows) == 0 {
		return data, nil
	}

	data.Headers = rows[0]
	data.ColumnCount = len(data.Headers)

	for _, row := range rows[1:] {
		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}

		data.Rows = append(data.Rows, csvparser.PopulateFields(data.Headers, padRow(row, data.ColumnCount)))
		data.RowCount++
	}

	return data, nil
}

// padRow extends a row with empty cells up to width. Spreadsheets drop
// trailing blank cells, which are still present columns.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
