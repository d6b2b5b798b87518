// =============================================================================
// Commerce CSV - XLSX Parser
// =============================================================================
//
// This module reads and writes record files stored as XLSX workbooks. It is
// the spreadsheet counterpart of csvparser and follows the same contract:
//
//   | Column A | Column B | Column C | Column D |
//   |----------|----------|----------|----------|
//   | name     | category | price    | quantity |   <- header row (row 1)
//   | Widget   | Tools    | 9.90     | 4        |   <- one record per row
//
// Only the first sheet is read unless a sheet name is given. Cells are read
// as their formatted string value.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/commerce-csv/internal/types"
)

// ErrEmpty is returned for sheets without a single data row.
var ErrEmpty = errors.New("XLSX sheet is empty or has no data rows")

// DefaultSheet is the sheet name used when writing.
const DefaultSheet = "Records"

// =============================================================================
// SHEET DATA STRUCTURE
// =============================================================================

// SheetData represents a parsed worksheet.
type SheetData struct {
	// SourceFile is the path to the workbook.
	SourceFile string

	// SheetName is the worksheet the records were read from.
	SheetName string

	// Headers contains the column headers from row 1.
	Headers []string

	// Records contains one record per non-empty data row.
	Records types.Sequence
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the first worksheet of an XLSX workbook.
func Parse(path string) (*SheetData, error) {
	return ParseSheet(path, "")
}

// ParseSheet reads the named worksheet of an XLSX workbook.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//   - sheetName: The worksheet to read; empty selects the first sheet.
//
// RETURNS:
//   - A pointer to the SheetData struct.
//   - An error if the workbook cannot be opened, or the sheet is empty or malformed.
func ParseSheet(path, sheetName string) (*SheetData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	data, err := buildSheetData(rows)
	if err != nil {
		return nil, err
	}
	data.SourceFile = path
	data.SheetName = sheetName

	return data, nil
}

// buildSheetData turns raw rows into records.
//
// GetRows drops trailing empty cells, so short rows are padded back to the
// header width. Rows wider than the header are malformed.
func buildSheetData(rows [][]string) (*SheetData, error) {
	if len(rows) == 0 || isRowEmpty(rows[0]) {
		return nil, ErrEmpty
	}

	// Header names are kept verbatim, like the CSV codec.
	headers := make([]string, len(rows[0]))
	copy(headers, rows[0])

	var records types.Sequence
	for i, row := range rows[1:] {
		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}
		if len(row) > len(headers) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", i+2, len(headers), len(row))
		}

		values := make([]string, len(headers))
		copy(values, row)

		record, err := types.NewRecord(headers, values)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrEmpty
	}

	return &SheetData{Headers: headers, Records: records}, nil
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

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write serializes records as a single-sheet workbook to w.
// Every value is stored as a string cell so prices keep their exact text.
func Write(w io.Writer, fieldnames []string, records types.Sequence) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), DefaultSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]string, len(fieldnames))
	copy(header, fieldnames)
	if err := setRow(f, 1, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, record := range records {
		values := record.Values(fieldnames)
		if err := setRow(f, i+2, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// setRow writes values starting at column A of the given 1-based row.
func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(DefaultSheet, cell, &values)
}
