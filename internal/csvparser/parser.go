// =============================================================================
// Commerce CSV - CSV Parser Module
// =============================================================================
//
// This module reads and writes delimited record files:
//   - First line is a header naming the columns
//   - Every following line is one record, accessed by column name
//   - Rows whose shape differs from the header are rejected
//
// The parser knows nothing about zones or the error taxonomy; the store
// package wraps its errors.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/commerce-csv/internal/config"
	"github.com/ginjaninja78/commerce-csv/internal/types"
)

// ErrEmpty is returned for files without a single data row.
var ErrEmpty = errors.New("CSV file is empty or has no data rows")

// utf8BOM is stripped from the first header cell.
const utf8BOM = "\ufeff"

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents a parsed CSV file.
type CSVData struct {
	// Headers contains the column headers from the CSV file.
	Headers []string

	// Records contains one record per data row, in file order.
	Records types.Sequence

	// SourceFile is the path to the source CSV file, if read from disk.
	SourceFile string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed data.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV settings from the main configuration.
//
// RETURNS:
//   - A pointer to the CSVData struct containing the parsed data.
//   - An error if the file cannot be opened, is empty, or is malformed.
func Parse(filePath string, settings config.CSVSettings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := Read(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath

	return data, nil
}

// Read parses CSV content from r.
func Read(r io.Reader, settings config.CSVSettings) (*CSVData, error) {
	csvReader := csv.NewReader(r)
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	// A header alone is as good as nothing.
	if len(allRows) < 2 {
		return nil, ErrEmpty
	}

	headers := cleanHeaders(allRows[0])

	records := make(types.Sequence, 0, len(allRows)-1)
	for i, row := range allRows[1:] {
		record, err := types.NewRecord(headers, row)
		if err != nil {
			// Line numbers are 1-based and the header is line 1.
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, record)
	}

	return &CSVData{
		Headers: headers,
		Records: records,
	}, nil
}

// configureReader configures the CSV reader based on the settings.
//
// Rows must all have the header's field count; encoding/csv enforces this
// when FieldsPerRecord is 0.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma
	reader.FieldsPerRecord = 0
	reader.ReuseRecord = false
	return nil
}

// cleanHeaders strips a leading UTF-8 byte order mark from the first header.
// Header names are otherwise kept verbatim so that a written file reads back
// with the same field names.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	copy(cleaned, headers)
	if len(cleaned) > 0 {
		cleaned[0] = strings.TrimPrefix(cleaned[0], utf8BOM)
	}
	return cleaned
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write serializes records to w with a header row of exactly fieldnames.
// Callers validate that every record carries every fieldname.
func Write(w io.Writer, fieldnames []string, records types.Sequence, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	rw := &rowWriter{w: w, csv: csv.NewWriter(w)}
	rw.csv.Comma = comma

	if err := rw.write(fieldnames); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, record := range records {
		if err := rw.write(record.Values(fieldnames)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	rw.csv.Flush()
	if err := rw.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// rowWriter wraps csv.Writer for rows made of a single empty field.
// csv.Writer emits those as a blank line, which csv.Reader skips, so they
// are written as a quoted empty field instead.
type rowWriter struct {
	w   io.Writer
	csv *csv.Writer
}

func (rw *rowWriter) write(row []string) error {
	if len(row) != 1 || row[0] != "" {
		return rw.csv.Write(row)
	}

	rw.csv.Flush()
	if err := rw.csv.Error(); err != nil {
		return err
	}
	eol := "\n"
	if rw.csv.UseCRLF {
		eol = "\r\n"
	}
	_, err := io.WriteString(rw.w, `""`+eol)
	return err
}
