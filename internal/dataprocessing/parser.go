package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RequiredColumns are the header names an upload must carry. Any additional
// columns are ignored.
var RequiredColumns = []string{
	"Campaign Name",
	"Campaign ID",
	"Subject",
	"Send Time",
	"Open Rate",
}

// RawTable is the parser output: an ordered sequence of rows holding raw
// string values addressable by column name. Input row order is preserved.
type RawTable struct {
	columns map[string]int
	rows    [][]string
}

// Len returns the number of data rows.
func (t *RawTable) Len() int {
	return len(t.rows)
}

// Value returns the trimmed raw value at the given data row for the named
// column, or the empty string when the row is short or the column unknown.
func (t *RawTable) Value(row int, column string) string {
	idx, ok := t.columns[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return ""
	}
	cells := t.rows[row]
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// ParseCSV reads a CSV byte stream with a header row into a RawTable.
func ParseCSV(r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &MalformedInputError{Reason: "input is not valid delimited tabular text", Err: err}
	}

	return tableFromRows(rows)
}

// ParseWorkbook reads the first sheet of an XLSX workbook into a RawTable,
// producing the same shape as ParseCSV so the rest of the pipeline does not
// care which format was uploaded.
func ParseWorkbook(r io.Reader) (*RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &MalformedInputError{Reason: "input is not a readable workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &MalformedInputError{Reason: "workbook contains no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &MalformedInputError{Reason: fmt.Sprintf("failed to read sheet %q", sheets[0]), Err: err}
	}

	return tableFromRows(rows)
}

func tableFromRows(rows [][]string) (*RawTable, error) {
	if len(rows) == 0 {
		return nil, &MalformedInputError{Reason: "input is empty"}
	}

	header := rows[0]
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		if name == "" {
			continue
		}
		// First occurrence wins on duplicate headers.
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MalformedInputError{Reason: "required columns are absent", Missing: missing}
	}

	return &RawTable{columns: columns, rows: rows[1:]}, nil
}
