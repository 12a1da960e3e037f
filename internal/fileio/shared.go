package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// RosterOptions locate the name column inside an uploaded roster file.
type RosterOptions struct {
	Sheet     string // worksheet name; "" = first sheet (spreadsheets only)
	Column    int    // 0-based column index
	HeaderRow int    // 1-based header row to skip; 0 = no header
}

// ReadRoster picks a parser by extension and returns the non-empty values
// of one column: the list of known full names.
func ReadRoster(r io.Reader, filename string, opt RosterOptions) ([]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		rows, err = readXLSX(r, opt.Sheet)
	case ".xls":
		rows, err = readXLS(r, opt.Sheet)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("unsupported roster file: %s", filename)
	}
	if err != nil {
		return nil, err
	}
	return columnValues(rows, opt), nil
}

// columnValues extracts the roster column, skipping the header row and
// blank cells. Uniqueness is not required; the list keeps file order.
func columnValues(rows [][]string, opt RosterOptions) []string {
	start := opt.HeaderRow // first row after the 1-based header
	if start < 0 {
		start = 0
	}
	col := opt.Column
	if col < 0 {
		col = 0
	}
	var out []string
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if col >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[col]); v != "" {
			out = append(out, v)
		}
	}
	return out
}
