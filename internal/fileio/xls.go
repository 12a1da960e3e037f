// Legacy .xls rosters: fix the table width ourselves and read every cell
// up to it, the library's per-row LastCol is unreliable on old files.
package fileio

import (
	"bytes"
	"errors"
	"io"
	"strings"

	xls "github.com/extrame/xls"
)

// probeMax bounds the column probe; rosters are narrow.
const probeMax = 64

func readXLS(r io.Reader, sheetName string) ([][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// .xls exported from Japanese payroll tools is usually cp932, but
	// UTF-8 shows up too
	var wb *xls.WorkBook
	var lastErr error
	for _, ch := range []string{"cp932", "shift_jis", "utf-8"} {
		wb, err = xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			lastErr = nil
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return nil, lastErr
	}

	sheet := pickXLSSheet(wb, sheetName)
	if sheet == nil {
		return nil, nil
	}

	maxCols := computeMaxCols(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		cols := make([]string, maxCols)
		if row != nil {
			for j := 0; j < maxCols; j++ {
				cols[j] = strings.TrimSpace(row.Col(j))
			}
		}
		rows = append(rows, cols)
	}
	return rows, nil
}

func pickXLSSheet(wb *xls.WorkBook, name string) *xls.WorkSheet {
	if name == "" {
		return wb.GetSheet(0)
	}
	for i := 0; i < wb.NumSheets(); i++ {
		if s := wb.GetSheet(i); s != nil && s.Name == name {
			return s
		}
	}
	return nil
}

// computeMaxCols finds the real table width by probing every row for its
// last non-empty cell.
func computeMaxCols(sheet *xls.WorkSheet) int {
	maxCols := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		for j := 0; j < probeMax; j++ {
			if strings.TrimSpace(r.Col(j)) != "" && j+1 > maxCols {
				maxCols = j + 1
			}
		}
	}
	if maxCols == 0 {
		maxCols = 1
	}
	return maxCols
}
