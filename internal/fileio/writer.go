package fileio

import (
	"fmt"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"timecard-service/internal/timecard/attendance"
	"timecard-service/internal/timecard/model"
)

// Column labels appended when attendance metrics were computed.
var attendanceHeaders = []string{"実働時間", "残業時間", "深夜時間", "遅刻", "早退", "状態"}

// WriteWorkbook builds the output workbook: one sheet per merged record,
// banner rows (年月 / 氏名), a blank spacer, then headers and data. Rows
// with attendance metrics get the extra columns behind the OCR ones.
func WriteWorkbook(records []model.ResultRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	used := make(map[string]bool, len(records))

	for i, rec := range records {
		name := uniqueSheetName(SafeSheetName(rec.Title.YearMonth, rec.Title.Name), used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		if err := writeSheet(f, name, rec); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, rec model.ResultRecord) error {
	withAtt := len(rec.Attendance) > 0

	rows := [][]any{
		{"年月", rec.Title.YearMonth},
		{"氏名", rec.Title.Name},
		{},
	}

	header := make([]any, 0, len(rec.Headers)+len(attendanceHeaders))
	for _, h := range rec.Headers {
		header = append(header, h)
	}
	if withAtt {
		for _, h := range attendanceHeaders {
			header = append(header, h)
		}
	}
	rows = append(rows, header)

	for i, dataRow := range rec.Data {
		row := make([]any, 0, len(header))
		for _, c := range dataRow {
			row = append(row, c)
		}
		if withAtt && i < len(rec.Attendance) {
			row = append(row, attendanceCells(rec.Attendance[i])...)
		}
		rows = append(rows, row)
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// attendanceCells renders one metrics row: hours as numbers, flags as 〇,
// the status column carrying either the alert or the row error.
func attendanceCells(r attendance.Row) []any {
	if r.Metrics == nil {
		return []any{"", "", "", "", "", r.Status}
	}
	return []any{
		r.ActualHours,
		r.OvertimeHours,
		r.LateNightHours,
		mark(r.IsLate),
		mark(r.IsEarlyLeave),
		r.Alert,
	}
}

func mark(b bool) string {
	if b {
		return "〇"
	}
	return ""
}

// SafeSheetName builds "{yearMonth} {name}" with Excel-invalid characters
// removed and the 31-character tab limit applied.
func SafeSheetName(yearMonth, name string) string {
	s := strings.TrimSpace(yearMonth + " " + name)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', '*', '?', ':', '"', '<', '>', '|', '[', ']':
			return -1
		}
		return r
	}, s)
	if s == "" {
		s = "TimeCard"
	}
	if rs := []rune(s); len(rs) > 31 {
		s = string(rs[:31])
	}
	return s
}

func uniqueSheetName(base string, used map[string]bool) string {
	name := base
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		rs := []rune(base)
		if len(rs)+len(suffix) > 31 {
			rs = rs[:31-len(suffix)]
		}
		name = string(rs) + suffix
	}
	used[name] = true
	return name
}
