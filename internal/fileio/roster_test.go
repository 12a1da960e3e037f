package fileio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
)

func rosterWorkbook(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadRoster_XLSX(t *testing.T) {
	buf := rosterWorkbook(t, "名簿", [][]any{
		{"社員番号", "氏名"},
		{"001", "山田 太郎"},
		{"002", "佐藤 花子"},
		{"003", ""},
		{"004", "鈴木 一郎"},
	})

	names, err := ReadRoster(buf, "roster.xlsx", RosterOptions{Column: 1, HeaderRow: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"山田 太郎", "佐藤 花子", "鈴木 一郎"}, names)
}

func TestReadRoster_XLSXSheetSelection(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "メモ"))
	_, err := f.NewSheet("名簿")
	require.NoError(t, err)
	row := []any{"山田 太郎"}
	require.NoError(t, f.SetSheetRow("名簿", "A1", &row))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	names, err := ReadRoster(buf, "roster.xlsx", RosterOptions{Sheet: "名簿"})
	require.NoError(t, err)
	assert.Equal(t, []string{"山田 太郎"}, names)
}

func TestReadRoster_CSV(t *testing.T) {
	t.Run("utf-8 with header", func(t *testing.T) {
		src := "氏名,所属\n山田 太郎,第一営業部\n佐藤 花子,経理部\n"
		names, err := ReadRoster(strings.NewReader(src), "roster.csv", RosterOptions{HeaderRow: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"山田 太郎", "佐藤 花子"}, names)
	})

	t.Run("ragged rows skip missing cells", func(t *testing.T) {
		src := "a,Alice\nb\nc,Carol\n"
		names, err := ReadRoster(strings.NewReader(src), "roster.csv", RosterOptions{Column: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Carol"}, names)
	})

	t.Run("padding trimmed", func(t *testing.T) {
		src := " Alice \n  \nBob\n"
		names, err := ReadRoster(strings.NewReader(src), "roster.csv", RosterOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Bob"}, names)
	})
}

func TestReadRoster_UnsupportedExtension(t *testing.T) {
	_, err := ReadRoster(strings.NewReader(""), "roster.pdf", RosterOptions{})
	assert.Error(t, err)
}

func TestSheetNames(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "山田"))
	_, err := f.NewSheet("佐藤 花子")
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	names, err := SheetNames(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"山田", "佐藤 花子"}, names)
}

func TestColumnValues(t *testing.T) {
	rows := [][]string{
		{"h1", "h2"},
		{"x", "山田"},
		{"y", "  "},
		{"z", "佐藤"},
	}
	assert.Equal(t, []string{"山田", "佐藤"},
		columnValues(rows, RosterOptions{Column: 1, HeaderRow: 1}))
	assert.Equal(t, []string{"h1", "x", "y", "z"},
		columnValues(rows, RosterOptions{Column: -1, HeaderRow: -1}))
}
