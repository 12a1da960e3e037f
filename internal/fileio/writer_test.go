package fileio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timecard-service/internal/timecard/attendance"
	"timecard-service/internal/timecard/model"
)

func resultRecord(name, ym string) model.ResultRecord {
	return model.ResultRecord{
		TableRecord: model.TableRecord{
			Title:   model.Title{YearMonth: ym, Name: name},
			Headers: []string{"日付", "出勤", "退勤"},
			Data: [][]string{
				{"1", "9:00", "18:00"},
				{"2", "", ""},
			},
		},
	}
}

func TestWriteWorkbook(t *testing.T) {
	t.Run("one sheet per record", func(t *testing.T) {
		f, err := WriteWorkbook([]model.ResultRecord{
			resultRecord("山田 太郎", "2025年1月"),
			resultRecord("佐藤 花子", "2025年1月"),
		})
		require.NoError(t, err)
		defer f.Close()

		names := f.GetSheetList()
		require.Len(t, names, 2)
		assert.Equal(t, "2025年1月 山田 太郎", names[0])
		assert.Equal(t, "2025年1月 佐藤 花子", names[1])

		got, err := f.GetCellValue(names[0], "A1")
		require.NoError(t, err)
		assert.Equal(t, "年月", got)
		got, err = f.GetCellValue(names[0], "B2")
		require.NoError(t, err)
		assert.Equal(t, "山田 太郎", got)
		got, err = f.GetCellValue(names[0], "A4")
		require.NoError(t, err)
		assert.Equal(t, "日付", got)
		got, err = f.GetCellValue(names[0], "B5")
		require.NoError(t, err)
		assert.Equal(t, "9:00", got)
	})

	t.Run("attendance columns follow the data", func(t *testing.T) {
		rec := resultRecord("山田", "1月")
		rec.Attendance = []attendance.Row{
			{Metrics: &attendance.Metrics{ActualHours: 8, IsLate: true}},
			{Status: "punch missing"},
		}
		f, err := WriteWorkbook([]model.ResultRecord{rec})
		require.NoError(t, err)
		defer f.Close()

		sheet := f.GetSheetList()[0]
		got, err := f.GetCellValue(sheet, "D4")
		require.NoError(t, err)
		assert.Equal(t, "実働時間", got)
		got, err = f.GetCellValue(sheet, "D5")
		require.NoError(t, err)
		assert.Equal(t, "8", got)
		got, err = f.GetCellValue(sheet, "G5")
		require.NoError(t, err)
		assert.Equal(t, "〇", got)
		got, err = f.GetCellValue(sheet, "I6")
		require.NoError(t, err)
		assert.Equal(t, "punch missing", got)
	})

	t.Run("duplicate sheet names get a suffix", func(t *testing.T) {
		f, err := WriteWorkbook([]model.ResultRecord{
			resultRecord("山田", "1月"),
			resultRecord("山田", "1月"),
		})
		require.NoError(t, err)
		defer f.Close()

		names := f.GetSheetList()
		require.Len(t, names, 2)
		assert.Equal(t, "1月 山田", names[0])
		assert.Equal(t, "1月 山田 (2)", names[1])
	})

	t.Run("empty input still yields a workbook", func(t *testing.T) {
		f, err := WriteWorkbook(nil)
		require.NoError(t, err)
		defer f.Close()
		assert.Len(t, f.GetSheetList(), 1)
	})
}

func TestSafeSheetName(t *testing.T) {
	assert.Equal(t, "2025年1月 山田 太郎", SafeSheetName("2025年1月", "山田 太郎"))
	assert.Equal(t, "1月 AB", SafeSheetName("1月", "A/B*?"))
	assert.Equal(t, "TimeCard", SafeSheetName("", ""))
	assert.Equal(t, "TimeCard", SafeSheetName("[:]", "/\\"))

	long := SafeSheetName("2025年1月", "あいうえおかきくけこさしすせそたちつてとなにぬねの")
	assert.LessOrEqual(t, len([]rune(long)), 31)
}
