package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timecard-service/internal/timecard/attendance"
	"timecard-service/internal/timecard/model"
)

func rawFor(name, ym string, rows ...[]any) model.RawRecord {
	data := make([]any, len(rows))
	for i, r := range rows {
		data[i] = r
	}
	return model.RawRecord{
		Type:    model.KindTable,
		Title:   model.RawTitle{YearMonth: ym, Name: name},
		Headers: []any{"日付", "出勤", "退勤"},
		Data:    data,
	}
}

func TestRun(t *testing.T) {
	t.Run("full pipeline", func(t *testing.T) {
		raw := []model.RawRecord{
			rawFor("山田 犬郎", "2025年1月", []any{"2", "9:00", "18:00"}),
			rawFor("山田 太郎", "2025年1月", []any{"1", "9:10", "18:00"}),
			{Type: model.KindTranscription, FileName: "memo.png", Content: "note"},
			{Type: "bogus"},
		}
		pattern := attendance.WorkPattern{Name: "日勤", StartTime: "9:00", EndTime: "18:00", BreakTimeHours: 1}
		res, err := Run(raw, model.Options{
			Roster:     []string{"山田 太郎", "佐藤 花子"},
			SheetNames: []string{"山田 太郎", "佐藤"},
			Pattern:    &pattern,
			InCol:      1,
			OutCol:     2,
		})
		require.NoError(t, err)

		// misread corrected onto the same key, so both records merged
		require.Len(t, res.Records, 1)
		rec := res.Records[0]
		assert.Equal(t, "山田 太郎", rec.Title.Name)
		assert.True(t, rec.NameCorrected)
		assert.Empty(t, res.Unmatched)

		// merged rows sorted by day
		require.Len(t, rec.Data, 2)
		assert.Equal(t, "1", rec.Data[0][0])
		assert.Equal(t, "2", rec.Data[1][0])

		require.NotNil(t, rec.Sheet)
		assert.Equal(t, "山田 太郎", *rec.Sheet)
		assert.Empty(t, res.UnmatchedSheets)

		require.Len(t, rec.Attendance, 2)
		require.NotNil(t, rec.Attendance[0].Metrics)
		assert.True(t, rec.Attendance[0].IsLate)
		assert.False(t, rec.Attendance[1].IsLate)

		require.Len(t, res.Transcriptions, 1)
		assert.Equal(t, "memo.png", res.Transcriptions[0].FileName)
		assert.Equal(t, 1, res.Skipped)
	})

	t.Run("unmatched names reported once with suggestions", func(t *testing.T) {
		raw := []model.RawRecord{
			rawFor("田中 義男", "1月", []any{"1", "", ""}),
			rawFor("田中 義男", "2月", []any{"1", "", ""}),
		}
		res, err := Run(raw, model.Options{Roster: []string{"山田 太郎", "佐藤 花子"}})
		require.NoError(t, err)
		require.Len(t, res.Unmatched, 1)
		assert.Equal(t, "田中 義男", res.Unmatched[0].Name)
		assert.NotEmpty(t, res.Unmatched[0].Suggestions)
		// uncorrected records keep their own names
		require.Len(t, res.Records, 2)
		assert.False(t, res.Records[0].NameCorrected)
	})

	t.Run("blank names skip correction silently", func(t *testing.T) {
		res, err := Run([]model.RawRecord{rawFor("　", "1月", []any{"1", "", ""})},
			model.Options{Roster: []string{"山田 太郎"}})
		require.NoError(t, err)
		assert.Empty(t, res.Unmatched)
		require.Len(t, res.Records, 1)
	})

	t.Run("all records failing sanitization is fatal", func(t *testing.T) {
		raw := []model.RawRecord{{Type: "bogus"}, {Type: model.KindTable}}
		_, err := Run(raw, model.Options{})
		assert.ErrorIs(t, err, ErrNoValidRecords)
	})

	t.Run("empty batch is not fatal", func(t *testing.T) {
		res, err := Run(nil, model.Options{})
		require.NoError(t, err)
		assert.Empty(t, res.Records)
	})

	t.Run("sheet miss collected per record", func(t *testing.T) {
		res, err := Run([]model.RawRecord{rawFor("山田 太郎", "2025年1月", []any{"1", "", ""})},
			model.Options{SheetNames: []string{"佐藤"}})
		require.NoError(t, err)
		require.Len(t, res.Records, 1)
		assert.Nil(t, res.Records[0].Sheet)
		require.Len(t, res.UnmatchedSheets, 1)
		assert.Equal(t, "2025年1月 山田 太郎", res.UnmatchedSheets[0])
	})

	t.Run("attendance disabled without both columns", func(t *testing.T) {
		res, err := Run([]model.RawRecord{rawFor("山田", "1月", []any{"1", "9:00", "18:00"})},
			model.Options{InCol: 1, OutCol: -1})
		require.NoError(t, err)
		assert.Nil(t, res.Records[0].Attendance)
	})

	t.Run("nil pattern reports per row", func(t *testing.T) {
		res, err := Run([]model.RawRecord{rawFor("山田", "1月", []any{"1", "9:00", "18:00"})},
			model.Options{InCol: 1, OutCol: 2})
		require.NoError(t, err)
		require.Len(t, res.Records[0].Attendance, 1)
		assert.Equal(t, "pattern not selected", res.Records[0].Attendance[0].Status)
	})
}
