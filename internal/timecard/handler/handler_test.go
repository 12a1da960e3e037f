package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timecard-service/internal/config"
	"timecard-service/internal/timecard/model"
)

func testConfig() config.Config {
	return config.Config{MaxUploadMB: 8, MaxPDFPages: 5, Threshold: 0.70}
}

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestMergeHandler(t *testing.T) {
	nop := zerolog.Nop()

	t.Run("runs the pipeline", func(t *testing.T) {
		rr := postJSON(t, Merge(testConfig(), nop), map[string]any{
			"records": []map[string]any{
				{
					"type":    "table",
					"title":   map[string]any{"yearMonth": "2025年1月", "name": "山田 犬郎"},
					"headers": []any{"日付", "出勤", "退勤"},
					"data":    []any{[]any{"1", "9:00", "18:00"}},
				},
			},
			"roster": []string{"山田 太郎"},
		})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

		var res model.Result
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		require.Len(t, res.Records, 1)
		assert.Equal(t, "山田 太郎", res.Records[0].Title.Name)
		assert.True(t, res.Records[0].NameCorrected)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
		rr := httptest.NewRecorder()
		Merge(testConfig(), nop)(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("total sanitization failure is 422", func(t *testing.T) {
		rr := postJSON(t, Merge(testConfig(), nop), map[string]any{
			"records": []map[string]any{{"type": "bogus"}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("attendance columns map through pointers", func(t *testing.T) {
		rr := postJSON(t, Merge(testConfig(), nop), map[string]any{
			"records": []map[string]any{
				{
					"type":    "table",
					"title":   map[string]any{"yearMonth": "1月", "name": "山田"},
					"headers": []any{"日付", "出勤", "退勤"},
					"data":    []any{[]any{"1", "9:00", "18:00"}},
				},
			},
			"inCol":  1,
			"outCol": 2,
		})
		require.Equal(t, http.StatusOK, rr.Code)
		var res model.Result
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		require.Len(t, res.Records, 1)
		require.Len(t, res.Records[0].Attendance, 1)
		// no pattern supplied
		assert.Equal(t, "pattern not selected", res.Records[0].Attendance[0].Status)
	})
}

func TestExportHandler(t *testing.T) {
	nop := zerolog.Nop()

	t.Run("returns a workbook attachment", func(t *testing.T) {
		rr := postJSON(t, Export(testConfig(), nop), map[string]any{
			"records": []map[string]any{
				{
					"title":   map[string]any{"yearMonth": "2025年1月", "name": "山田 太郎"},
					"headers": []any{"日付"},
					"data":    []any{[]any{"1"}},
				},
			},
		})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "spreadsheetml")
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "TimeCards.xlsx")
		// xlsx files are zip containers
		assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))
	})

	t.Run("empty export is 400", func(t *testing.T) {
		rr := postJSON(t, Export(testConfig(), nop), map[string]any{"records": []any{}})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestProcessHandler(t *testing.T) {
	nop := zerolog.Nop()

	t.Run("no collaborator is 503", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rr := httptest.NewRecorder()
		Process(testConfig(), nop, nil)(rr, req)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}
