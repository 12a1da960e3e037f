package service

import (
	"fmt"
	"strconv"

	"timecard-service/internal/timecard/model"
)

// Sanitize turns a raw OCR record into a typed one, or nil when the shape
// is beyond repair. Table rows are forced to the header width: short rows
// are right-padded with "", long rows truncated. The caller counts and
// logs nil results; a bad record never aborts the batch.
func Sanitize(raw model.RawRecord) model.Record {
	switch raw.Type {
	case model.KindTable:
		return sanitizeTable(raw)
	case model.KindTranscription:
		return &model.TranscriptionRecord{
			FileName: coerceString(raw.FileName),
			Content:  coerceString(raw.Content),
		}
	default:
		return nil
	}
}

func sanitizeTable(raw model.RawRecord) model.Record {
	if raw.Headers == nil || raw.Data == nil {
		return nil
	}

	headers := make([]string, len(raw.Headers))
	for i, h := range raw.Headers {
		headers[i] = coerceString(h)
	}

	data := make([][]string, 0, len(raw.Data))
	for _, r := range raw.Data {
		cells, ok := r.([]any)
		if !ok {
			continue // non-array row, drop
		}
		row := make([]string, len(headers))
		for i := range headers {
			if i < len(cells) {
				row[i] = coerceString(cells[i])
			}
		}
		data = append(data, row)
	}

	return &model.TableRecord{
		Title: model.Title{
			YearMonth: coerceString(raw.Title.YearMonth),
			Name:      coerceString(raw.Title.Name),
		},
		Headers: headers,
		Data:    data,
	}
}

// coerceString renders any JSON value the way the documents expect:
// nil -> "", numbers without a trailing ".0".
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
