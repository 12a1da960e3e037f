package ocr

import (
	"encoding/json"
	"fmt"
	"strings"

	"timecard-service/internal/timecard/model"
)

// decodeError marks an undecodable model answer. The runner skips the
// page instead of aborting the batch.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "ocr: decode answer: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// DecodeRecords parses the model's answer into raw records. The text is
// sliced to the outermost JSON array first (models wrap answers in prose
// or code fences despite instructions), with a single-object fallback.
// Elements that are not objects decode to a zero RawRecord so the
// sanitizer counts them as skipped instead of losing the whole page.
func DecodeRecords(text string) ([]model.RawRecord, error) {
	s := sliceJSON(strings.TrimSpace(text))
	if s == "" {
		return nil, &decodeError{err: fmt.Errorf("no JSON payload in answer")}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(s), &elems); err != nil {
		// single-object fallback
		var one json.RawMessage
		if err2 := json.Unmarshal([]byte(s), &one); err2 != nil {
			return nil, &decodeError{err: err}
		}
		elems = []json.RawMessage{one}
	}

	out := make([]model.RawRecord, len(elems))
	for i, e := range elems {
		// decode failures leave the zero record in place
		_ = json.Unmarshal(e, &out[i])
	}
	return out, nil
}

func sliceJSON(s string) string {
	if start, end := strings.Index(s, "["), strings.LastIndex(s, "]"); start != -1 && end > start {
		return s[start : end+1]
	}
	if start, end := strings.Index(s, "{"), strings.LastIndex(s, "}"); start != -1 && end > start {
		return s[start : end+1]
	}
	return ""
}
