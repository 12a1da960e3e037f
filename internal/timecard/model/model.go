package model

import (
	"timecard-service/internal/timecard/attendance"
	"timecard-service/internal/timecard/match"
)

// Record kinds in the OCR output union.
const (
	KindTable         = "table"
	KindTranscription = "transcription"
)

// RawTitle is the untyped title block of a raw table record.
type RawTitle struct {
	YearMonth any `json:"yearMonth"`
	Name      any `json:"name"`
}

// RawRecord is one record exactly as the OCR collaborator returned it.
// Nothing about its shape is trusted; the sanitizer turns it into a Record
// or rejects it.
type RawRecord struct {
	Type     string   `json:"type"`
	Title    RawTitle `json:"title"`
	Headers  []any    `json:"headers"`
	Data     []any    `json:"data"`
	FileName any      `json:"fileName"`
	Content  any      `json:"content"`
}

// Title identifies a table record: free-text year-month and person name.
type Title struct {
	YearMonth string `json:"yearMonth"`
	Name      string `json:"name"`
}

// Record is a sanitized OCR record. Closed union: *TableRecord or
// *TranscriptionRecord; consumers type-switch exhaustively.
type Record interface {
	Kind() string
}

// TableRecord is a sanitized tabular document (time card, ledger page).
// Every row of Data has exactly len(Headers) cells.
type TableRecord struct {
	Title         Title      `json:"title"`
	Headers       []string   `json:"headers"`
	Data          [][]string `json:"data"`
	NameCorrected bool       `json:"nameCorrected,omitempty"`
}

func (*TableRecord) Kind() string { return KindTable }

// Key is the identity of the person-month this record belongs to:
// whitespace-stripped name + "-" + whitespace-stripped year-month.
// Stripping covers full-width spaces; OCR is inconsistent about them.
func (t *TableRecord) Key() string {
	return match.StripSpace(t.Title.Name) + "-" + match.StripSpace(t.Title.YearMonth)
}

// Clone deep-copies the record so callers can mutate the copy freely.
func (t *TableRecord) Clone() *TableRecord {
	c := &TableRecord{
		Title:         t.Title,
		Headers:       append([]string(nil), t.Headers...),
		Data:          CopyRows(t.Data),
		NameCorrected: t.NameCorrected,
	}
	return c
}

// CopyRows copies a cell matrix row by row.
func CopyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// TranscriptionRecord is free-text OCR output for one page or file.
// It has no merge key; one record per source.
type TranscriptionRecord struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
}

func (*TranscriptionRecord) Kind() string { return KindTranscription }

// Options configures one pipeline run.
type Options struct {
	Roster     []string                // known full names; empty disables correction
	SheetNames []string                // template worksheet names; empty disables resolution
	Threshold  float64                 // roster similarity threshold; 0 means the default 0.70
	Pattern    *attendance.WorkPattern // shift applied to all rows; nil with InCol/OutCol set reports "pattern not selected"
	InCol      int                     // 0-based clock-in column; -1 disables attendance
	OutCol     int                     // 0-based clock-out column; -1 disables attendance
}
