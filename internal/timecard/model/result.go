package model

import "timecard-service/internal/timecard/attendance"

// ResultRecord is one merged person-month with its collaborator handoffs:
// a resolved template sheet (nil = unmatched, do not write) and optional
// per-row attendance.
type ResultRecord struct {
	TableRecord
	Sheet      *string          `json:"sheet,omitempty"`
	Attendance []attendance.Row `json:"attendance,omitempty"`
}

// Label is the human-readable identity used in summaries and sheet names.
func (r *ResultRecord) Label() string {
	return r.Title.YearMonth + " " + r.Title.Name
}

// UnmatchedName is a roster miss, reported once per distinct name with
// ranked look-alike suggestions.
type UnmatchedName struct {
	Name        string   `json:"name"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Result is the outcome of one pipeline run. Partial success is the rule:
// skipped counts malformed raw records, the unmatched slices are summaries,
// and only an all-skipped batch is fatal.
type Result struct {
	Records         []ResultRecord        `json:"records"`
	Transcriptions  []TranscriptionRecord `json:"transcriptions,omitempty"`
	Skipped         int                   `json:"skipped"`
	Unmatched       []UnmatchedName       `json:"unmatched,omitempty"`
	UnmatchedSheets []string              `json:"unmatchedSheets,omitempty"`
}
