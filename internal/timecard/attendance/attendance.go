// Package attendance derives worked-hour metrics from punch times and a
// named shift pattern. Everything here is per-row and non-fatal: a bad row
// gets a status string, never aborts the batch.
package attendance

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"timecard-service/internal/utils"
)

// Per-row error conditions, surfaced as status strings in the output.
var (
	ErrPunchMissing  = errors.New("punch missing")
	ErrBadTimeFormat = errors.New("bad time format")
	ErrTimeReversal  = errors.New("time reversal")
	ErrNoPattern     = errors.New("pattern not selected")
)

// Late-night premium window: 22:00 to 05:00 next day, expressed as
// decimal hours on a single axis (24 + 5 = 29).
const (
	lateNightStart = 22.0
	lateNightEnd   = 29.0
)

// excessiveHours flags suspiciously long rows; the value is still reported.
const excessiveHours = 12.0

// WorkPattern is a named shift template: start/end punch times and the
// unpaid break, in hours.
type WorkPattern struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	BreakTimeHours float64 `json:"breakTimeHours"`
}

// NewWorkPattern mints a pattern with a fresh id.
func NewWorkPattern(name, start, end string, breakHours float64) WorkPattern {
	return WorkPattern{
		ID:             uuid.NewString(),
		Name:           name,
		StartTime:      start,
		EndTime:        end,
		BreakTimeHours: breakHours,
	}
}

// Metrics are the derived values for one row.
type Metrics struct {
	ActualHours    float64 `json:"actualHours"`
	OvertimeHours  float64 `json:"overtimeHours"`
	LateNightHours float64 `json:"lateNightHours"`
	IsLate         bool    `json:"isLate"`
	IsEarlyLeave   bool    `json:"isEarlyLeave"`
	Alert          string  `json:"alert,omitempty"`
}

// Row is the per-row outcome: either Metrics or a status string naming the
// non-fatal error.
type Row struct {
	*Metrics
	Status string `json:"status,omitempty"`
}

// ParseTime parses a punch value ("900", "9:00", "1830", full-width
// variants) into hours as a decimal. ok is false for anything malformed or
// out of range (hours 0-23, minutes 0-59).
func ParseTime(s string) (float64, bool) {
	s = strings.TrimSpace(utils.FoldWidth(s))
	s = strings.ReplaceAll(s, ":", "")
	if len(s) < 3 || len(s) > 4 {
		return 0, false
	}
	h, err := strconv.Atoi(s[:len(s)-2])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(s[len(s)-2:])
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return float64(h) + float64(m)/60, true
}

// Calculate derives metrics for one row from its in/out punches.
func Calculate(in, out string, p WorkPattern) (Metrics, error) {
	if strings.TrimSpace(in) == "" || strings.TrimSpace(out) == "" {
		return Metrics{}, ErrPunchMissing
	}
	tIn, ok := ParseTime(in)
	if !ok {
		return Metrics{}, ErrBadTimeFormat
	}
	tOut, ok := ParseTime(out)
	if !ok {
		return Metrics{}, ErrBadTimeFormat
	}
	if tOut <= tIn {
		return Metrics{}, ErrTimeReversal
	}
	start, ok := ParseTime(p.StartTime)
	if !ok {
		return Metrics{}, ErrBadTimeFormat
	}
	end, ok := ParseTime(p.EndTime)
	if !ok {
		return Metrics{}, ErrBadTimeFormat
	}

	actual := tOut - tIn - p.BreakTimeHours
	scheduled := end - start - p.BreakTimeHours

	m := Metrics{
		ActualHours:    round2(actual),
		OvertimeHours:  round2(math.Max(0, actual-scheduled)),
		LateNightHours: round2(math.Max(0, math.Min(tOut, lateNightEnd)-math.Max(tIn, lateNightStart))),
		IsLate:         tIn > start,
		IsEarlyLeave:   tOut < end,
	}
	if actual > excessiveHours {
		m.Alert = "excessive hours"
	}
	return m, nil
}

// CalculateRow wraps Calculate into the per-row outcome shape. A nil
// pattern means none was selected for the run.
func CalculateRow(in, out string, p *WorkPattern) Row {
	if p == nil {
		return Row{Status: ErrNoPattern.Error()}
	}
	m, err := Calculate(in, out, *p)
	if err != nil {
		return Row{Status: err.Error()}
	}
	return Row{Metrics: &m}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
