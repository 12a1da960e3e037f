// Package service runs the reconciliation pipeline over sanitized OCR
// records: sanitize -> roster name correction -> per-person-month merge ->
// template sheet resolution -> attendance. The whole pass is a pure fold
// over in-memory data; everything degrades per item except the one
// documented fatal case.
package service

import (
	"errors"

	"timecard-service/internal/timecard/attendance"
	"timecard-service/internal/timecard/match"
	"timecard-service/internal/timecard/model"
)

// ErrNoValidRecords is the only fatal pipeline error: the OCR returned
// records but not a single one survived sanitization.
var ErrNoValidRecords = errors.New("no record in the batch survived sanitization")

const maxSuggestions = 3

// Run executes the pipeline over one batch of raw OCR records.
func Run(raw []model.RawRecord, opt model.Options) (model.Result, error) {
	var res model.Result
	var tables []*model.TableRecord

	for _, rr := range raw {
		switch rec := Sanitize(rr).(type) {
		case *model.TableRecord:
			tables = append(tables, rec)
		case *model.TranscriptionRecord:
			res.Transcriptions = append(res.Transcriptions, *rec)
		default:
			res.Skipped++
		}
	}
	if len(raw) > 0 && res.Skipped == len(raw) {
		return res, ErrNoValidRecords
	}

	if len(opt.Roster) > 0 {
		res.Unmatched = correctNames(tables, opt)
	}

	for _, t := range Merge(tables) {
		rec := model.ResultRecord{TableRecord: *t}
		if len(opt.SheetNames) > 0 {
			if sn, ok := match.ResolveSheet(t.Title.Name, opt.SheetNames); ok {
				rec.Sheet = &sn
			} else {
				res.UnmatchedSheets = append(res.UnmatchedSheets, rec.Label())
			}
		}
		if opt.InCol >= 0 && opt.OutCol >= 0 {
			rec.Attendance = attendanceRows(t, opt)
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// correctNames overwrites OCR-misread names with their roster entry and
// flags the substitution. Misses are collected once per distinct name into
// a single summary instead of one error per record.
func correctNames(tables []*model.TableRecord, opt model.Options) []model.UnmatchedName {
	var unmatched []model.UnmatchedName
	seen := make(map[string]bool)

	for _, t := range tables {
		name := t.Title.Name
		if match.StripSpace(name) == "" {
			continue
		}
		m, ok := match.BestMatchThreshold(name, opt.Roster, opt.Threshold)
		if !ok {
			key := match.StripSpace(name)
			if !seen[key] {
				seen[key] = true
				unmatched = append(unmatched, model.UnmatchedName{
					Name:        name,
					Suggestions: match.Suggest(name, opt.Roster, maxSuggestions),
				})
			}
			continue
		}
		if m != name {
			t.Title.Name = m
			t.NameCorrected = true
		}
	}
	return unmatched
}

func attendanceRows(t *model.TableRecord, opt model.Options) []attendance.Row {
	rows := make([]attendance.Row, len(t.Data))
	for i, row := range t.Data {
		rows[i] = attendance.CalculateRow(cellAt(row, opt.InCol), cellAt(row, opt.OutCol), opt.Pattern)
	}
	return rows
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
