package service

import (
	"sort"
	"strings"

	"timecard-service/internal/timecard/model"
	"timecard-service/internal/utils"
)

// Merge consolidates table records of the same person-month. The first
// record seen for a key becomes the base (deep-copied, inputs stay
// untouched); later records append their rows, and a key that collected
// appends gets its rows stably re-sorted by the day number in the first
// cell. Output keeps first-seen key order. Rows are not de-duplicated by
// content, only grouped by key.
func Merge(records []*model.TableRecord) []*model.TableRecord {
	byKey := make(map[string]*model.TableRecord, len(records))
	order := make([]string, 0, len(records))

	for _, rec := range records {
		k := rec.Key()
		base, ok := byKey[k]
		if !ok {
			byKey[k] = rec.Clone()
			order = append(order, k)
			continue
		}
		base.Data = append(base.Data, model.CopyRows(rec.Data)...)
		sortByDay(base.Data)
	}

	out := make([]*model.TableRecord, len(order))
	for i, k := range order {
		out[i] = byKey[k]
	}
	return out
}

// sortByDay sorts rows ascending by the integer in the first cell (the
// date column on time cards). Unparsable cells count as day 0 and keep
// their relative order.
func sortByDay(rows [][]string) {
	sort.SliceStable(rows, func(i, j int) bool {
		return dayOf(rows[i]) < dayOf(rows[j])
	})
}

func dayOf(row []string) int {
	if len(row) == 0 {
		return 0
	}
	return utils.LeadingInt(strings.TrimSpace(row[0]))
}
