package match

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"timecard-service/internal/utils"
)

// Suggest ranks roster entries that resemble an unmatched name, for the
// "did you mean" part of the unmatched summary. Both sides are width-folded
// and space-stripped before ranking so ﾀﾅｶ and 田中 variants line up.
// Subsequence hits rank first, the rest by edit distance.
func Suggest(name string, roster []string, limit int) []string {
	n := utils.FoldWidth(StripSpace(name))
	if n == "" || len(roster) == 0 || limit <= 0 {
		return nil
	}

	norm := make([]string, len(roster))
	for i, entry := range roster {
		norm[i] = utils.FoldWidth(StripSpace(entry))
	}

	out := make([]string, 0, limit)
	seen := make(map[int]bool, limit)
	take := func(i int) {
		if !seen[i] && len(out) < limit {
			seen[i] = true
			out = append(out, roster[i])
		}
	}

	ranks := fuzzy.RankFindFold(n, norm)
	sort.Sort(ranks)
	for _, rk := range ranks {
		take(rk.OriginalIndex)
	}
	if len(out) == limit {
		return out
	}

	// not enough subsequence hits; fill with the closest by edit distance
	rest := make([]int, 0, len(norm))
	for i := range norm {
		if !seen[i] && norm[i] != "" {
			rest = append(rest, i)
		}
	}
	sort.SliceStable(rest, func(a, b int) bool {
		return fuzzy.LevenshteinDistance(n, norm[rest[a]]) < fuzzy.LevenshteinDistance(n, norm[rest[b]])
	})
	for _, i := range rest {
		take(i)
	}
	return out
}
