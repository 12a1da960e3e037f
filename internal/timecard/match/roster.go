package match

// DefaultThreshold is the similarity a roster candidate must strictly exceed.
const DefaultThreshold = 0.70

// BestMatch finds the roster entry closest to an OCR-extracted name.
// Both sides are compared whitespace-stripped; the returned entry is the
// roster original. A candidate qualifies when its similarity is strictly
// above DefaultThreshold; among qualifiers the one with the smallest raw
// edit distance wins, first listed on ties.
func BestMatch(name string, roster []string) (string, bool) {
	return BestMatchThreshold(name, roster, DefaultThreshold)
}

// BestMatchThreshold is BestMatch with an explicit similarity threshold.
//
// The tie-break is the smallest raw distance, not the highest similarity.
// The two diverge when candidate lengths differ; changing the rule changes
// match outcomes, so it stays.
func BestMatchThreshold(name string, roster []string, threshold float64) (string, bool) {
	n := StripSpace(name)
	if n == "" || len(roster) == 0 {
		return "", false
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	nLen := len([]rune(n))
	best := ""
	bestDist := -1
	for _, entry := range roster {
		e := StripSpace(entry)
		if e == "" {
			continue
		}
		d := Distance(n, e)
		m := nLen
		if el := len([]rune(e)); el > m {
			m = el
		}
		if 1-float64(d)/float64(m) <= threshold {
			continue
		}
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = entry
		}
	}
	if bestDist < 0 {
		return "", false
	}
	return best, true
}
