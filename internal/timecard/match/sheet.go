package match

import "strings"

// ResolveSheet finds the worksheet a full name belongs to. Names on Japanese
// templates are usually surname-first, and tabs carry either the full name,
// just the surname, or just the given name, so matching falls through three
// tiers:
//
//  1. trimmed full name
//  2. first name part (surname)
//  3. last name part (given name), only when the name has several parts
//
// Sheet names are trimmed for comparison only; the returned value is the
// original untrimmed tab name.
func ResolveSheet(fullName string, sheetNames []string) (string, bool) {
	full := strings.TrimSpace(fullName)
	parts := splitName(full)
	if len(parts) == 0 {
		return "", false
	}

	if sn, ok := exactTrimmed(full, sheetNames); ok {
		return sn, true
	}
	if sn, ok := exactTrimmed(parts[0], sheetNames); ok {
		return sn, true
	}
	if len(parts) > 1 {
		if sn, ok := exactTrimmed(parts[len(parts)-1], sheetNames); ok {
			return sn, true
		}
	}
	return "", false
}

// splitName splits on runs of ASCII or full-width spaces, dropping empties.
func splitName(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '　'
	})
}

func exactTrimmed(want string, sheetNames []string) (string, bool) {
	for _, sn := range sheetNames {
		if strings.TrimSpace(sn) == want {
			return sn, true
		}
	}
	return "", false
}
