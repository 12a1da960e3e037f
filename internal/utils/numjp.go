package utils

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

var (
	rxKeepNums   = regexp.MustCompile(`[^\d\.\-]`)
	rxLeadingInt = regexp.MustCompile(`^-?[0-9]+`)
)

// FoldWidth maps full-width ASCII (１２３, ：, ．) and half-width kana to their
// canonical forms. OCR output mixes widths freely.
func FoldWidth(s string) string {
	return width.Fold.String(s)
}

// ParseFloatJP parses numbers as they appear in Japanese documents:
// full-width digits, ideographic/NBSP spaces, "１．５" etc.
func ParseFloatJP(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = FoldWidth(s)
	repl := strings.NewReplacer(" ", "", " ", "", "　", "", " ", "", "\t", "", ",", "")
	s = repl.Replace(s)
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// LeadingInt parses the leading run of digits of a cell value, width-folded
// and trimmed. "3日" -> 3, "１２" -> 12, non-numeric -> 0.
func LeadingInt(s string) int {
	s = FoldWidth(strings.TrimSpace(s))
	m := rxLeadingInt.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
