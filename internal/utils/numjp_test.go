package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldWidth(t *testing.T) {
	assert.Equal(t, "123", FoldWidth("１２３"))
	assert.Equal(t, "9:00", FoldWidth("９：００"))
	assert.Equal(t, "abc", FoldWidth("ａｂｃ"))
	assert.Equal(t, "", FoldWidth(""))
}

func TestParseFloatJP(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.5", 1.5, true},
		{"１．５", 1.5, true},
		{"1,234.5", 1234.5, true},
		{" -3 ", -3, true},
		{"　１２　", 12, true},
		{"0.70", 0.7, true},
		{"", 0, false},
		{"  ", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseFloatJP(tc.in)
		assert.Equal(t, tc.ok, ok, "ParseFloatJP(%q) ok", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "ParseFloatJP(%q)", tc.in)
		}
	}
}

func TestLeadingInt(t *testing.T) {
	assert.Equal(t, 3, LeadingInt("3日"))
	assert.Equal(t, 12, LeadingInt("１２"))
	assert.Equal(t, 10, LeadingInt(" 10 (火) "))
	assert.Equal(t, -5, LeadingInt("-5"))
	assert.Equal(t, 0, LeadingInt("休"))
	assert.Equal(t, 0, LeadingInt(""))
	assert.Equal(t, 0, LeadingInt("火10"))
}
