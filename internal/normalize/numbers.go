package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ParseValue cleans a numeric cell and parses it as a non-negative float.
// A decimal comma is accepted ("25,1" is 25.1) and stray characters such as
// "%" are stripped. Empty cells, negative numbers and anything that does not
// leave a single well-formed number return ok=false.
func ParseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, "-") {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = nonNumeric.ReplaceAllString(s, "")
	if s == "" || s == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Round2 rounds v to two decimal places for display.
// Uses math.Round to avoid truncation bias.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatValue renders a value the way ParseValue reads it back.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
