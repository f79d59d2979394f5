package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/gyeh/statehealth/internal/model"
)

var multiSpace = regexp.MustCompile(`\s+`)

// Fold case-folds s and collapses whitespace, for case-insensitive matching.
// A fresh Caser is used per call since cases.Caser is not safe for concurrent use.
func Fold(s string) string {
	s = multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
	return cases.Fold().String(s)
}

// FoldCase case-folds s and leaves whitespace untouched, for substring search
// where spaces in the query are significant.
func FoldCase(s string) string {
	return cases.Fold().String(s)
}

var foldedStates = func() map[string]string {
	m := make(map[string]string, len(model.AllStates)*2)
	for _, s := range model.AllStates {
		m[Fold(s)] = s
	}
	for code, s := range model.StateAbbreviations {
		m[Fold(code)] = s
	}
	return m
}()

// CanonicalState resolves a state name or USPS code to its canonical name.
// Matching ignores case and surrounding or repeated whitespace.
// Returns ok=false for anything not in model.AllStates.
func CanonicalState(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	name, ok := foldedStates[Fold(s)]
	return name, ok
}
