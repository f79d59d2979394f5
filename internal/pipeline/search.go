package pipeline

import (
	"strconv"
	"strings"

	"github.com/gyeh/statehealth/internal/model"
	"github.com/gyeh/statehealth/internal/normalize"
)

// DefaultState is selected when the select-all toggle clears the selection.
const DefaultState = "Alabama"

// SearchStates returns the states whose name contains query, ignoring case,
// in the order of allStates. Whitespace in query is matched literally. Only
// an empty query returns every state; no match returns an empty slice.
func SearchStates(allStates []string, query string) []string {
	q := normalize.FoldCase(query)
	out := make([]string, 0, len(allStates))
	for _, s := range allStates {
		if query == "" || strings.Contains(normalize.FoldCase(s), q) {
			out = append(out, s)
		}
	}
	return out
}

// SearchStatesOrAll behaves like SearchStates but falls back to every state
// when nothing matches, which keeps a selector list from going blank.
func SearchStatesOrAll(allStates []string, query string) []string {
	if out := SearchStates(allStates, query); len(out) > 0 {
		return out
	}
	return append([]string(nil), allStates...)
}

// ToggleAll implements the select-all button: when current already covers
// every state the selection resets to DefaultState, otherwise every state
// is selected.
func ToggleAll(current, allStates []string) []string {
	have := stateSet(current)
	for _, s := range allStates {
		if !have[s] {
			return append([]string(nil), allStates...)
		}
	}
	return []string{DefaultState}
}

// Summarize builds the status-card values for a selection.
func Summarize(sel Selection) model.SelectionSummary {
	sum := model.SelectionSummary{
		StateCount:     len(stateSet(sel.States)),
		Year:           "Not selected",
		IndicatorLabel: "Not selected",
	}
	if sel.Year != nil {
		sum.Year = strconv.Itoa(*sel.Year)
	}
	if sel.Indicator != "" {
		if sel.Indicator.Valid() {
			sum.IndicatorLabel = sel.Indicator.Label()
		} else {
			sum.IndicatorLabel = "Unknown Indicator"
		}
	}
	return sum
}
