package pipeline

import (
	"sort"

	"github.com/gyeh/statehealth/internal/model"
	"github.com/gyeh/statehealth/internal/normalize"
)

// Selection is the user-chosen tuple that parameterizes the queries.
// A nil Year means all years.
type Selection struct {
	States    []string
	Year      *int
	Indicator model.Indicator
}

// stateSet canonicalizes requested names and drops the unrecognized ones.
func stateSet(states []string) map[string]bool {
	set := make(map[string]bool, len(states))
	for _, s := range states {
		if name, ok := normalize.CanonicalState(s); ok {
			set[name] = true
		}
	}
	return set
}

// FilterBySelection returns the records matching every constraint, in
// canonical order. Unrecognized states are ignored. No match yields an
// empty, non-nil slice.
func (t *Table) FilterBySelection(states []string, year *int, ind model.Indicator) []model.HealthRecord {
	want := stateSet(states)
	out := make([]model.HealthRecord, 0)
	if len(want) == 0 {
		return out
	}
	for _, r := range t.records {
		if r.Indicator != ind || !want[r.State] {
			continue
		}
		if year != nil && r.Year != *year {
			continue
		}
		out = append(out, r)
	}
	return out
}

// BarChartView returns one bar per requested state that has a value for the
// given year and indicator, sorted by value descending and then by state.
// States without a record are omitted, not zero-filled.
func (t *Table) BarChartView(states []string, year int, ind model.Indicator) []model.BarPoint {
	out := make([]model.BarPoint, 0)
	for state := range stateSet(states) {
		if r, ok := t.Lookup(state, year, ind); ok {
			out = append(out, model.BarPoint{State: r.State, Value: r.Value})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].State < out[j].State
	})
	return out
}

// TrendView returns, per requested state, its values across every year
// present, ascending by year. Series come back in canonical state order and
// states with no data are omitted. Each call recomputes from the table.
func (t *Table) TrendView(states []string, ind model.Indicator) []model.TrendSeries {
	want := stateSet(states)
	out := make([]model.TrendSeries, 0)
	for _, state := range model.AllStates {
		if !want[state] {
			continue
		}
		var points []model.TrendPoint
		for _, y := range t.years {
			if r, ok := t.Lookup(state, y, ind); ok {
				points = append(points, model.TrendPoint{Year: y, Value: r.Value})
			}
		}
		if len(points) > 0 {
			out = append(out, model.TrendSeries{State: state, Points: points})
		}
	}
	return out
}

// TableView returns the filtered rows projected onto cols, sorted by value
// (descending when descending is true, ascending otherwise) with state and
// year as tie-breakers. Values are rounded to two decimals. Rank is the
// record's rank in its full (year, indicator) partition, so narrowing the
// selection never changes it. An empty cols selects model.DefaultColumns.
func (t *Table) TableView(states []string, year *int, ind model.Indicator, cols []model.Column, descending bool) model.TableView {
	view := model.TableView{Columns: projection(cols), Rows: make([]model.TableRow, 0)}
	for _, r := range t.FilterBySelection(states, year, ind) {
		view.Rows = append(view.Rows, model.TableRow{
			State:  r.State,
			Year:   r.Year,
			Value:  normalize.Round2(r.Value),
			Region: r.Region,
			Rank:   r.Rank,
		})
	}
	sort.SliceStable(view.Rows, func(i, j int) bool {
		a, b := view.Rows[i], view.Rows[j]
		if a.Value != b.Value {
			if descending {
				return a.Value > b.Value
			}
			return a.Value < b.Value
		}
		if a.State != b.State {
			return a.State < b.State
		}
		return a.Year < b.Year
	})
	return view
}

// projection keeps known columns once each, in the caller's order.
func projection(cols []model.Column) []model.Column {
	out := make([]model.Column, 0, len(cols))
	seen := make(map[model.Column]bool)
	for _, c := range cols {
		if known, ok := model.ParseColumn(string(c)); ok && !seen[known] {
			seen[known] = true
			out = append(out, known)
		}
	}
	if len(out) == 0 {
		return append(out, model.DefaultColumns...)
	}
	return out
}
