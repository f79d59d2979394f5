package model

import (
	"encoding/json"
	"strings"
)

// BarPoint is one bar of the bar chart view.
type BarPoint struct {
	State string  `json:"state"`
	Value float64 `json:"value"`
}

// TrendPoint is one (year, value) pair of a trend series.
type TrendPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// TrendSeries holds the yearly values of one state, ascending by year.
type TrendSeries struct {
	State  string       `json:"state"`
	Points []TrendPoint `json:"points"`
}

// Column names a projectable table column.
type Column string

const (
	ColState  Column = "state"
	ColYear   Column = "year"
	ColValue  Column = "value"
	ColRegion Column = "region"
	ColRank   Column = "rank"
)

// AllColumns lists every projectable column in display order.
var AllColumns = []Column{ColState, ColYear, ColValue, ColRegion, ColRank}

// DefaultColumns is the projection used when the caller picks none.
var DefaultColumns = []Column{ColState, ColYear, ColValue}

// ParseColumn resolves a column name case-insensitively.
func ParseColumn(s string) (Column, bool) {
	c := Column(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllColumns {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Title returns the display header for c, e.g. "Region".
func (c Column) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// TableRow is one row of the data table view.
type TableRow struct {
	State  string
	Year   int
	Value  float64
	Region Region
	Rank   int
}

// Project returns the cells of r for cols, in order.
func (r TableRow) Project(cols []Column) []any {
	out := make([]any, 0, len(cols))
	for _, c := range cols {
		switch c {
		case ColState:
			out = append(out, r.State)
		case ColYear:
			out = append(out, r.Year)
		case ColValue:
			out = append(out, r.Value)
		case ColRegion:
			out = append(out, string(r.Region))
		case ColRank:
			out = append(out, r.Rank)
		}
	}
	return out
}

// TableView is the column-projected data table.
type TableView struct {
	Columns []Column
	Rows    []TableRow
}

// Cells returns every row projected onto Columns.
func (v TableView) Cells() [][]any {
	out := make([][]any, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Project(v.Columns)
	}
	return out
}

// MarshalJSON encodes only the projected columns.
func (v TableView) MarshalJSON() ([]byte, error) {
	cols := v.Columns
	if cols == nil {
		cols = []Column{}
	}
	return json.Marshal(struct {
		Columns []Column `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}{Columns: cols, Rows: v.Cells()})
}

// SelectionSummary feeds the status cards: selected state count, year and
// indicator label.
type SelectionSummary struct {
	StateCount     int    `json:"state_count"`
	Year           string `json:"year"`
	IndicatorLabel string `json:"indicator"`
}
