package model

import (
	"sort"
	"testing"
)

func TestAllStates_SortedAndMapped(t *testing.T) {
	if len(AllStates) != 51 {
		t.Fatalf("expected 51 states, got %d", len(AllStates))
	}
	if !sort.StringsAreSorted(AllStates) {
		t.Error("AllStates is not alphabetical")
	}
	for _, s := range AllStates {
		if _, ok := RegionOf(s); !ok {
			t.Errorf("state %q has no region", s)
		}
	}
	if len(stateRegions) != len(AllStates) {
		t.Errorf("region table has %d entries, AllStates has %d", len(stateRegions), len(AllStates))
	}
}

func TestRegionOf(t *testing.T) {
	tests := []struct {
		state string
		want  Region
	}{
		{"Maine", Northeast},
		{"Ohio", Midwest},
		{"Texas", South},
		{"District of Columbia", South},
		{"California", West},
		{"Hawaii", West},
	}
	for _, tt := range tests {
		got, ok := RegionOf(tt.state)
		if !ok || got != tt.want {
			t.Errorf("RegionOf(%q) = %q, %v; want %q", tt.state, got, ok, tt.want)
		}
	}
	if _, ok := RegionOf("Atlantis"); ok {
		t.Error("unknown state should not have a region")
	}
}

func TestStatesIn_CoversAll(t *testing.T) {
	total := 0
	for _, r := range AllRegions {
		total += len(StatesIn(r))
	}
	if total != len(AllStates) {
		t.Errorf("regions cover %d states, want %d", total, len(AllStates))
	}
}

func TestStateAbbreviations(t *testing.T) {
	if len(StateAbbreviations) != len(AllStates) {
		t.Fatalf("expected %d abbreviations, got %d", len(AllStates), len(StateAbbreviations))
	}
	for code, name := range StateAbbreviations {
		if _, ok := RegionOf(name); !ok {
			t.Errorf("%s maps to unknown state %q", code, name)
		}
	}
}

func TestParseIndicator(t *testing.T) {
	tests := []struct {
		in   string
		want Indicator
	}{
		{"ObesityRate", ObesityRate},
		{"obesity_rate", ObesityRate},
		{"Adult obesity [in %]", ObesityRate},
		{"Adult.obesity..in...", ObesityRate},
		{"Smoking Rate", SmokingRate},
		{"Physically Unhealthy Days", PhysicallyUnhealthyDays},
		{"Mental.unhealthy.days", MentallyUnhealthyDays},
	}
	for _, tt := range tests {
		got, ok := ParseIndicator(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParseIndicator(%q) = %q, %v; want %q", tt.in, got, ok, tt.want)
		}
	}
	if _, ok := ParseIndicator("blood pressure"); ok {
		t.Error("expected unknown indicator")
	}
}

func TestIndicatorAxisLabel(t *testing.T) {
	if got := ObesityRate.AxisLabel(); got != "Obesity Rate (%)" {
		t.Errorf("got %q", got)
	}
	if got := MentallyUnhealthyDays.AxisLabel(); got != "Mentally Unhealthy Days" {
		t.Errorf("got %q", got)
	}
	if got := Indicator("bogus").AxisLabel(); got != "Value" {
		t.Errorf("got %q", got)
	}
}

func TestTableView_MarshalJSON(t *testing.T) {
	v := TableView{
		Columns: []Column{ColState, ColRank},
		Rows: []TableRow{
			{State: "Texas", Year: 2018, Value: 32.4, Region: South, Rank: 1},
		},
	}
	b, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"columns":["state","rank"],"rows":[["Texas",1]]}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestParseColumn(t *testing.T) {
	if c, ok := ParseColumn(" Region "); !ok || c != ColRegion {
		t.Errorf("got %q, %v", c, ok)
	}
	if _, ok := ParseColumn("color"); ok {
		t.Error("expected unknown column")
	}
	if ColRank.Title() != "Rank" {
		t.Errorf("Title: got %q", ColRank.Title())
	}
}
