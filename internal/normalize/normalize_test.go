package normalize

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gyeh/statehealth/internal/model"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"25.1", 25.1, true},
		{"25,1", 25.1, true},
		{" 32.4 % ", 32.4, true},
		{"0", 0, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"-3.2", 0, false},
		{"1.2.3", 0, false},
		{".", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseValue(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseValue(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(25.126); got != 25.13 {
		t.Errorf("Round2(25.126) = %v", got)
	}
	if got := Round2(4.1); got != 4.1 {
		t.Errorf("Round2(4.1) = %v", got)
	}
}

func TestParseYear(t *testing.T) {
	if y, ok := ParseYear(" 2018 "); !ok || y != 2018 {
		t.Errorf("got %d, %v", y, ok)
	}
	if y, ok := ParseYear("2018.0"); !ok || y != 2018 {
		t.Errorf("got %d, %v", y, ok)
	}
	if _, ok := ParseYear("twenty"); ok {
		t.Error("expected failure")
	}
	if YearInRange(2013) || YearInRange(2021) || !YearInRange(2014) || !YearInRange(2020) {
		t.Error("YearInRange bounds wrong")
	}
}

func TestCanonicalState(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Texas", "Texas"},
		{"texas", "Texas"},
		{"  new   york ", "New York"},
		{"TX", "Texas"},
		{"dc", "District of Columbia"},
	}
	for _, tt := range tests {
		got, ok := CanonicalState(tt.in)
		if !ok || got != tt.want {
			t.Errorf("CanonicalState(%q) = %q, %v; want %q", tt.in, got, ok, tt.want)
		}
	}
	for _, bad := range []string{"", "Atlantis", "Puerto Rico"} {
		if _, ok := CanonicalState(bad); ok {
			t.Errorf("CanonicalState(%q) should fail", bad)
		}
	}
}

func TestFoldCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"New York", "new york"},
		{" W ", " w "},
		{"a  b", "a  b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FoldCase(tt.in); got != tt.want {
			t.Errorf("FoldCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Fold("  New   York "); got != "new york" {
		t.Errorf("Fold collapses whitespace: got %q", got)
	}
}

func TestToRecord(t *testing.T) {
	rec, reason, ok := ToRecord(model.RawRow{Line: 2, State: "TX", Year: "2018", Indicator: "ObesityRate", Value: "32,4"})
	if !ok {
		t.Fatalf("expected valid record, got reason %q", reason)
	}
	want := model.HealthRecord{State: "Texas", Year: 2018, Indicator: model.ObesityRate, Value: 32.4, Region: model.South}
	if rec != want {
		t.Errorf("got %+v, want %+v", rec, want)
	}

	drops := []struct {
		row    model.RawRow
		reason string
	}{
		{model.RawRow{State: "", Year: "2018", Indicator: "ObesityRate", Value: "1"}, model.DropMissingField},
		{model.RawRow{State: "Atlantis", Year: "2018", Indicator: "ObesityRate", Value: "1"}, model.DropUnknownState},
		{model.RawRow{State: "Ohio", Year: "abc", Indicator: "ObesityRate", Value: "1"}, model.DropBadYear},
		{model.RawRow{State: "Ohio", Year: "2021", Indicator: "ObesityRate", Value: "1"}, model.DropYearOutOfRange},
		{model.RawRow{State: "Ohio", Year: "2018", Indicator: "Height", Value: "1"}, model.DropUnknownIndicator},
		{model.RawRow{State: "Ohio", Year: "2018", Indicator: "ObesityRate", Value: "x"}, model.DropBadValue},
	}
	for _, d := range drops {
		if _, reason, ok := ToRecord(d.row); ok || reason != d.reason {
			t.Errorf("ToRecord(%+v): got ok=%v reason=%q, want %q", d.row, ok, reason, d.reason)
		}
	}
}

func TestHashingReader_MatchesFileHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	content := "state,year,indicator,value\nOhio,2018,ObesityRate,33.1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	want, err := FileHash(path)
	if err != nil {
		t.Fatalf("FileHash: %v", err)
	}

	hr := NewHashingReader(strings.NewReader(content))
	if _, err := io.Copy(io.Discard, hr); err != nil {
		t.Fatal(err)
	}
	if got := hr.Sum(); got != want {
		t.Errorf("HashingReader sum %s, FileHash %s", got, want)
	}
}
