package csvread

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/gyeh/statehealth/internal/model"
)

func readAll(t *testing.T, r *Reader) []model.RawRow {
	t.Helper()
	var rows []model.RawRow
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		rows = append(rows, row)
	}
}

func TestReader_LongFormWithBOM(t *testing.T) {
	f, err := os.Open("testdata/long_bom.csv")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	r, err := NewReader(f)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.Format() != string(FormatLong) {
		t.Errorf("format: got %s, want long", r.Format())
	}
	if r.Delimiter() != ',' {
		t.Errorf("delimiter: got %q", r.Delimiter())
	}

	rows := readAll(t, r)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	want := model.RawRow{Line: 4, State: "New York", Year: "2018", Indicator: "ObesityRate", Value: "25.0"}
	if rows[2] != want {
		t.Errorf("row 3: got %+v, want %+v", rows[2], want)
	}
	if rows[0].Line != 2 {
		t.Errorf("first data row line: got %d, want 2", rows[0].Line)
	}
}

func TestReader_WideFormExpandsIndicators(t *testing.T) {
	f, err := os.Open("testdata/us_health_states_wide.csv")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	r, err := NewReader(f)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.Format() != string(FormatWide) {
		t.Fatalf("format: got %s, want wide", r.Format())
	}
	if r.Delimiter() != ';' {
		t.Errorf("delimiter: got %q, want ';'", r.Delimiter())
	}

	rows := readAll(t, r)
	// 4 data rows x 4 indicator columns
	if len(rows) != 16 {
		t.Fatalf("expected 16 observations, got %d", len(rows))
	}

	first := rows[0]
	if first.State != "Alabama" || first.Year != "2019" || first.Indicator != string(model.ObesityRate) || first.Value != "36,1" {
		t.Errorf("unexpected first row: %+v", first)
	}

	// Arizona's smoking cell is empty and must surface as an empty value
	var arizonaSmoking *model.RawRow
	for i := range rows {
		if rows[i].State == "Arizona" && rows[i].Indicator == string(model.SmokingRate) {
			arizonaSmoking = &rows[i]
		}
	}
	if arizonaSmoking == nil || arizonaSmoking.Value != "" {
		t.Errorf("expected empty Arizona smoking value, got %+v", arizonaSmoking)
	}
}

func TestReader_ShortRowsYieldEmptyFields(t *testing.T) {
	src := "state,year,indicator,value\nOhio,2018\n"
	r, err := NewReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	rows := readAll(t, r)
	if len(rows) != 1 || rows[0].Indicator != "" || rows[0].Value != "" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestReader_HeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"no_state", "year,indicator,value\n"},
		{"no_indicator_columns", "state,year,population\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewReader(strings.NewReader(tt.src)); err == nil {
				t.Error("expected header error")
			}
		})
	}
}

func TestSniffDelimiter_Tab(t *testing.T) {
	src := "state\tyear\tindicator\tvalue\nOhio\t2018\tSmokingRate\t20.5\n"
	r, err := NewReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	rows := readAll(t, r)
	if len(rows) != 1 || rows[0].Value != "20.5" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}
