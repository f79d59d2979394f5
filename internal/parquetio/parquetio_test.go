package parquetio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/statehealth/internal/model"
)

func TestWriteThenOpen_YieldsRawRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health.parquet")
	records := []model.HealthRecord{
		{State: "Texas", Year: 2018, Indicator: model.ObesityRate, Value: 32.4, Region: model.South, Rank: 1},
		{State: "California", Year: 2018, Indicator: model.ObesityRate, Value: 25.1, Region: model.West, Rank: 2},
	}
	if err := WriteFile(path, records); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if r.NumRows() != 2 {
		t.Errorf("NumRows: got %d, want 2", r.NumRows())
	}

	var rows []model.RawRow
	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		rows = append(rows, row)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := model.RawRow{Line: 1, State: "Texas", Year: "2018", Indicator: "ObesityRate", Value: "32.4"}
	if rows[0] != want {
		t.Errorf("got %+v, want %+v", rows[0], want)
	}
}

func TestOpen_RejectsMissingColumns(t *testing.T) {
	type partial struct {
		State string `parquet:"state"`
		Year  int64  `parquet:"year"`
	}
	path := filepath.Join(t.TempDir(), "partial.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := goparquet.NewGenericWriter[partial](f)
	if _, err := w.Write([]partial{{State: "Ohio", Year: 2018}}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if _, err := Open(path); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/health.parquet"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
