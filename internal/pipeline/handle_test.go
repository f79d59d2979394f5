package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gyeh/statehealth/internal/model"
)

// switchLoader serves rows until failing is set.
type switchLoader struct {
	mu      sync.Mutex
	rows    []model.RawRow
	failing bool
	calls   int
}

func (l *switchLoader) load(ctx context.Context) (*Table, *model.LoadSummary, error) {
	l.mu.Lock()
	rows, failing := l.rows, l.failing
	l.calls++
	l.mu.Unlock()
	if failing {
		return nil, nil, &LoadError{Source: "switch", Err: errors.New("source unavailable")}
	}
	return Load(ctx, "switch", &SliceSource{Rows: rows}, zerolog.Nop())
}

func (l *switchLoader) set(rows []model.RawRow, failing bool) {
	l.mu.Lock()
	l.rows, l.failing = rows, failing
	l.mu.Unlock()
}

var handleRows = []model.RawRow{
	{Line: 2, State: "Texas", Year: "2018", Indicator: "ObesityRate", Value: "33.0"},
	{Line: 3, State: "Ohio", Year: "2018", Indicator: "ObesityRate", Value: "34.0"},
}

func TestNewHandle_InitialLoadFails(t *testing.T) {
	l := &switchLoader{failing: true}
	if _, err := NewHandle(context.Background(), l.load, zerolog.Nop()); err == nil {
		t.Fatal("expected error")
	}
}

func TestHandle_ReloadSwapsSnapshot(t *testing.T) {
	l := &switchLoader{rows: handleRows}
	h, err := NewHandle(context.Background(), l.load, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	first := h.Table()
	if first.Len() != 2 {
		t.Fatalf("Len: got %d", first.Len())
	}

	l.set(handleRows[:1], false)
	sum, err := h.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	second := h.Table()
	if second.Len() != 1 || sum.RowsKept != 1 {
		t.Errorf("after reload: len %d kept %d", second.Len(), sum.RowsKept)
	}
	if second.SnapshotID() == first.SnapshotID() {
		t.Error("reload kept the same snapshot id")
	}
	if h.Summary().SnapshotID != second.SnapshotID() {
		t.Error("summary and table snapshot ids differ")
	}

	// The old table is immutable and still usable by readers that held it.
	if rec, ok := first.Lookup("Ohio", 2018, model.ObesityRate); !ok || rec.Rank != 1 {
		t.Errorf("old snapshot changed: %+v %v", rec, ok)
	}
}

func TestHandle_FailedReloadKeepsSnapshot(t *testing.T) {
	l := &switchLoader{rows: handleRows}
	h, err := NewHandle(context.Background(), l.load, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	before := h.Table().SnapshotID()

	l.set(nil, true)
	if _, err := h.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}
	if got := h.Table().SnapshotID(); got != before {
		t.Errorf("snapshot replaced after failed reload: %s -> %s", before, got)
	}
}

func TestHandle_EmptyReloadKeepsSnapshot(t *testing.T) {
	l := &switchLoader{rows: handleRows}
	h, err := NewHandle(context.Background(), l.load, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	before := h.Table().SnapshotID()

	l.set([]model.RawRow{{Line: 2, State: "Atlantis", Year: "2018", Indicator: "ObesityRate", Value: "1"}}, false)
	sum, err := h.Reload(context.Background())
	if !errors.Is(err, ErrEmptyReload) {
		t.Fatalf("expected ErrEmptyReload, got %v", err)
	}
	if sum == nil || sum.RowsDropped != 1 {
		t.Errorf("summary of rejected reload: %+v", sum)
	}
	if got := h.Table().SnapshotID(); got != before {
		t.Errorf("snapshot replaced by empty reload: %s -> %s", before, got)
	}
}

func TestNewHandle_EmptySource(t *testing.T) {
	l := &switchLoader{}
	h, err := NewHandle(context.Background(), l.load, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandle on empty source: %v", err)
	}
	if h.Table().Len() != 0 {
		t.Errorf("Len: got %d", h.Table().Len())
	}

	// An empty snapshot is always replaced.
	l.set(handleRows, false)
	if _, err := h.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if h.Table().Len() != 2 {
		t.Errorf("Len after reload: got %d", h.Table().Len())
	}
}

func TestHandle_ConcurrentReadsDuringReload(t *testing.T) {
	l := &switchLoader{rows: handleRows}
	h, err := NewHandle(context.Background(), l.load, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				bars := h.Table().BarChartView([]string{"Texas", "Ohio"}, 2018, model.ObesityRate)
				// Every snapshot is complete: both states or neither.
				if len(bars) != 2 {
					t.Errorf("partial snapshot: %v", bars)
					return
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, err := h.Reload(context.Background()); err != nil {
					t.Errorf("Reload: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.calls != 81 {
		t.Errorf("loader calls: got %d, want 81", l.calls)
	}
}
