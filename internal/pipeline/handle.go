package pipeline

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/gyeh/statehealth/internal/model"
)

// Loader produces a fresh table; Handle calls it on start and on every reload.
type Loader func(ctx context.Context) (*Table, *model.LoadSummary, error)

// FileLoader returns a Loader that re-reads path on each call.
func FileLoader(path string, log zerolog.Logger) Loader {
	return func(ctx context.Context) (*Table, *model.LoadSummary, error) {
		return LoadFile(ctx, path, log)
	}
}

type snapshot struct {
	table   *Table
	summary *model.LoadSummary
}

// Handle owns the process-wide table snapshot. Readers get the current
// snapshot without locking; Reload builds a new table and swaps it in
// atomically, so no reader ever sees a partial table. Reloads are serialized.
type Handle struct {
	load    Loader
	log     zerolog.Logger
	mu      sync.Mutex
	current atomic.Pointer[snapshot]
}

// NewHandle performs the initial load. It fails if that load fails.
func NewHandle(ctx context.Context, load Loader, log zerolog.Logger) (*Handle, error) {
	h := &Handle{load: load, log: log}
	if _, err := h.Reload(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Table returns the current snapshot.
func (h *Handle) Table() *Table {
	return h.current.Load().table
}

// Summary returns the load summary of the current snapshot.
func (h *Handle) Summary() model.LoadSummary {
	return *h.current.Load().summary
}

// Reload loads a new table and swaps it in. On failure the previous
// snapshot stays in place and the error is returned. A load that keeps no
// rows does not replace a non-empty snapshot; its summary is returned with
// ErrEmptyReload.
func (h *Handle) Reload(ctx context.Context) (*model.LoadSummary, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	table, summary, err := h.load(ctx)
	if err != nil {
		if h.current.Load() != nil {
			h.log.Error().Err(err).Msg("reload failed, keeping previous snapshot")
		}
		return nil, err
	}
	if prev := h.current.Load(); prev != nil && prev.table.Len() > 0 && table.Len() == 0 {
		h.log.Error().
			Int64("rows_dropped", summary.RowsDropped).
			Msg("reload kept no rows, keeping previous snapshot")
		return summary, ErrEmptyReload
	}
	h.current.Store(&snapshot{table: table, summary: summary})
	return summary, nil
}
