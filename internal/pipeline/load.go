package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/statehealth/internal/csvread"
	"github.com/gyeh/statehealth/internal/model"
	"github.com/gyeh/statehealth/internal/normalize"
)

// maxRowWarnings caps per-row warning logs; the rest only show in the summary.
const maxRowWarnings = 20

const ctxCheckEvery = 1024

// Load reads every row from src, validates and normalizes it, derives region
// and rank, and returns the resulting immutable Table with a summary.
// Rows that fail validation are dropped and counted; a source where every
// row is dropped yields an empty Table, not an error. The only fatal
// outcomes are a read error from the source or a cancelled context, both
// returned as *LoadError.
// Load closes src.
func Load(ctx context.Context, name string, src Source, log zerolog.Logger) (*Table, *model.LoadSummary, error) {
	start := time.Now()
	defer src.Close()

	summary := &model.LoadSummary{
		Source:          name,
		DropReasons:     make(map[string]int64),
		RowsByIndicator: make(map[model.Indicator]int64),
	}
	if f, ok := src.(formatter); ok {
		summary.Format = f.Format()
	}
	if d, ok := src.(delimited); ok {
		summary.Delimiter = string(d.Delimiter())
	}

	var (
		records  []model.HealthRecord
		seen     = make(map[recordKey]bool)
		warnings int
	)

	drop := func(w RowWarning) {
		summary.RowsDropped++
		summary.DropReasons[w.Reason]++
		warnings++
		if warnings <= maxRowWarnings {
			log.Warn().Int64("line", w.Line).Str("reason", w.Reason).Msg("row dropped")
		} else if warnings == maxRowWarnings+1 {
			log.Warn().Msg("further row warnings suppressed")
		}
	}

	for {
		if summary.RowsRead%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, &LoadError{Source: name, Err: err}
			}
		}

		raw, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var le *csvread.LineError
			if errors.As(err, &le) {
				summary.RowsRead++
				drop(RowWarning{Line: le.Line, Reason: model.DropMalformedLine})
				continue
			}
			return nil, nil, &LoadError{Source: name, Err: err}
		}
		summary.RowsRead++

		rec, reason, ok := normalize.ToRecord(raw)
		if !ok {
			drop(RowWarning{Line: raw.Line, Reason: reason})
			continue
		}
		k := recordKey{rec.State, rec.Year, rec.Indicator}
		if seen[k] {
			drop(RowWarning{Line: raw.Line, Reason: model.DropDuplicate})
			continue
		}
		seen[k] = true
		records = append(records, rec)
	}

	table := NewTable(records)

	summary.RowsKept = int64(table.Len())
	for _, r := range records {
		summary.RowsByIndicator[r.Indicator]++
	}
	if fp, ok := src.(fingerprinter); ok {
		summary.SHA256 = fp.SHA256()
	}
	summary.SnapshotID = table.SnapshotID()
	summary.Duration = time.Since(start)

	log.Info().
		Str("source", name).
		Str("format", summary.Format).
		Int64("rows_read", summary.RowsRead).
		Int64("rows_kept", summary.RowsKept).
		Int64("rows_dropped", summary.RowsDropped).
		Int("years", len(table.Years())).
		Str("snapshot", summary.SnapshotID).
		Dur("duration", summary.Duration).
		Msg("table loaded")

	return table, summary, nil
}

// LoadFile opens a CSV or Parquet file and loads it.
func LoadFile(ctx context.Context, path string, log zerolog.Logger) (*Table, *model.LoadSummary, error) {
	src, err := OpenFile(path)
	if err != nil {
		return nil, nil, &LoadError{Source: path, Err: err}
	}
	return Load(ctx, path, src, log)
}
