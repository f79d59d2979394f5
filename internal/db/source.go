package db

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/statehealth/internal/model"
	"github.com/gyeh/statehealth/internal/normalize"
	"github.com/gyeh/statehealth/internal/pipeline"
	embedsql "github.com/gyeh/statehealth/internal/sql"
)

// ObservationSource streams health.observations as a pipeline.Source, so
// database rows go through the same validation as file rows.
type ObservationSource struct {
	rows pgx.Rows
	n    int64
}

// OpenObservations runs the observation query and returns a Source over it.
func OpenObservations(ctx context.Context, pool *pgxpool.Pool) (*ObservationSource, error) {
	rows, err := pool.Query(ctx, embedsql.SelectObservations)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	return &ObservationSource{rows: rows}, nil
}

// Next returns the next row, or io.EOF after the last one.
func (s *ObservationSource) Next() (model.RawRow, error) {
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return model.RawRow{}, fmt.Errorf("read observations at row %d: %w", s.n, err)
		}
		return model.RawRow{}, io.EOF
	}
	s.n++

	var (
		state, indicator string
		year             int64
		value            *float64
	)
	if err := s.rows.Scan(&state, &year, &indicator, &value); err != nil {
		return model.RawRow{}, fmt.Errorf("scan observation row %d: %w", s.n, err)
	}
	raw := model.RawRow{
		Line:      s.n,
		State:     state,
		Year:      strconv.FormatInt(year, 10),
		Indicator: indicator,
	}
	if value != nil {
		raw.Value = normalize.FormatValue(*value)
	}
	return raw, nil
}

// Format names the source kind in load summaries.
func (s *ObservationSource) Format() string { return "postgres" }

// Close releases the underlying result set.
func (s *ObservationSource) Close() error {
	s.rows.Close()
	return nil
}

var _ pipeline.Source = (*ObservationSource)(nil)

// Loader returns a pipeline.Loader that reads health.observations from pool.
func Loader(pool *pgxpool.Pool, log zerolog.Logger) pipeline.Loader {
	return func(ctx context.Context) (*pipeline.Table, *model.LoadSummary, error) {
		src, err := OpenObservations(ctx, pool)
		if err != nil {
			return nil, nil, &pipeline.LoadError{Source: "postgres", Err: err}
		}
		return pipeline.Load(ctx, "postgres:health.observations", src, log)
	}
}
