package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/statehealth/internal/model"
	embedsql "github.com/gyeh/statehealth/internal/sql"
)

const seedBatchSize = 512

// SeedResult reports one Seed run.
type SeedResult struct {
	LoadID     uuid.UUID
	RowsCopied int64
	Duration   time.Duration
}

// Seed replaces the contents of health.observations with records and
// registers the load in health.loads, all in one transaction. Readers see
// either the old rows or the new ones.
func Seed(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, records []model.HealthRecord, summary *model.LoadSummary) (*SeedResult, error) {
	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, embedsql.DeleteObservations); err != nil {
		return nil, fmt.Errorf("seed clear: %w", err)
	}

	ch := make(chan *model.HealthRecord, seedBatchSize)
	errCh := make(chan error, 1)

	// Producer goroutine: push records until done or cancelled
	go func() {
		defer close(ch)
		for i := range records {
			select {
			case ch <- &records[i]:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		errCh <- nil
	}()

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"health", "observations"},
		ObservationColumns,
		NewChannelSource(ch),
	)
	if err != nil {
		// Unblock the producer before waiting on it.
		for range ch {
		}
	}
	if prodErr := <-errCh; prodErr != nil {
		return nil, fmt.Errorf("seed producer: %w", prodErr)
	}
	if err != nil {
		return nil, fmt.Errorf("seed copy: %w", err)
	}

	loadID := uuid.New()
	var source, sha string
	if summary != nil {
		source, sha = summary.Source, summary.SHA256
	}
	if _, err := tx.Exec(ctx, embedsql.InsertLoad, loadID, source, sha, copied); err != nil {
		return nil, fmt.Errorf("seed register load: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("seed commit: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Str("load_id", loadID.String()).
		Int64("rows_copied", copied).
		Str("duration", dur.String()).
		Msg("seed complete")

	return &SeedResult{LoadID: loadID, RowsCopied: copied, Duration: dur}, nil
}

// LoadInfo describes the most recent seed.
type LoadInfo struct {
	LoadID   uuid.UUID
	Source   string
	SHA256   string
	RowsKept int64
	LoadedAt time.Time
}

// LatestLoad returns the most recent seed, or pgx.ErrNoRows if there is none.
func LatestLoad(ctx context.Context, pool *pgxpool.Pool) (*LoadInfo, error) {
	var li LoadInfo
	err := pool.QueryRow(ctx, embedsql.LatestLoad).Scan(&li.LoadID, &li.Source, &li.SHA256, &li.RowsKept, &li.LoadedAt)
	if err != nil {
		return nil, err
	}
	return &li, nil
}
