package main

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/statehealth/internal/db"
	"github.com/gyeh/statehealth/internal/exitcode"
	"github.com/gyeh/statehealth/internal/pipeline"
)

// openHandle loads the configured source, Postgres when --dsn is set and the
// data file otherwise. It exits the process on failure. The returned func
// releases the database pool, if any.
func openHandle(ctx context.Context, log zerolog.Logger) (*pipeline.Handle, func()) {
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var (
		loader pipeline.Loader
		pool   *pgxpool.Pool
	)
	if cfg.DSN != "" {
		var err error
		pool, err = db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		loader = db.Loader(pool, log)
	} else {
		loader = pipeline.FileLoader(cfg.DataPath, log)
	}

	handle, err := pipeline.NewHandle(ctx, loader, log)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		exitLoadError(log, err)
	}

	return handle, func() {
		if pool != nil {
			pool.Close()
		}
	}
}

func exitLoadError(log zerolog.Logger, err error) {
	var le *pipeline.LoadError
	if errors.As(err, &le) {
		log.Error().Err(le.Err).Str("source", le.Source).Msg("load failed")
	} else {
		log.Error().Err(err).Msg("load failed")
	}
	os.Exit(exitcode.LoadError)
}
