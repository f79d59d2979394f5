package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/statehealth/internal/db"
	"github.com/gyeh/statehealth/internal/exitcode"
	"github.com/gyeh/statehealth/internal/logging"
	"github.com/gyeh/statehealth/internal/pipeline"
)

var seedFromData bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations, optionally seeding from --data",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&seedFromData, "seed", false, "Replace health.observations with the rows loaded from --data")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if seedFromData && cfg.DataPath == "" {
		log.Error().Msg("--seed needs --data")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(exitcode.DBConnError)
	}

	if !seedFromData {
		return nil
	}

	table, summary, err := pipeline.LoadFile(ctx, cfg.DataPath, log)
	if err != nil {
		pool.Close()
		exitLoadError(log, err)
	}
	res, err := db.Seed(ctx, pool, log, table.Records(), summary)
	if err != nil {
		log.Error().Err(err).Msg("seed failed")
		os.Exit(exitcode.DBConnError)
	}

	fmt.Printf("Seed complete: %d rows from %s (load %s, %.1fs)\n",
		res.RowsCopied, cfg.DataPath, res.LoadID, res.Duration.Seconds())
	return nil
}
