package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/statehealth/internal/api"
	"github.com/gyeh/statehealth/internal/api/handlers"
	"github.com/gyeh/statehealth/internal/config"
	"github.com/gyeh/statehealth/internal/exitcode"
	"github.com/gyeh/statehealth/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API over HTTP",
	Long: `Loads the data source once and serves every view over HTTP.

SIGHUP or POST /api/reload re-reads the source and swaps the snapshot
atomically; a failed reload keeps serving the previous one.

Endpoints:
  GET  /health
  GET  /api/meta
  GET  /api/load
  GET  /api/summary
  GET  /api/states?q=
  GET  /api/records
  GET  /api/bar
  GET  /api/trend
  GET  /api/table
  GET  /api/chart/{bar,trend}.{png,svg}
  POST /api/reload`,
	RunE: runServe,
}

func init() {
	addr := os.Getenv(config.EnvAddr)
	if addr == "" {
		addr = ":8080"
	}
	serveCmd.Flags().StringVar(&cfg.Addr, "addr", addr, "Listen address (or set "+config.EnvAddr+")")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	if !cmd.Flags().Changed("addr") {
		if env := os.Getenv(config.EnvAddr); env != "" {
			cfg.Addr = env
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle, done := openHandle(ctx, log)
	defer done()

	router := api.NewRouter(handlers.NewDashboardHandler(handle, cfg.Defaults, log), log)
	server := api.New(cfg.Addr, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-hup:
			log.Info().Msg("SIGHUP received, reloading")
			if _, err := handle.Reload(ctx); err == nil {
				log.Info().Str("snapshot", handle.Table().SnapshotID()).Msg("reload complete")
			}
		case err := <-errCh:
			if err != nil {
				log.Error().Err(err).Msg("server failed")
				done()
				os.Exit(exitcode.ServeError)
			}
			return nil
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			log.Info().Msg("server stopped")
			return nil
		}
	}
}
