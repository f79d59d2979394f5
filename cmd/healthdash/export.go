package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/statehealth/internal/exitcode"
	"github.com/gyeh/statehealth/internal/logging"
	"github.com/gyeh/statehealth/internal/parquetio"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the validated, ranked table to a Parquet file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output Parquet file (required)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	handle, done := openHandle(context.Background(), log)
	defer done()
	t := handle.Table()

	if err := parquetio.WriteFile(exportOut, t.Records()); err != nil {
		log.Error().Err(err).Msg("export failed")
		os.Exit(exitcode.ExportError)
	}

	log.Info().
		Str("file", exportOut).
		Int("rows", t.Len()).
		Str("snapshot", t.SnapshotID()).
		Msg("export complete")
	return nil
}
