package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/statehealth/internal/config"
)

var (
	cfg     config.Config
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "healthdash",
	Short: "US state health indicators dashboard",
	Long: "Loads state-level health indicators (obesity, smoking, unhealthy days) from CSV, Parquet or Postgres " +
		"and serves filtered, ranked views as text, JSON, images or over HTTP.",
	SilenceUsage:      true,
	PersistentPreRunE: prepareConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DataPath, "data", os.Getenv(config.EnvDataPath), "Path to CSV or Parquet data file (or set "+config.EnvDataPath+")")
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv(config.EnvDSN), "Postgres connection string (or set "+config.EnvDSN+")")
	pf.StringVar(&cfg.ConfigPath, "config", "", "YAML file with default selection")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file read before flags fall back to the environment")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

// prepareConfig loads the dotenv file, fills env-backed flags the user left
// unset, and resolves the default selection.
func prepareConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(envFile); err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("data") && cfg.DataPath == "" {
		cfg.DataPath = os.Getenv(config.EnvDataPath)
	}
	if !flags.Changed("dsn") && cfg.DSN == "" {
		cfg.DSN = os.Getenv(config.EnvDSN)
	}
	if cfg.ConfigPath != "" {
		return cfg.LoadFromFile(cfg.ConfigPath)
	}
	return cfg.ApplyDefaults()
}
