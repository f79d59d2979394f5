package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/statehealth/internal/model"
	"github.com/gyeh/statehealth/internal/normalize"
)

// Environment variables consulted for flag defaults.
const (
	EnvDataPath = "HEALTHDASH_DATA"
	EnvDSN      = "HEALTHDASH_DSN"
	EnvAddr     = "HEALTHDASH_ADDR"
)

// Config holds all runtime configuration for a healthdash run.
type Config struct {
	DataPath   string // CSV or Parquet source
	DSN        string // Postgres source; takes precedence over DataPath
	ConfigPath string
	Addr       string
	LogFormat  string // "text" or "json"
	LogLevel   string
	Defaults   Defaults
}

// Defaults is the initial dashboard selection, read from the YAML file.
type Defaults struct {
	States    []string `yaml:"states" json:"states"`
	Year      int      `yaml:"year" json:"year,omitempty"` // 0 means the latest year in the table
	Indicator string   `yaml:"indicator" json:"indicator"`
	Columns   []string `yaml:"columns" json:"columns"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Defaults Defaults `yaml:"defaults"`
}

// LoadEnv reads a .env file into the process environment if one exists.
// Variables already set win over the file.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	c.Defaults = yc.Defaults
	return c.ApplyDefaults()
}

// ApplyDefaults validates Defaults and fills anything left empty:
// Alabama, obesity rate and the state/year/value columns.
func (c *Config) ApplyDefaults() error {
	d := &c.Defaults

	if len(d.States) == 0 {
		d.States = []string{"Alabama"}
	}
	for i, s := range d.States {
		name, ok := normalize.CanonicalState(s)
		if !ok {
			return fmt.Errorf("unknown state %q in config", s)
		}
		d.States[i] = name
	}

	if d.Year != 0 && !normalize.YearInRange(d.Year) {
		return fmt.Errorf("year %d in config outside %d-%d", d.Year, model.MinYear, model.MaxYear)
	}

	if d.Indicator == "" {
		d.Indicator = string(model.ObesityRate)
	}
	ind, ok := model.ParseIndicator(d.Indicator)
	if !ok {
		return fmt.Errorf("unknown indicator %q in config", d.Indicator)
	}
	d.Indicator = string(ind)

	if len(d.Columns) == 0 {
		for _, col := range model.DefaultColumns {
			d.Columns = append(d.Columns, string(col))
		}
	}
	for i, name := range d.Columns {
		col, ok := model.ParseColumn(name)
		if !ok {
			return fmt.Errorf("unknown column %q in config", name)
		}
		d.Columns[i] = string(col)
	}
	return nil
}

// DefaultIndicator returns the configured indicator, already validated.
func (c *Config) DefaultIndicator() model.Indicator {
	return model.Indicator(c.Defaults.Indicator)
}

// DefaultColumns returns the configured table projection.
func (c *Config) DefaultColumns() []model.Column {
	cols := make([]model.Column, len(c.Defaults.Columns))
	for i, name := range c.Defaults.Columns {
		cols[i] = model.Column(name)
	}
	return cols
}

// Validate checks that a data source is configured and reachable.
func (c *Config) Validate() error {
	if c.DSN != "" {
		return nil
	}
	if c.DataPath == "" {
		return fmt.Errorf("--data (or %s) or --dsn is required", EnvDataPath)
	}
	if _, err := os.Stat(c.DataPath); err != nil {
		return fmt.Errorf("data file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks that a Postgres DSN is configured.
func (c *Config) ValidateWithDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("--dsn or %s is required", EnvDSN)
	}
	return nil
}
