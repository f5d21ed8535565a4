// Package config resolves the settings of a flux report run.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of one run. Empty output paths disable the
// matching export.
type Config struct {
	Input      string `yaml:"input"`
	HTML       string `yaml:"html"`
	Workbook   string `yaml:"workbook"`
	TablesDir  string `yaml:"tables_dir"`
	ParquetOut string `yaml:"parquet_out"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	HistogramBins int `yaml:"histogram_bins"`
	PlotStartYear int `yaml:"plot_start_year"`
	PlotEndYear   int `yaml:"plot_end_year"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Input:         "harvard_forest.csv",
		HTML:          "flux_report.html",
		LogLevel:      "info",
		HistogramBins: 20,
		PlotStartYear: 1992,
		PlotEndYear:   2009,
	}
}

// LoadFile overlays the YAML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from GOFLUX_* environment variables.
func (c *Config) ApplyEnv() {
	c.Input = getEnv("GOFLUX_INPUT", c.Input)
	c.HTML = getEnv("GOFLUX_HTML", c.HTML)
	c.Workbook = getEnv("GOFLUX_WORKBOOK", c.Workbook)
	c.TablesDir = getEnv("GOFLUX_TABLES_DIR", c.TablesDir)
	c.LogLevel = getEnv("GOFLUX_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("GOFLUX_LOG_FILE", c.LogFile)
}

// Validate checks the settings for values no run can use.
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("input path is empty"))
	}
	if c.HistogramBins < 1 {
		errs = append(errs, fmt.Errorf("histogram_bins must be at least 1, got %d", c.HistogramBins))
	}
	if c.PlotStartYear != 0 && c.PlotEndYear != 0 && c.PlotStartYear > c.PlotEndYear {
		errs = append(errs, fmt.Errorf("plot window %d-%d is inverted", c.PlotStartYear, c.PlotEndYear))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load resolves the configuration from the defaults, the YAML file at path
// (skipped when path is empty) and the environment, in that order.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		if err := c.LoadFile(path); err != nil {
			return nil, err
		}
	}
	c.ApplyEnv()
	return c, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
