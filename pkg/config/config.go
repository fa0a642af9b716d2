// Package config loads the run configuration (YAML) and user-editable GDP
// forecast scenario files (hjson).
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Config drives one analysis run.
type Config struct {
	IncidenceFile  string `yaml:"incidence_file"`
	IncidenceSheet string `yaml:"incidence_sheet"`
	CountryMeta    string `yaml:"country_meta_file"`
	GDPForecast    string `yaml:"gdp_forecast_file"`
	GDPSheet       string `yaml:"gdp_forecast_sheet"`

	// Entity is the country or aggregate code the projection runs for.
	Entity string `yaml:"entity"`

	OutputDir string `yaml:"output_dir"`

	SlopeWindow SlopeWindow `yaml:"slope_window"`
}

// SlopeWindow makes the slope evaluation window explicit configuration.
type SlopeWindow struct {
	// EndYear is the later evaluation year; 0 means the most recent
	// observed year.
	EndYear int `yaml:"end_year"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
}

func (c *Config) validate() error {
	if c.IncidenceFile == "" {
		return fmt.Errorf("incidence_file is required")
	}
	if c.CountryMeta == "" {
		return fmt.Errorf("country_meta_file is required")
	}
	if c.Entity == "" {
		return fmt.Errorf("entity is required")
	}
	return nil
}
