package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", `
incidence_file: data/tb_incidence.xlsx
incidence_sheet: estimates
country_meta_file: data/country_meta.csv
gdp_forecast_file: data/gdp_forecast.xlsx
entity: BRA
slope_window:
  end_year: 2021
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Entity != "BRA" {
		t.Errorf("entity = %q, want BRA", cfg.Entity)
	}
	if cfg.SlopeWindow.EndYear != 2021 {
		t.Errorf("slope window end year = %d, want 2021", cfg.SlopeWindow.EndYear)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("output dir default = %q, want out", cfg.OutputDir)
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	path := writeFile(t, "config.yaml", `
incidence_file: data/tb_incidence.xlsx
country_meta_file: data/country_meta.csv
`)
	if _, err := Load(path); err == nil {
		t.Error("config without entity should fail")
	}
}

func TestLoadScenario(t *testing.T) {
	// Hjson: comments and unquoted keys are the point of the format here.
	path := writeFile(t, "scenario.hjson", `
{
  // optimistic growth path
  entity: BRA
  baseline_year: 2023
  baseline_incidence: 45.0
  gdp_forecast: [
    { year: 2024, gdp: 9800 }
    { year: 2025, gdp: 11200 }
    { year: 2026, gdp: 13100 }
  ]
}
`)

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}
	if s.Entity != "BRA" || s.BaselineYear != 2023 {
		t.Errorf("scenario header = %+v", s)
	}

	points := s.Points()
	if len(points) != 3 || points[2].GDP != 13100 {
		t.Errorf("points = %+v", points)
	}
	b := s.Baseline()
	if b.Year != 2023 || b.Incidence != 45 {
		t.Errorf("baseline = %+v", b)
	}
}

func TestLoadScenarioInvalid(t *testing.T) {
	path := writeFile(t, "scenario.hjson", `{ entity: BRA, gdp_forecast: [] }`)
	if _, err := LoadScenario(path); err == nil {
		t.Error("scenario without forecast rows should fail")
	}
}
