package config

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"

	"tb_analytics/pkg/models"
)

// Scenario is a hand-written GDP forecast scenario. Hjson so analysts can
// comment and tweak the forecast without fighting strict JSON.
type Scenario struct {
	Entity            string        `json:"entity"`
	BaselineYear      int           `json:"baseline_year"`
	BaselineIncidence float64       `json:"baseline_incidence"`
	GDPForecast       []ForecastRow `json:"gdp_forecast"`
}

// ForecastRow is one (year, GDP per capita) scenario point.
type ForecastRow struct {
	Year int     `json:"year"`
	GDP  float64 `json:"gdp"`
}

// LoadScenario parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var s Scenario
	if err := hjson.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Entity == "" {
		return nil, fmt.Errorf("scenario %s: entity is required", path)
	}
	if len(s.GDPForecast) == 0 {
		return nil, fmt.Errorf("scenario %s: gdp_forecast is empty", path)
	}
	return &s, nil
}

// Points converts the scenario forecast to model points.
func (s *Scenario) Points() []models.GDPPoint {
	points := make([]models.GDPPoint, 0, len(s.GDPForecast))
	for _, r := range s.GDPForecast {
		points = append(points, models.GDPPoint{Year: r.Year, GDP: r.GDP})
	}
	return points
}

// Baseline returns the scenario's anchor point.
func (s *Scenario) Baseline() models.Baseline {
	return models.Baseline{Year: s.BaselineYear, Incidence: s.BaselineIncidence}
}
