package pipeline

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"tb_analytics/pkg/config"
	"tb_analytics/pkg/models"
)

// fakeSource serves canned tables, standing in for the file-backed loader.
type fakeSource struct {
	obs      []models.Observation
	forecast []models.GDPPoint
	baseline models.Baseline
	loadErr  error
}

func (f *fakeSource) Observations() ([]models.Observation, error) {
	return f.obs, f.loadErr
}

func (f *fakeSource) GDPForecast(entity string) ([]models.GDPPoint, error) {
	return f.forecast, nil
}

func (f *fakeSource) Baseline(entity string) (models.Baseline, error) {
	return f.baseline, nil
}

func historyFor(groups map[models.IncomeGroup]struct{ intercept, slope float64 }) []models.Observation {
	var obs []models.Observation
	for g, line := range groups {
		for i := 0; i < 5; i++ {
			obs = append(obs, models.Observation{
				Year:      2018 + i,
				Group:     g,
				Incidence: line.intercept + line.slope*float64(i),
			})
		}
	}
	return obs
}

func TestRunEndToEnd(t *testing.T) {
	source := &fakeSource{
		obs: historyFor(map[models.IncomeGroup]struct{ intercept, slope float64 }{
			models.IncomeLowerMiddle: {200, -6},
			models.IncomeUpperMiddle: {90, -2},
		}),
		// Horizon crosses the 4095 boundary between 2025 and 2026.
		forecast: []models.GDPPoint{
			{Year: 2024, GDP: 3200},
			{Year: 2025, GDP: 3900},
			{Year: 2026, GDP: 4300},
			{Year: 2027, GDP: 4800},
		},
		baseline: models.Baseline{Year: 2023, Incidence: 150},
	}

	res, err := New(source, config.SlopeWindow{}).Run("TST")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.RunID == "" {
		t.Error("no run ID assigned")
	}
	if len(res.Projection) != 4 {
		t.Fatalf("got %d projected rows, want 4", len(res.Projection))
	}

	// LowerMiddle slope -6 off baseline 150: 144, 138. Then UpperMiddle
	// slope -2 re-baselined at (2025, 138): 136, 134.
	want := []struct {
		year    int
		segment int
		value   float64
	}{
		{2024, 0, 144},
		{2025, 0, 138},
		{2026, 1, 136},
		{2027, 1, 134},
	}
	for i, w := range want {
		r := res.Projection[i]
		if r.Year != w.year || r.SegmentID != w.segment || math.Abs(r.PredictedIncidence-w.value) > 1e-6 {
			t.Errorf("row %d = %+v, want year %d segment %d value %f", i, r, w.year, w.segment, w.value)
		}
	}

	if len(res.Summaries) != 2 {
		t.Errorf("got %d group summaries, want 2", len(res.Summaries))
	}
	if res.Kruskal.Groups != 2 {
		t.Errorf("kruskal groups = %d, want 2", res.Kruskal.Groups)
	}
}

func TestRunFailsOnMissingSlope(t *testing.T) {
	source := &fakeSource{
		obs: historyFor(map[models.IncomeGroup]struct{ intercept, slope float64 }{
			models.IncomeLowerMiddle: {200, -6},
		}),
		// 2025 reaches High income, which has no history at all.
		forecast: []models.GDPPoint{
			{Year: 2024, GDP: 3200},
			{Year: 2025, GDP: 13000},
		},
		baseline: models.Baseline{Year: 2023, Incidence: 150},
	}

	res, err := New(source, config.SlopeWindow{}).Run("TST")
	if !errors.Is(err, models.ErrMissingSlopeForGroup) {
		t.Fatalf("want ErrMissingSlopeForGroup, got %v", err)
	}
	if res != nil {
		t.Error("partial result returned on error")
	}
}

func TestRunFailsOnLoadError(t *testing.T) {
	source := &fakeSource{loadErr: fmt.Errorf("workbook missing")}
	if _, err := New(source, config.SlopeWindow{}).Run("TST"); err == nil {
		t.Error("load error should abort the run")
	}
}
