// Package pipeline wires the full analysis run: load tables, compute the
// income-group statistics, fit the slope table, build and project the GDP
// table for the selected entity.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tb_analytics/pkg/config"
	"tb_analytics/pkg/core/analysis"
	"tb_analytics/pkg/core/income"
	"tb_analytics/pkg/core/project"
	"tb_analytics/pkg/core/regress"
	"tb_analytics/pkg/models"
)

// DataSource supplies the in-memory tables a run consumes. The file-backed
// implementation lives in pkg/core/ingest; tests inject their own.
type DataSource interface {
	Observations() ([]models.Observation, error)
	GDPForecast(entity string) ([]models.GDPPoint, error)
	Baseline(entity string) (models.Baseline, error)
}

// RunResult is everything the reporting layer renders.
type RunResult struct {
	RunID     string
	Entity    string
	StartedAt time.Time

	Baseline   models.Baseline
	Slopes     *models.SlopeTable
	Projection []models.ProjectionRow

	Summaries []analysis.GroupSummary
	Spearman  analysis.CorrelationResult
	Kruskal   analysis.KruskalWallisResult
	Trend     analysis.TrendResult
}

// Orchestrator runs the pipeline end to end for one entity.
type Orchestrator struct {
	source DataSource
	window config.SlopeWindow
}

// New creates an orchestrator over a data source.
func New(source DataSource, window config.SlopeWindow) *Orchestrator {
	return &Orchestrator{source: source, window: window}
}

// Run executes load -> group statistics -> slope fit -> classification ->
// segmented projection. Any stage error aborts the run; there is no
// partial-result mode.
func (o *Orchestrator) Run(entity string) (*RunResult, error) {
	res := &RunResult{
		RunID:     uuid.New().String(),
		Entity:    entity,
		StartedAt: time.Now(),
	}
	fmt.Printf("Starting run %s for %s...\n", res.RunID, entity)

	obs, err := o.source.Observations()
	if err != nil {
		return nil, fmt.Errorf("loading observations: %w", err)
	}

	res.Summaries = analysis.SummarizeByGroup(obs)
	res.Spearman, err = analysis.SpearmanIncomeCorrelation(obs)
	if err != nil {
		return nil, fmt.Errorf("spearman: %w", err)
	}
	res.Kruskal, err = analysis.KruskalWallis(obs)
	if err != nil {
		return nil, fmt.Errorf("kruskal-wallis: %w", err)
	}
	res.Trend = analysis.YearTrend(obs)

	res.Slopes, err = regress.EstimateSlopes(obs, models.AllIncomeGroups(),
		regress.Window{EndYear: o.window.EndYear})
	if err != nil {
		return nil, fmt.Errorf("slope estimation: %w", err)
	}
	fmt.Printf("Fitted slopes for %d income groups (window %d-%d)\n",
		len(res.Slopes.Slopes), res.Slopes.EvalStartYear, res.Slopes.EvalEndYear)

	forecast, err := o.source.GDPForecast(entity)
	if err != nil {
		return nil, fmt.Errorf("loading GDP forecast: %w", err)
	}
	res.Baseline, err = o.source.Baseline(entity)
	if err != nil {
		return nil, fmt.Errorf("loading baseline: %w", err)
	}

	table, err := income.BuildProjection(forecast)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", entity, err)
	}
	res.Projection, err = project.Project(table, res.Baseline, res.Slopes)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", entity, err)
	}

	fmt.Printf("Run %s finished: %d projected years in %v\n",
		res.RunID, len(res.Projection), time.Since(res.StartedAt))
	return res, nil
}
