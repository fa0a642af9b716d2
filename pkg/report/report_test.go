package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tb_analytics/pkg/core/analysis"
	"tb_analytics/pkg/core/pipeline"
	"tb_analytics/pkg/models"
)

func sampleResult() *pipeline.RunResult {
	return &pipeline.RunResult{
		RunID:     "test-run",
		Entity:    "BRA",
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Baseline:  models.Baseline{Year: 2023, Incidence: 45},
		Slopes: &models.SlopeTable{
			Slopes: map[models.IncomeGroup]float64{
				models.IncomeUpperMiddle: -1.5,
			},
			EvalStartYear: 2022,
			EvalEndYear:   2023,
		},
		Projection: []models.ProjectionRow{
			{Year: 2024, GDP: 9800, Group: models.IncomeUpperMiddle, SegmentID: 0, PredictedIncidence: 43.5},
			{Year: 2025, GDP: 10300, Group: models.IncomeUpperMiddle, SegmentID: 0, PredictedIncidence: 42},
		},
		Summaries: []analysis.GroupSummary{
			{Group: models.IncomeUpperMiddle, N: 10, Mean: 50, Median: 48, StdDev: 6},
			{Group: models.IncomeHigh, N: 8, Mean: 12, Median: 11, StdDev: 3},
		},
		Spearman: analysis.CorrelationResult{Rho: -0.91, PValue: 0.0001, N: 18},
		Kruskal:  analysis.KruskalWallisResult{H: 11.2, DF: 1, PValue: 0.0008, Groups: 2},
		Trend:    analysis.TrendResult{Alpha: 4000, Beta: -1.9},
	}
}

func TestBuildMarkdown(t *testing.T) {
	doc := BuildMarkdown(sampleResult())

	for _, want := range []string{
		"# TB Incidence Analysis — BRA",
		"| Upper middle income | 10 | 50.0 | 48.0 | 6.0 |",
		"rho = -0.910",
		"H = 11.20 (df 1)",
		"| Upper middle income | -1.50 |",
		"— (insufficient data)", // High has no slope entry
		"| 2024 | 9,800 | Upper middle income | 0 | 43.5 |",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("report missing %q", want)
		}
	}

	if !ValidateMarkdown(doc) {
		t.Error("generated report does not parse as Markdown")
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(BuildMarkdown(sampleResult()))
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Error("tables not rendered, GFM extension missing")
	}
	if !strings.Contains(html, "<h1") {
		t.Error("heading not rendered")
	}
}

func TestWriteArtifacts(t *testing.T) {
	out := t.TempDir()
	dir, err := WriteArtifacts(out, "run-1", "# md", "<h1>html</h1>")
	if err != nil {
		t.Fatalf("WriteArtifacts failed: %v", err)
	}
	if dir != filepath.Join(out, "run-1") {
		t.Errorf("dir = %q", dir)
	}
	for _, name := range []string{"report.md", "report.html"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}
