// Package report renders a run's results as a Markdown report, validates
// and converts it to HTML, and writes the artifacts.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tb_analytics/pkg/core/pipeline"
)

// BuildMarkdown formats the full analysis report: slope table, income-group
// statistics, test results and the segmented projection table.
func BuildMarkdown(res *pipeline.RunResult) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "# TB Incidence Analysis — %s\n\n", res.Entity)
	fmt.Fprintf(&b, "Run `%s`, started %s.\n\n", res.RunID, res.StartedAt.Format("2006-01-02 15:04"))

	b.WriteString("## Incidence by income group\n\n")
	b.WriteString("| Income group | N | Mean | Median | Std dev |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	for _, s := range res.Summaries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", s.Group,
			p.Sprintf("%d", s.N), p.Sprintf("%.1f", s.Mean), p.Sprintf("%.1f", s.Median), p.Sprintf("%.1f", s.StdDev))
	}
	b.WriteString("\n")

	b.WriteString("## Statistical tests\n\n")
	fmt.Fprintf(&b, "- Spearman rank correlation (incidence vs income tier): rho = %.3f, p = %.4g, n = %d\n",
		res.Spearman.Rho, res.Spearman.PValue, res.Spearman.N)
	fmt.Fprintf(&b, "- Kruskal-Wallis across %d groups: H = %.2f (df %d), p = %.4g\n",
		res.Kruskal.Groups, res.Kruskal.H, res.Kruskal.DF, res.Kruskal.PValue)
	fmt.Fprintf(&b, "- Incidence trend over year (all groups pooled): %.2f per year\n\n", res.Trend.Beta)

	fmt.Fprintf(&b, "## Effective slopes (evaluated %d → %d)\n\n",
		res.Slopes.EvalStartYear, res.Slopes.EvalEndYear)
	b.WriteString("| Income group | Slope (per year) |\n")
	b.WriteString("|---|---:|\n")
	for _, s := range res.Summaries {
		if slope, ok := res.Slopes.Slope(s.Group); ok {
			fmt.Fprintf(&b, "| %s | %.2f |\n", s.Group, slope)
		} else {
			fmt.Fprintf(&b, "| %s | — (insufficient data) |\n", s.Group)
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Segmented projection for %s\n\n", res.Entity)
	fmt.Fprintf(&b, "Baseline: %s per 100k in %d.\n\n", p.Sprintf("%.1f", res.Baseline.Incidence), res.Baseline.Year)
	b.WriteString("| Year | GDP/capita | Income group | Segment | Projected incidence |\n")
	b.WriteString("|---:|---:|---|---:|---:|\n")
	// Years and segment IDs stay unlocalized; the printer would group
	// their digits too.
	for _, r := range res.Projection {
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %s |\n",
			r.Year, p.Sprintf("%.0f", r.GDP), r.Group, r.SegmentID, p.Sprintf("%.1f", r.PredictedIncidence))
	}
	b.WriteString("\n")

	return b.String()
}
