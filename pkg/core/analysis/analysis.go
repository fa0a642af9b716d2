// Package analysis holds the descriptive and inferential statistics for the
// income-group side of the report: per-tier summaries, Spearman rank
// correlation of incidence against income tier, the Kruskal-Wallis H test
// across tiers, and a simple year trend fit.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"tb_analytics/pkg/models"
)

// GroupSummary is the descriptive block for one income tier.
type GroupSummary struct {
	Group  models.IncomeGroup
	N      int
	Mean   float64
	Median float64
	StdDev float64
}

// CorrelationResult is a rank correlation with its two-sided p-value.
type CorrelationResult struct {
	Rho    float64
	PValue float64
	N      int
}

// KruskalWallisResult is the tie-corrected H statistic with its chi-squared
// approximation p-value.
type KruskalWallisResult struct {
	H      float64
	DF     int
	PValue float64
	Groups int
}

// TrendResult is the OLS fit of incidence on calendar year.
type TrendResult struct {
	Alpha float64 // intercept at year 0
	Beta  float64 // incidence change per year
}

// SummarizeByGroup computes descriptive statistics per income tier, in
// ascending tier order. Tiers with no observations are omitted.
func SummarizeByGroup(obs []models.Observation) []GroupSummary {
	byGroup := make(map[models.IncomeGroup][]float64)
	for _, o := range obs {
		if math.IsNaN(o.Incidence) {
			continue
		}
		byGroup[o.Group] = append(byGroup[o.Group], o.Incidence)
	}

	var out []GroupSummary
	for _, g := range models.AllIncomeGroups() {
		vals := byGroup[g]
		if len(vals) == 0 {
			continue
		}
		out = append(out, GroupSummary{
			Group:  g,
			N:      len(vals),
			Mean:   stat.Mean(vals, nil),
			Median: median(vals),
			StdDev: sampleStdDev(vals),
		})
	}
	return out
}

// SpearmanIncomeCorrelation rank-correlates incidence against the ordinal
// income tier. The p-value uses the t approximation; for |rho| at 1 the
// statistic is unbounded and the p-value is reported as 0.
func SpearmanIncomeCorrelation(obs []models.Observation) (CorrelationResult, error) {
	var xs, ys []float64
	for _, o := range obs {
		if math.IsNaN(o.Incidence) {
			continue
		}
		xs = append(xs, float64(o.Group))
		ys = append(ys, o.Incidence)
	}
	n := len(xs)
	if n < 3 {
		return CorrelationResult{}, fmt.Errorf("spearman needs at least 3 observations, have %d", n)
	}

	rho := stat.Correlation(averageRanks(xs), averageRanks(ys), nil)

	var p float64
	if 1-rho*rho < 1e-12 {
		p = 0
	} else {
		t := rho * math.Sqrt(float64(n-2)/(1-rho*rho))
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
		p = 2 * dist.Survival(math.Abs(t))
	}
	return CorrelationResult{Rho: rho, PValue: p, N: n}, nil
}

// KruskalWallis runs the tie-corrected H test of incidence across income
// tiers. Needs at least two tiers with data and at least one untied pair
// overall (fully tied data leaves the statistic undefined).
func KruskalWallis(obs []models.Observation) (KruskalWallisResult, error) {
	byGroup := make(map[models.IncomeGroup][]float64)
	var all []float64
	for _, o := range obs {
		if math.IsNaN(o.Incidence) {
			continue
		}
		byGroup[o.Group] = append(byGroup[o.Group], o.Incidence)
		all = append(all, o.Incidence)
	}
	if len(byGroup) < 2 {
		return KruskalWallisResult{}, fmt.Errorf("kruskal-wallis needs at least 2 groups, have %d", len(byGroup))
	}

	n := len(all)
	ranks := averageRanks(all)

	// Walk groups in the same order the combined slice was built.
	idx := 0
	rankSums := make(map[models.IncomeGroup]float64)
	counts := make(map[models.IncomeGroup]int)
	for _, o := range obs {
		if math.IsNaN(o.Incidence) {
			continue
		}
		rankSums[o.Group] += ranks[idx]
		counts[o.Group]++
		idx++
	}

	h := 0.0
	for g, rs := range rankSums {
		h += rs * rs / float64(counts[g])
	}
	h = 12/(float64(n)*float64(n+1))*h - 3*float64(n+1)

	// Tie correction.
	tieSum := 0.0
	sorted := append([]float64(nil), all...)
	sort.Float64s(sorted)
	for i := 0; i < n; {
		j := i
		for j < n && sorted[j] == sorted[i] {
			j++
		}
		t := float64(j - i)
		tieSum += t*t*t - t
		i = j
	}
	c := 1 - tieSum/(float64(n)*float64(n)*float64(n)-float64(n))
	if c == 0 {
		return KruskalWallisResult{}, fmt.Errorf("all observations tied, H undefined")
	}
	h /= c

	df := len(byGroup) - 1
	dist := distuv.ChiSquared{K: float64(df)}
	return KruskalWallisResult{
		H:      h,
		DF:     df,
		PValue: dist.Survival(h),
		Groups: len(byGroup),
	}, nil
}

// YearTrend fits incidence on year by ordinary least squares across all
// observations, ignoring tier.
func YearTrend(obs []models.Observation) TrendResult {
	var xs, ys []float64
	for _, o := range obs {
		if math.IsNaN(o.Incidence) {
			continue
		}
		xs = append(xs, float64(o.Year))
		ys = append(ys, o.Incidence)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return TrendResult{Alpha: alpha, Beta: beta}
}

// averageRanks assigns 1-based ranks with ties receiving the average of the
// positions they span.
func averageRanks(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && values[order[j]] == values[order[i]] {
			j++
		}
		avg := float64(i+j+1) / 2 // mean of 1-based positions i+1..j
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}
	return ranks
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}
