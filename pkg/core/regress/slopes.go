// Package regress fits the incidence-on-year interaction model and derives
// the per-income-group effective yearly slopes the segmented projector
// consumes.
package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"tb_analytics/pkg/models"
)

// Window fixes the two consecutive years the fitted model is evaluated at
// to derive each group's effective slope. The model is affine in year, so
// the choice only moves the anchor years reported in the SlopeTable, but
// it is explicit configuration rather than an implicit artifact of the fit.
type Window struct {
	// EndYear is the later of the two evaluation years. Zero means "the
	// most recent year present in the observations".
	EndYear int
}

// EstimateSlopes fits a single linear model of incidence on year with a
// separate intercept and year slope per income group (a full interaction
// fit, solved jointly), then defines
//
//	effectiveSlope(g) = predicted(endYear, g) - predicted(endYear-1, g)
//
// Groups in the requested set that have fewer than two distinct observed
// years get no entry in the returned table; the projector fails if the
// forecast horizon reaches such a group.
func EstimateSlopes(obs []models.Observation, groups []models.IncomeGroup, w Window) (*models.SlopeTable, error) {
	byGroup := make(map[models.IncomeGroup][]models.Observation)
	maxYear := 0
	for _, o := range obs {
		if math.IsNaN(o.Incidence) {
			continue
		}
		byGroup[o.Group] = append(byGroup[o.Group], o)
		if o.Year > maxYear {
			maxYear = o.Year
		}
	}
	if len(byGroup) == 0 {
		return nil, fmt.Errorf("no usable observations to fit slopes")
	}

	// Only groups with at least two distinct years can carry a slope; the
	// rest stay out of the design matrix so it keeps full column rank.
	var fitted []models.IncomeGroup
	for _, g := range groups {
		years := make(map[int]bool)
		for _, o := range byGroup[g] {
			years[o.Year] = true
		}
		if len(years) >= 2 {
			fitted = append(fitted, g)
		}
	}
	if len(fitted) == 0 {
		return nil, fmt.Errorf("no income group has two or more observed years")
	}

	col := make(map[models.IncomeGroup]int, len(fitted))
	var rows []models.Observation
	yearSum := 0.0
	for i, g := range fitted {
		col[g] = i
		rows = append(rows, byGroup[g]...)
	}
	for _, o := range rows {
		yearSum += float64(o.Year)
	}
	yearMean := yearSum / float64(len(rows))

	// Design: per group, an intercept indicator column and an indicator
	// times centered-year column. Centering keeps the solve well
	// conditioned for calendar-year magnitudes.
	n := len(rows)
	p := 2 * len(fitted)
	x := mat.NewDense(n, p, nil)
	y := mat.NewDense(n, 1, nil)
	for i, o := range rows {
		j := col[o.Group]
		x.Set(i, 2*j, 1)
		x.Set(i, 2*j+1, float64(o.Year)-yearMean)
		y.Set(i, 0, o.Incidence)
	}

	var qr mat.QR
	qr.Factorize(x)
	beta := mat.NewDense(p, 1, nil)
	if err := qr.SolveTo(beta, false, y); err != nil {
		return nil, fmt.Errorf("interaction model solve failed: %w", err)
	}

	endYear := w.EndYear
	if endYear == 0 {
		endYear = maxYear
	}
	startYear := endYear - 1

	predict := func(year int, g models.IncomeGroup) float64 {
		j := col[g]
		return beta.At(2*j, 0) + beta.At(2*j+1, 0)*(float64(year)-yearMean)
	}

	table := &models.SlopeTable{
		Slopes:        make(map[models.IncomeGroup]float64, len(fitted)),
		EvalStartYear: startYear,
		EvalEndYear:   endYear,
	}
	for _, g := range fitted {
		table.Slopes[g] = predict(endYear, g) - predict(startYear, g)
	}
	return table, nil
}
