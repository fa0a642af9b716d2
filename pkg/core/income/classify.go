// Package income classifies GDP-per-capita values into World Bank income
// tiers and builds the classified per-year table the segmented projector
// walks.
package income

import (
	"fmt"
	"math"

	"tb_analytics/pkg/models"
)

// World Bank FY2022 GNI/GDP per capita thresholds (current USD).
const (
	lowerMiddleFloor = 1045.0
	upperMiddleFloor = 4095.0
	highFloor        = 12695.0
)

// Classify returns the income tier for a GDP-per-capita value.
// Intervals are right-open:
//   - below 1045: Low
//   - [1045, 4095): LowerMiddle
//   - [4095, 12695): UpperMiddle
//   - 12695 and above: High
//
// Negative values fall through to Low; the caller is expected to reject
// non-finite values via CheckFinite / BuildProjection.
func Classify(gdpPerCapita float64) models.IncomeGroup {
	switch {
	case gdpPerCapita < lowerMiddleFloor:
		return models.IncomeLow
	case gdpPerCapita < upperMiddleFloor:
		return models.IncomeLowerMiddle
	case gdpPerCapita < highFloor:
		return models.IncomeUpperMiddle
	default:
		return models.IncomeHigh
	}
}

// CheckFinite rejects NaN and infinite GDP values rather than letting them
// silently classify as Low or High.
func CheckFinite(gdpPerCapita float64) error {
	if math.IsNaN(gdpPerCapita) || math.IsInf(gdpPerCapita, 0) {
		return fmt.Errorf("gdp value %v: %w", gdpPerCapita, models.ErrUnclassifiableInput)
	}
	return nil
}
