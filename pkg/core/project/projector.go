// Package project walks a classified GDP forecast table and produces the
// piecewise-linear incidence projection: one affine segment per contiguous
// run of years sharing an income tier, re-baselined at every tier change so
// the forecast chains without discontinuities.
package project

import (
	"fmt"

	"tb_analytics/pkg/core/income"
	"tb_analytics/pkg/models"
)

// segment state carried across the fold: the current tier and the anchor
// the current affine piece is computed relative to.
type segmentState struct {
	group        models.IncomeGroup
	baselineYear int
	baselineInc  float64
	segmentID    int
}

// Project folds over the classified forecast table in year order and fills
// in predicted incidence and segment IDs.
//
// Within a segment: predicted = baselineInc + slope(group)*(year - baselineYear).
// On a tier change the new segment's baseline is the previous segment's
// last projected (year, value). The very first segment is anchored at the
// historical baseline.
//
// Fails with ErrUnorderedInput if years are not strictly ascending and with
// ErrMissingSlopeForGroup if the horizon enters a tier with no fitted
// slope. On any error no rows are returned.
func Project(table []income.Row, baseline models.Baseline, slopes *models.SlopeTable) ([]models.ProjectionRow, error) {
	if len(table) == 0 {
		return nil, nil
	}

	state := segmentState{
		group:        table[0].Group,
		baselineYear: baseline.Year,
		baselineInc:  baseline.Incidence,
	}

	out := make([]models.ProjectionRow, 0, len(table))
	prevYear := 0
	prevPred := 0.0
	for i, row := range table {
		if i > 0 && row.Year <= prevYear {
			return nil, fmt.Errorf("year %d after %d: %w", row.Year, prevYear, models.ErrUnorderedInput)
		}
		if i > 0 && row.Group != state.group {
			state = segmentState{
				group:        row.Group,
				baselineYear: prevYear,
				baselineInc:  prevPred,
				segmentID:    state.segmentID + 1,
			}
		}

		slope, ok := slopes.Slope(state.group)
		if !ok {
			return nil, fmt.Errorf("year %d enters %s: %w", row.Year, state.group, models.ErrMissingSlopeForGroup)
		}

		pred := state.baselineInc + slope*float64(row.Year-state.baselineYear)
		out = append(out, models.ProjectionRow{
			Year:               row.Year,
			GDP:                row.GDP,
			Group:              row.Group,
			SegmentID:          state.segmentID,
			PredictedIncidence: pred,
		})
		prevYear, prevPred = row.Year, pred
	}
	return out, nil
}
