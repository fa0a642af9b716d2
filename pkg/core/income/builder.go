package income

import (
	"fmt"
	"sort"

	"tb_analytics/pkg/models"
)

// Row is one classified year of the GDP projection table.
type Row struct {
	Year  int
	GDP   float64
	Group models.IncomeGroup
}

// BuildProjection classifies a GDP forecast series into per-year income
// tiers. The input is sorted ascending by year if it is not already;
// duplicate years are rejected with ErrUnorderedInput since segment
// detection depends on a strict year order. Non-finite GDP values are
// rejected with ErrUnclassifiableInput rather than coerced.
func BuildProjection(series []models.GDPPoint) ([]Row, error) {
	if len(series) == 0 {
		return nil, nil
	}

	sorted := make([]models.GDPPoint, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	rows := make([]Row, 0, len(sorted))
	for i, p := range sorted {
		if i > 0 && p.Year == sorted[i-1].Year {
			return nil, fmt.Errorf("duplicate forecast year %d: %w", p.Year, models.ErrUnorderedInput)
		}
		if err := CheckFinite(p.GDP); err != nil {
			return nil, fmt.Errorf("year %d: %w", p.Year, err)
		}
		rows = append(rows, Row{Year: p.Year, GDP: p.GDP, Group: Classify(p.GDP)})
	}
	return rows, nil
}
