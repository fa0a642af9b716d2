// Package models holds the shared data types for the TB incidence analysis
// pipeline: income tiers, historical observations, GDP forecast points and
// the rows produced by the segmented projector.
package models

import "fmt"

// IncomeGroup is a World Bank income tier. The values are ordered: a higher
// value is a richer tier, which the rank-based analyses rely on.
type IncomeGroup int

const (
	IncomeLow IncomeGroup = iota
	IncomeLowerMiddle
	IncomeUpperMiddle
	IncomeHigh
)

// AllIncomeGroups returns the four tiers in ascending economic order.
func AllIncomeGroups() []IncomeGroup {
	return []IncomeGroup{IncomeLow, IncomeLowerMiddle, IncomeUpperMiddle, IncomeHigh}
}

func (g IncomeGroup) String() string {
	switch g {
	case IncomeLow:
		return "Low income"
	case IncomeLowerMiddle:
		return "Lower middle income"
	case IncomeUpperMiddle:
		return "Upper middle income"
	case IncomeHigh:
		return "High income"
	}
	return fmt.Sprintf("IncomeGroup(%d)", int(g))
}

// ParseIncomeGroup maps the labels used in the World Bank metadata tables
// back to tiers. Matching is exact on the canonical label.
func ParseIncomeGroup(label string) (IncomeGroup, bool) {
	switch label {
	case "Low income":
		return IncomeLow, true
	case "Lower middle income":
		return IncomeLowerMiddle, true
	case "Upper middle income":
		return IncomeUpperMiddle, true
	case "High income":
		return IncomeHigh, true
	}
	return 0, false
}

// Observation is one historical (year, income group, incidence) data point.
// Incidence is per 100k population and never negative in valid data.
type Observation struct {
	Year      int
	Group     IncomeGroup
	Incidence float64
}

// CountryMeta is the static lookup row for one country.
type CountryMeta struct {
	Code   string
	Name   string
	Region string
	Group  IncomeGroup
}

// GDPPoint is one (year, GDP per capita) forecast point for an entity.
type GDPPoint struct {
	Year int
	GDP  float64
}

// Baseline anchors the first projection segment: the last known historical
// incidence for the entity being projected.
type Baseline struct {
	Year      int
	Incidence float64
}

// ProjectionRow is one year of segmented projection output. SegmentID is
// non-decreasing in year and increments exactly when Group differs from
// the previous row's group.
type ProjectionRow struct {
	Year               int
	GDP                float64
	Group              IncomeGroup
	SegmentID          int
	PredictedIncidence float64
}

// SlopeTable maps income groups to their effective yearly incidence slope.
// Groups with too little historical data have no entry; the projector
// refuses to enter such a group rather than defaulting the slope to zero.
type SlopeTable struct {
	Slopes map[IncomeGroup]float64

	// Evaluation window the slopes were derived over, for display.
	EvalStartYear int
	EvalEndYear   int
}

// Slope reports the effective slope for a group and whether one was fitted.
func (t *SlopeTable) Slope(g IncomeGroup) (float64, bool) {
	if t == nil || t.Slopes == nil {
		return 0, false
	}
	s, ok := t.Slopes[g]
	return s, ok
}
