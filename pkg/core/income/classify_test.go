package income

import (
	"math"
	"testing"

	"tb_analytics/pkg/models"
)

func TestClassifyBoundaries(t *testing.T) {
	// Right-open intervals: the floor of a tier belongs to that tier, the
	// value just below it to the tier beneath.
	cases := []struct {
		gdp  float64
		want models.IncomeGroup
	}{
		{-500, models.IncomeLow},
		{0, models.IncomeLow},
		{1044.99, models.IncomeLow},
		{1045, models.IncomeLowerMiddle},
		{4094.99, models.IncomeLowerMiddle},
		{4095, models.IncomeUpperMiddle},
		{12694.99, models.IncomeUpperMiddle},
		{12695, models.IncomeHigh},
		{100000, models.IncomeHigh},
	}

	for _, c := range cases {
		got := Classify(c.gdp)
		if got != c.want {
			t.Errorf("Classify(%v) = %s, want %s", c.gdp, got, c.want)
		}
	}
}

func TestCheckFinite(t *testing.T) {
	if err := CheckFinite(1234.5); err != nil {
		t.Errorf("finite value rejected: %v", err)
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := CheckFinite(v); err == nil {
			t.Errorf("CheckFinite(%v) accepted a non-finite value", v)
		}
	}
}
