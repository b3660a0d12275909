package impact

import (
	"math"
	"testing"
)

func TestFromYearlyGeneration(t *testing.T) {
	got := FromYearlyGeneration(7500)

	if got.CO2PerYearKg != 5205 {
		t.Errorf("CO2PerYearKg = %v, want 5205", got.CO2PerYearKg)
	}
	if got.CO2OverHorizonKg != 130125 {
		t.Errorf("CO2OverHorizonKg = %v, want 130125", got.CO2OverHorizonKg)
	}
	if math.Abs(got.TreesOverHorizon-5977.26) > 0.1 {
		t.Errorf("TreesOverHorizon = %v, want ~5977", got.TreesOverHorizon)
	}
	if math.Abs(got.CarsPerYear-1.13) > 0.01 {
		t.Errorf("CarsPerYear = %v, want ~1.13", got.CarsPerYear)
	}
	if got.HorizonYears != 25 {
		t.Errorf("HorizonYears = %v, want 25", got.HorizonYears)
	}
}

func TestFromYearlyGeneration_Zero(t *testing.T) {
	got := FromYearlyGeneration(0)
	if got.CO2PerYearKg != 0 || got.TreesPerYear != 0 || got.CarsPerYear != 0 {
		t.Errorf("zero generation must produce zero impact, got %+v", got)
	}
}

func TestLifetimeScalesLinearly(t *testing.T) {
	a := FromYearlyGeneration(1000)
	b := FromYearlyGeneration(2000)
	if math.Abs(b.CO2OverHorizonKg-2*a.CO2OverHorizonKg) > 1e-9 {
		t.Errorf("impact is not linear in generation: %v vs %v", b.CO2OverHorizonKg, a.CO2OverHorizonKg)
	}
}
