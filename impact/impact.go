// Package impact converts yearly solar generation into environmental
// equivalence figures for the Malaysian grid.
package impact

// Regional constants. The grid emission factor is the Malaysian grid average;
// tree and car figures are the commonly cited equivalences.
const (
	GridEmissionKgPerKWh = 0.694
	TreeAbsorptionKgYear = 21.77
	CarEmissionsKgYear   = 4600.0
	HorizonYears         = 25
)

// Impact holds CO2 avoidance and its tree/car equivalences, annually and over
// the system lifetime. Values are unrounded; presentation decides formatting.
type Impact struct {
	CO2PerYearKg     float64 `json:"co2PerYearKg"`
	CO2OverHorizonKg float64 `json:"co2OverHorizonKg"`
	TreesPerYear     float64 `json:"treesPerYear"`
	TreesOverHorizon float64 `json:"treesOverHorizon"`
	CarsPerYear      float64 `json:"carsPerYear"`
	HorizonYears     int     `json:"horizonYears"`
}

// FromYearlyGeneration derives the full equivalence set from one annual kWh
// figure. The horizon is a flat multiplier; no degradation curve is applied.
func FromYearlyGeneration(yearlyKWh float64) Impact {
	co2Year := yearlyKWh * GridEmissionKgPerKWh
	co2Horizon := co2Year * HorizonYears
	return Impact{
		CO2PerYearKg:     co2Year,
		CO2OverHorizonKg: co2Horizon,
		TreesPerYear:     co2Year / TreeAbsorptionKgYear,
		TreesOverHorizon: co2Horizon / TreeAbsorptionKgYear,
		CarsPerYear:      co2Year / CarEmissionsKgYear,
		HorizonYears:     HorizonYears,
	}
}
