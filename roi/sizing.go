package roi

import "math"

// Panel packing constants shared by the sizing estimator, the mock survey
// generator and the AI-insight fallback so that every page reports figures
// derived from the same assumptions.
const (
	// UsableRoofFraction is the share of a roof's footprint that can actually
	// hold panels after setbacks, vents and walkways.
	UsableRoofFraction = 0.8
	// PanelAreaM2 is the footprint of a single residential panel.
	PanelAreaM2 = 1.7
	// PanelWatts is the rated output of a single residential panel.
	PanelWatts = 400
	// FallbackPeakSunHours is the conservative daily peak-sun-hours figure used
	// by the quick annual-production estimate.
	FallbackPeakSunHours = 4.5
)

// EstimatePanels returns how many panels fit on a roof of the given area (m²).
func EstimatePanels(roofAreaM2 float64) int {
	return int(math.Floor(roofAreaM2 * UsableRoofFraction / PanelAreaM2))
}

// EstimateCapacityKW converts a panel count to installed capacity in kW.
func EstimateCapacityKW(panels int) float64 {
	return float64(panels) * PanelWatts / 1000
}

// EstimateAnnualProductionKWh is the quick estimate used when the full
// irradiance-based pipeline is unavailable: capacity × peak sun hours × 365,
// rounded to the nearest kWh.
func EstimateAnnualProductionKWh(capacityKW float64) float64 {
	return math.Round(capacityKW * FallbackPeakSunHours * 365)
}
