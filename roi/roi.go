package roi

import (
	"encoding/json"
	"math"
)

// DaysPerMonth is the average number of days in a month (365.25 / 12).
const DaysPerMonth = 30.44

// Input holds the physical and economic parameters for a single ROI computation.
// Callers are responsible for validating ranges (positive area, efficiency <= 1,
// shading factor in [0,1]) before calling Compute; the engine itself never rejects
// an input.
type Input struct {
	// RoofArea is the usable roof area in square meters.
	RoofArea float64
	// PanelEfficiency is the panel conversion efficiency as a fraction (0-1).
	PanelEfficiency float64
	// SolarIrradiance is the average daily irradiance in kWh/m²/day.
	SolarIrradiance float64
	// ShadingFactor is the fraction of unshaded output actually realized (1 = no shading).
	ShadingFactor float64
	// ElectricityRate is the grid tariff in currency per kWh.
	ElectricityRate float64
	// SystemCost is the total upfront installation cost.
	SystemCost float64
	// MonthlyConsumption, when set, caps the generation that counts toward savings.
	// Savings cannot exceed what would otherwise have been bought from the grid.
	MonthlyConsumption *float64
}

// Result is the outcome of one ROI computation. All fields are rounded to two
// decimal places. PaybackPeriod is +Inf when the system never pays for itself;
// that is a legitimate value, not an error.
type Result struct {
	DailyGeneration   float64
	MonthlyGeneration float64
	MonthlySavings    float64
	AnnualSavings     float64
	PaybackPeriod     float64
	ROIPercentage     float64
}

// Compute runs the five-step generation and savings pipeline. It is a pure
// function: no I/O, no clock, no randomness.
func Compute(in Input) Result {
	daily := in.RoofArea * in.PanelEfficiency * in.SolarIrradiance * in.ShadingFactor
	monthly := daily * DaysPerMonth

	usable := monthly
	if in.MonthlyConsumption != nil && *in.MonthlyConsumption < monthly {
		usable = *in.MonthlyConsumption
	}

	monthlySavings := usable * in.ElectricityRate
	annualSavings := monthlySavings * 12

	payback := math.Inf(1)
	if annualSavings > 0 {
		payback = in.SystemCost / annualSavings
	}

	roiPct := 0.0
	if in.SystemCost > 0 {
		roiPct = annualSavings / in.SystemCost * 100
	}

	return Result{
		DailyGeneration:   Round2(daily),
		MonthlyGeneration: Round2(monthly),
		MonthlySavings:    Round2(monthlySavings),
		AnnualSavings:     Round2(annualSavings),
		PaybackPeriod:     Round2(payback),
		ROIPercentage:     Round2(roiPct),
	}
}

// MarshalJSON renders an infinite payback as null. JSON has no +Inf literal
// and the encoder would otherwise fail the whole enclosing response.
func (r Result) MarshalJSON() ([]byte, error) {
	var payback *float64
	if !math.IsInf(r.PaybackPeriod, 1) {
		p := r.PaybackPeriod
		payback = &p
	}
	return json.Marshal(struct {
		DailyGeneration   float64  `json:"dailyGeneration"`
		MonthlyGeneration float64  `json:"monthlyGeneration"`
		MonthlySavings    float64  `json:"monthlySavings"`
		AnnualSavings     float64  `json:"annualSavings"`
		PaybackPeriod     *float64 `json:"paybackPeriod"`
		ROIPercentage     float64  `json:"roiPercentage"`
	}{r.DailyGeneration, r.MonthlyGeneration, r.MonthlySavings, r.AnnualSavings, payback, r.ROIPercentage})
}

// OutputFactor is the ratio used to rescale a baseline system's output when
// comparing an alternate panel without recomputing the full roof geometry.
func OutputFactor(efficiency, irradiance, baseEfficiency, baseIrradiance float64) float64 {
	return (efficiency / baseEfficiency) * (irradiance / baseIrradiance)
}

// Round2 rounds to two decimal places, half away from zero. Infinities pass
// through unchanged.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
