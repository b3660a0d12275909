// Package survey produces synthetic roof-analysis results standing in for a
// real satellite roof-detection backend.
package survey

import (
	"math"
	"math/rand"
	"sync"

	"solar-roi-service/catalog"
	"solar-roi-service/impact"
	"solar-roi-service/roi"
)

// Orientation is a compass direction a roof face points toward.
type Orientation string

const (
	North     Orientation = "north"
	Northeast Orientation = "northeast"
	East      Orientation = "east"
	Southeast Orientation = "southeast"
	South     Orientation = "south"
	Southwest Orientation = "southwest"
	West      Orientation = "west"
	Northwest Orientation = "northwest"
)

var orientations = []Orientation{North, Northeast, East, Southeast, South, Southwest, West, Northwest}

const sqFtPerM2 = 10.7639

// Config holds the explicit constants every generated survey is derived with.
// All savings figures come out of the one ROI engine; the generator carries no
// savings heuristic of its own.
type Config struct {
	// ElectricityRate is the grid tariff (currency/kWh).
	ElectricityRate float64
	// Irradiance is the regional average (kWh/m²/day).
	Irradiance float64
	// PanelEfficiency is the assumed panel efficiency for the synthetic array.
	PanelEfficiency float64
	// PeakMonth is the zero-based month index at which the seasonal generation
	// curve peaks.
	PeakMonth int
	// SeasonalAmplitude is the peak-to-mean swing of the monthly curve.
	SeasonalAmplitude float64
}

// Result is one synthetic roof survey. Regenerated on every request; never
// persisted beyond the session hand-off.
type Result struct {
	Orientation     Orientation `json:"orientation"`
	ShadingPercent  float64     `json:"shadingPercent"`
	RoofAreaSqFt    float64     `json:"roofAreaSqFt"`
	RoofAreaM2      float64     `json:"roofAreaM2"`
	SystemSizeKW    float64     `json:"systemSizeKw"`
	MonthlyKWh      []float64   `json:"monthlyKwh"`
	MonthlySavings  float64     `json:"monthlySavings"`
	YearlySavings   float64     `json:"yearlySavings"`
	LifetimeSavings float64     `json:"lifetimeSavings"`
	PaybackYears    float64     `json:"paybackYears"`
}

// Generator draws surveys from an injected pseudo-random source so tests can
// pin exact values while production seeds from entropy.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	cfg Config
}

// New creates a generator around an injected source.
func New(cfg Config, rng *rand.Rand) *Generator {
	return &Generator{rng: rng, cfg: cfg}
}

// NewSeeded creates a generator with its own source at the given seed.
func NewSeeded(cfg Config, seed int64) *Generator {
	return New(cfg, rand.New(rand.NewSource(seed)))
}

// Generate draws one synthetic survey. Roof area lands between 800 and 2600
// sq ft, shading between 0 and 30 percent.
func (g *Generator) Generate() Result {
	g.mu.Lock()
	areaSqFt := 800 + g.rng.Float64()*1800
	shadingPct := g.rng.Float64() * 30
	orientation := orientations[g.rng.Intn(len(orientations))]
	g.mu.Unlock()

	areaM2 := areaSqFt / sqFtPerM2

	sizeKW := roi.EstimateCapacityKW(roi.EstimatePanels(areaM2))
	systemCost := catalog.InstallationFee(catalog.Baseline(), sizeKW)

	res := roi.Compute(roi.Input{
		RoofArea:        areaM2,
		PanelEfficiency: g.cfg.PanelEfficiency,
		SolarIrradiance: g.cfg.Irradiance,
		ShadingFactor:   (100 - shadingPct) / 100,
		ElectricityRate: g.cfg.ElectricityRate,
		SystemCost:      systemCost,
	})

	return Result{
		Orientation:     orientation,
		ShadingPercent:  roi.Round2(shadingPct),
		RoofAreaSqFt:    roi.Round2(areaSqFt),
		RoofAreaM2:      roi.Round2(areaM2),
		SystemSizeKW:    sizeKW,
		MonthlyKWh:      g.seasonalCurve(res.MonthlyGeneration),
		MonthlySavings:  res.MonthlySavings,
		YearlySavings:   res.AnnualSavings,
		LifetimeSavings: roi.Round2(res.AnnualSavings * impact.HorizonYears),
		PaybackYears:    res.PaybackPeriod,
	}
}

// seasonalCurve spreads an average monthly figure across twelve months with a
// cosine swing peaking at cfg.PeakMonth. The swing sums to zero over a full
// year, so the mean is preserved.
func (g *Generator) seasonalCurve(monthlyMean float64) []float64 {
	curve := make([]float64, 12)
	for m := 0; m < 12; m++ {
		w := 1 + g.cfg.SeasonalAmplitude*math.Cos(2*math.Pi*float64(m-g.cfg.PeakMonth)/12)
		curve[m] = roi.Round2(monthlyMean * w)
	}
	return curve
}
