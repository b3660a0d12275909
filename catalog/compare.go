package catalog

import (
	"math"
	"sort"

	"solar-roi-service/roi"
)

// Site captures the survey-derived inputs a comparison is run against.
type Site struct {
	RoofAreaM2         float64
	ShadingFactor      float64
	ElectricityRate    float64
	SystemSizeKW       float64
	RegionalIrradiance float64
	// MonthlyConsumption, when set, caps savings the same way it does in the
	// ROI engine.
	MonthlyConsumption *float64
}

// Quote is one catalog entry evaluated against a site.
type Quote struct {
	Panel           PanelOption `json:"panel"`
	InstallationFee float64     `json:"installationFee"`
	OutputFactor    float64     `json:"outputFactor"`
	Result          roi.Result  `json:"result"`
}

// Comparison ranks the whole catalog for a site, fastest payback first.
type Comparison struct {
	Quotes []Quote `json:"quotes"`
	// FastestPayback lists the brand(s) with the lowest payback period. More
	// than one entry means a tie.
	FastestPayback []string `json:"fastestPayback"`
}

// InputFor builds the ROI engine input for panel p at the given site.
func InputFor(p PanelOption, site Site) roi.Input {
	return roi.Input{
		RoofArea:           site.RoofAreaM2,
		PanelEfficiency:    p.Efficiency,
		SolarIrradiance:    EffectiveIrradiance(p, site.RegionalIrradiance),
		ShadingFactor:      site.ShadingFactor,
		ElectricityRate:    site.ElectricityRate,
		SystemCost:         InstallationFee(p, site.SystemSizeKW),
		MonthlyConsumption: site.MonthlyConsumption,
	}
}

// Compare evaluates every catalog entry against the site. The scan is linear
// in the catalog size; ranking is by payback period ascending with ties
// reported as all tied brands.
func Compare(site Site) Comparison {
	quotes := make([]Quote, 0, len(panels))
	best := math.Inf(1)
	for _, p := range panels {
		q := Quote{
			Panel:           p,
			InstallationFee: InstallationFee(p, site.SystemSizeKW),
			OutputFactor:    OutputFactor(p, site.RegionalIrradiance),
			Result:          roi.Compute(InputFor(p, site)),
		}
		quotes = append(quotes, q)
		if q.Result.PaybackPeriod < best {
			best = q.Result.PaybackPeriod
		}
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Result.PaybackPeriod < quotes[j].Result.PaybackPeriod
	})

	var fastest []string
	if !math.IsInf(best, 1) {
		for _, q := range quotes {
			if q.Result.PaybackPeriod == best {
				fastest = append(fastest, q.Panel.Brand)
			}
		}
	}

	return Comparison{Quotes: quotes, FastestPayback: fastest}
}
