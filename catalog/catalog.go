// Package catalog holds the purchasable panel configurations and derives
// per-panel pricing and ROI parameterization from them.
package catalog

import "solar-roi-service/roi"

// PanelOption is one purchasable panel configuration. The catalog is the only
// source of these; entries never mutate at runtime.
type PanelOption struct {
	ID            string  `json:"id"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	Efficiency    float64 `json:"efficiency"`
	PricePerKW    float64 `json:"pricePerKw"`
	FixedInstall  float64 `json:"fixedInstallFee"`
	WarrantyYears int     `json:"warrantyYears"`
	Maintenance   string  `json:"maintenance"`
	// Irradiance overrides the regional default for panels whose spec sheet
	// assumes a different site profile; 0 means "use the regional default".
	Irradiance float64 `json:"irradiance,omitempty"`
	Wattage    int     `json:"wattage"`
	ImageRef   string  `json:"imageRef"`
}

// panels is the full catalog, ordered. The first entry is the baseline used
// for output-factor comparisons.
var panels = []PanelOption{
	{
		ID:            "jinko-tiger-neo-450",
		Brand:         "Jinko Solar",
		Model:         "Tiger Neo N-type 450W",
		Efficiency:    0.20,
		PricePerKW:    2800,
		FixedInstall:  4500,
		WarrantyYears: 25,
		Maintenance:   "Annual inspection and panel wash",
		Wattage:       450,
		ImageRef:      "panels/jinko-tiger-neo.jpg",
	},
	{
		ID:            "longi-himo6-430",
		Brand:         "LONGi",
		Model:         "Hi-MO 6 Explorer 430W",
		Efficiency:    0.223,
		PricePerKW:    3100,
		FixedInstall:  4800,
		WarrantyYears: 25,
		Maintenance:   "Annual inspection and panel wash",
		Irradiance:    5.1,
		Wattage:       430,
		ImageRef:      "panels/longi-himo6.jpg",
	},
	{
		ID:            "trina-vertex-s-425",
		Brand:         "Trina Solar",
		Model:         "Vertex S+ 425W",
		Efficiency:    0.218,
		PricePerKW:    2950,
		FixedInstall:  4200,
		WarrantyYears: 25,
		Maintenance:   "Biennial inspection",
		Wattage:       425,
		ImageRef:      "panels/trina-vertex-s.jpg",
	},
	{
		ID:            "canadian-hiku6-410",
		Brand:         "Canadian Solar",
		Model:         "HiKu6 410W",
		Efficiency:    0.21,
		PricePerKW:    2650,
		FixedInstall:  4000,
		WarrantyYears: 20,
		Maintenance:   "Annual inspection",
		Wattage:       410,
		ImageRef:      "panels/canadian-hiku6.jpg",
	},
	{
		ID:            "jasolar-deepblue-405",
		Brand:         "JA Solar",
		Model:         "DeepBlue 3.0 405W",
		Efficiency:    0.205,
		PricePerKW:    2500,
		FixedInstall:  3800,
		WarrantyYears: 20,
		Maintenance:   "Annual inspection",
		Wattage:       405,
		ImageRef:      "panels/jasolar-deepblue.jpg",
	},
}

// All returns the ordered catalog. Callers must not modify the returned slice.
func All() []PanelOption {
	return panels
}

// Baseline returns the catalog's first entry, the reference for output-factor
// comparisons.
func Baseline() PanelOption {
	return panels[0]
}

// ByID looks a panel up by its catalog identifier.
func ByID(id string) (PanelOption, bool) {
	for _, p := range panels {
		if p.ID == id {
			return p, true
		}
	}
	return PanelOption{}, false
}

// InstallationFee is the turnkey price for installing panel p at the given
// system size.
func InstallationFee(p PanelOption, systemSizeKW float64) float64 {
	return p.FixedInstall + p.PricePerKW*systemSizeKW
}

// EffectiveIrradiance resolves a panel's irradiance override against the
// regional default.
func EffectiveIrradiance(p PanelOption, regionalDefault float64) float64 {
	if p.Irradiance > 0 {
		return p.Irradiance
	}
	return regionalDefault
}

// OutputFactor compares panel p against the catalog baseline at the given
// regional irradiance.
func OutputFactor(p PanelOption, regionalIrradiance float64) float64 {
	base := Baseline()
	return roi.OutputFactor(
		p.Efficiency, EffectiveIrradiance(p, regionalIrradiance),
		base.Efficiency, EffectiveIrradiance(base, regionalIrradiance),
	)
}
