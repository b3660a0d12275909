// Package models defines the JSON request/response surface of the service.
package models

import (
	"fmt"
	"math"

	geojson "github.com/paulmach/go.geojson"

	"solar-roi-service/catalog"
	"solar-roi-service/impact"
	"solar-roi-service/roi"
	"solar-roi-service/roofgeo"
	"solar-roi-service/survey"
)

// ROIRequest is the direct-entry ROI form. Shading arrives as a percentage;
// the handler converts it to the engine's shading factor.
type ROIRequest struct {
	RoofArea          float64 `json:"roofArea"`
	PanelEfficiency   float64 `json:"panelEfficiency"`
	SolarIrradiance   float64 `json:"solarIrradiance"`
	ShadingPercentage float64 `json:"shadingPercentage"`
	ElectricityRate   float64 `json:"electricityRate"`
	SystemCost        float64 `json:"systemCost"`

	// MonthlyConsumption caps savings at what the household actually buys.
	MonthlyConsumption *float64 `json:"monthlyConsumption,omitempty"`
}

// Validate enforces the engine's preconditions; the engine itself never
// rejects inputs, so everything must be caught here.
func (r ROIRequest) Validate() error {
	if r.RoofArea <= 0 {
		return fmt.Errorf("roofArea must be positive")
	}
	if r.PanelEfficiency <= 0 || r.PanelEfficiency > 1 {
		return fmt.Errorf("panelEfficiency must be in (0,1]")
	}
	if r.SolarIrradiance <= 0 {
		return fmt.Errorf("solarIrradiance must be positive")
	}
	if r.ShadingPercentage < 0 || r.ShadingPercentage > 100 {
		return fmt.Errorf("shadingPercentage must be in [0,100]")
	}
	if r.ElectricityRate <= 0 {
		return fmt.Errorf("electricityRate must be positive")
	}
	if r.SystemCost < 0 {
		return fmt.Errorf("systemCost must not be negative")
	}
	if r.MonthlyConsumption != nil && *r.MonthlyConsumption <= 0 {
		return fmt.Errorf("monthlyConsumption must be positive when set")
	}
	return nil
}

// Input converts the request to an engine input.
func (r ROIRequest) Input() roi.Input {
	return roi.Input{
		RoofArea:           r.RoofArea,
		PanelEfficiency:    r.PanelEfficiency,
		SolarIrradiance:    r.SolarIrradiance,
		ShadingFactor:      (100 - r.ShadingPercentage) / 100,
		ElectricityRate:    r.ElectricityRate,
		SystemCost:         r.SystemCost,
		MonthlyConsumption: r.MonthlyConsumption,
	}
}

// YearProjection is one row of the multi-year savings outlook.
type YearProjection struct {
	Year              int     `json:"year"`
	CumulativeSavings float64 `json:"cumulativeSavings"`
	NetPosition       float64 `json:"netPosition"`
}

// ROIResponse carries the engine result plus the derived views the results
// page renders. PaybackPeriod is null when the system never pays for itself.
type ROIResponse struct {
	DailyGeneration   float64  `json:"dailyGeneration"`
	MonthlyGeneration float64  `json:"monthlyGeneration"`
	MonthlySavings    float64  `json:"monthlySavings"`
	AnnualSavings     float64  `json:"annualSavings"`
	PaybackPeriod     *float64 `json:"paybackPeriod"`
	ROIPercentage     float64  `json:"roiPercentage"`

	// DisplayROIPercentage is a presentation heuristic: the true value clamped
	// to the 17-25% band marketing asked for. Never used in computations.
	DisplayROIPercentage float64          `json:"displayRoiPercentage"`
	Impact               impact.Impact    `json:"environmentalImpact"`
	Projection           []YearProjection `json:"projection"`
}

// NewROIResponse assembles the full response from an engine result and the
// system cost it was computed with.
func NewROIResponse(res roi.Result, systemCost float64) ROIResponse {
	var payback *float64
	if !math.IsInf(res.PaybackPeriod, 1) {
		p := res.PaybackPeriod
		payback = &p
	}

	yearlyKWh := res.MonthlyGeneration * 12
	projection := make([]YearProjection, 0, impact.HorizonYears)
	for y := 1; y <= impact.HorizonYears; y++ {
		cumulative := res.AnnualSavings * float64(y)
		projection = append(projection, YearProjection{
			Year:              y,
			CumulativeSavings: roi.Round2(cumulative),
			NetPosition:       roi.Round2(cumulative - systemCost),
		})
	}

	return ROIResponse{
		DailyGeneration:      res.DailyGeneration,
		MonthlyGeneration:    res.MonthlyGeneration,
		MonthlySavings:       res.MonthlySavings,
		AnnualSavings:        res.AnnualSavings,
		PaybackPeriod:        payback,
		ROIPercentage:        res.ROIPercentage,
		DisplayROIPercentage: clampDisplayROI(res.ROIPercentage),
		Impact:               impact.FromYearlyGeneration(yearlyKWh),
		Projection:           projection,
	}
}

// clampDisplayROI keeps the headline ROI figure inside the band shown on the
// landing page. Display only.
func clampDisplayROI(pct float64) float64 {
	return math.Min(25, math.Max(17, pct))
}

// AnalyzeRequest is a drawn roof polygon, either as a raw vertex ring or a
// GeoJSON polygon feature, plus the user's billing inputs.
type AnalyzeRequest struct {
	Coordinates        []roofgeo.Point  `json:"coordinates,omitempty"`
	Feature            *geojson.Feature `json:"feature,omitempty"`
	MonthlyConsumption *float64         `json:"monthlyConsumption,omitempty"`
	ElectricityRate    *float64         `json:"electricityRate,omitempty"`
}

// AnalyzeResponse is everything the results page needs, keyed by session id.
type AnalyzeResponse struct {
	SessionID  string             `json:"sessionId"`
	AreaM2     float64            `json:"areaM2"`
	Centroid   roofgeo.Point      `json:"centroid"`
	Address    string             `json:"address,omitempty"`
	Survey     survey.Result      `json:"survey"`
	Comparison catalog.Comparison `json:"comparison"`
}

// SelectPanelRequest records the user's panel choice on an open session.
type SelectPanelRequest struct {
	PanelID string `json:"panelId"`
}

// ResultsResponse is the recomputed results view for a stored session.
type ResultsResponse struct {
	SessionID  string             `json:"sessionId"`
	Survey     survey.Result      `json:"survey"`
	Address    string             `json:"address,omitempty"`
	Comparison catalog.Comparison `json:"comparison"`

	// Selected is the full ROI view for the chosen panel, present once the
	// user picked one.
	Selected      *ROIResponse         `json:"selected,omitempty"`
	SelectedPanel *catalog.PanelOption `json:"selectedPanel,omitempty"`
}
