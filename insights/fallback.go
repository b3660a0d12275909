package insights

import "solar-roi-service/roi"

// Fallback computes the numeric estimate used when no provider is configured
// or the upstream call fails. It runs the same sizing arithmetic the rest of
// the service uses, so figures never diverge between pages.
func Fallback(req Request, upstreamErr error) *Response {
	panels := roi.EstimatePanels(req.AreaM2)
	capacity := roi.EstimateCapacityKW(panels)

	resp := &Response{
		SolarPotential: &SolarPotential{
			EstimatedPanels:           panels,
			EstimatedCapacity:         capacity,
			EstimatedAnnualProduction: roi.EstimateAnnualProductionKWh(capacity),
		},
	}
	if upstreamErr != nil {
		resp.Error = upstreamErr.Error()
	}
	return resp
}
