package insights

import (
	"fmt"

	"solar-roi-service/roi"
)

// StubProvider is a deterministic, no-network Provider for CI and local
// end-to-end tests. Its numbers agree with the fallback estimator so stubbed
// runs exercise the same downstream formatting.
type StubProvider struct{}

func NewStubProvider() *StubProvider { return &StubProvider{} }

func (s *StubProvider) SourceName() string { return "Stub" }

func (s *StubProvider) AnalyzeRoof(req Request) (*Response, error) {
	panels := roi.EstimatePanels(req.AreaM2)
	capacity := roi.EstimateCapacityKW(panels)

	return &Response{
		Insights: fmt.Sprintf(
			"Stubbed analysis: a %.0f m² roof fits roughly %d panels (%.1f kW).",
			req.AreaM2, panels, capacity),
		Recommendations: []string{
			"Request an on-site shading survey",
			"Compare at least three installer quotes",
			"Check SEDA net-metering quota availability",
		},
		SolarPotential: &SolarPotential{
			EstimatedPanels:           panels,
			EstimatedCapacity:         capacity,
			EstimatedAnnualProduction: roi.EstimateAnnualProductionKWh(capacity),
		},
	}, nil
}
