// Package insights produces natural-language solar advice for an analyzed
// roof, with a numeric fallback when the upstream model is unavailable.
package insights

import "fmt"

// Request describes an analyzed roof sent for advisory text. Coordinates must
// have at least three points; handlers validate before calling a provider.
type Request struct {
	// AreaM2 is the drawn roof polygon's ground area.
	AreaM2 float64 `json:"area"`
	// Coordinates is the polygon ring as drawn on the map.
	Coordinates []Coordinate `json:"coordinates"`
	// Address is the reverse-geocoded street address, when known.
	Address string `json:"address"`
}

// Coordinate is one polygon vertex.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SolarPotential is the numeric portion of an insight response.
type SolarPotential struct {
	EstimatedPanels           int     `json:"estimatedPanels"`
	EstimatedCapacity         float64 `json:"estimatedCapacity"`
	EstimatedAnnualProduction float64 `json:"estimatedAnnualProduction"`
}

// Response is what the insight endpoint returns. On upstream failure only
// SolarPotential (from the fallback estimator) and Error are populated.
type Response struct {
	Insights        string          `json:"insights,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
	SolarPotential  *SolarPotential `json:"solarPotential,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// Provider generates advisory insights for a roof.
type Provider interface {
	// AnalyzeRoof returns insights for the request, or an error the caller
	// converts into a fallback response.
	AnalyzeRoof(req Request) (*Response, error)
	// SourceName is a short provider label for logging.
	SourceName() string
}

// Validate enforces the request preconditions the providers assume.
func (r Request) Validate() error {
	if r.AreaM2 <= 0 {
		return fmt.Errorf("area must be positive, got %v", r.AreaM2)
	}
	if len(r.Coordinates) < 3 {
		return fmt.Errorf("coordinates need at least 3 points, got %d", len(r.Coordinates))
	}
	return nil
}
