package insights

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func validRequest() Request {
	return Request{
		AreaM2: 100,
		Coordinates: []Coordinate{
			{Lat: 3.1390, Lng: 101.6869},
			{Lat: 3.1391, Lng: 101.6869},
			{Lat: 3.1391, Lng: 101.6870},
		},
		Address: "Jalan Ampang, Kuala Lumpur",
	}
}

func TestRequestValidate(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	r := validRequest()
	r.AreaM2 = 0
	if err := r.Validate(); err == nil {
		t.Error("zero area accepted")
	}

	r = validRequest()
	r.Coordinates = r.Coordinates[:2]
	if err := r.Validate(); err == nil {
		t.Error("2-point polygon accepted")
	}
}

func TestFallback(t *testing.T) {
	resp := Fallback(validRequest(), nil)

	// floor(100 × 0.8 / 1.7) = 47 panels, 47 × 400 / 1000 = 18.8 kW.
	if resp.SolarPotential.EstimatedPanels != 47 {
		t.Errorf("EstimatedPanels = %d, want 47", resp.SolarPotential.EstimatedPanels)
	}
	if math.Abs(resp.SolarPotential.EstimatedCapacity-18.8) > 1e-9 {
		t.Errorf("EstimatedCapacity = %v, want 18.8", resp.SolarPotential.EstimatedCapacity)
	}
	want := math.Round(18.8 * 4.5 * 365)
	if resp.SolarPotential.EstimatedAnnualProduction != want {
		t.Errorf("EstimatedAnnualProduction = %v, want %v", resp.SolarPotential.EstimatedAnnualProduction, want)
	}
	if resp.Error != "" {
		t.Errorf("Error = %q, want empty without an upstream failure", resp.Error)
	}
}

func TestStubAgreesWithFallback(t *testing.T) {
	stub, err := NewStubProvider().AnalyzeRoof(validRequest())
	if err != nil {
		t.Fatalf("stub: %v", err)
	}
	fb := Fallback(validRequest(), nil)

	if *stub.SolarPotential != *fb.SolarPotential {
		t.Errorf("stub potential %+v diverges from fallback %+v", stub.SolarPotential, fb.SolarPotential)
	}
	if stub.Insights == "" || len(stub.Recommendations) == 0 {
		t.Error("stub must include advisory text")
	}
}

func TestGeminiClient_ParsesReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":
			"{\"insights\":\"Good roof.\",\"recommendations\":[\"Get quotes\"],\"solar_potential\":{\"estimated_panels\":47,\"estimated_capacity\":18.8,\"estimated_annual_production\":30879}}"
		}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient("test-key", "gemini-2.0-flash", srv.URL)
	resp, err := c.AnalyzeRoof(validRequest())
	if err != nil {
		t.Fatalf("AnalyzeRoof: %v", err)
	}
	if resp.Insights != "Good roof." {
		t.Errorf("Insights = %q", resp.Insights)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0] != "Get quotes" {
		t.Errorf("Recommendations = %v", resp.Recommendations)
	}
	if resp.SolarPotential.EstimatedPanels != 47 {
		t.Errorf("EstimatedPanels = %d, want 47", resp.SolarPotential.EstimatedPanels)
	}
}

func TestGeminiClient_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGeminiClient("test-key", "gemini-2.0-flash", srv.URL)
	if _, err := c.AnalyzeRoof(validRequest()); err == nil {
		t.Fatal("expected an error from a failing upstream")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no tag", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around object", `Here you go: {"a":1} hope it helps`, `{"a":1}`},
		{"no json at all", "sorry", "sorry"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.in); got != tc.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
