package insights

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const promptSystem = `
You are a residential solar advisor for homeowners in Malaysia. You receive an
analyzed roof (ground area in m², the drawn polygon and, when available, the
street address) and respond with practical, region-aware advice.

OUTPUT RULES
* Output a single valid JSON object and nothing else - no wrapping markdown.
* "insights" is 2-4 sentences covering the roof's suitability, expected
  generation and any caveats (monsoon seasons, shading from neighbors, roof
  orientation typical for the area).
* "recommendations" is 3-5 short, concrete action items (e.g. "Request a
  shading survey before committing to a system above 6 kW").
* "solar_potential" must contain estimated_panels (integer), estimated_capacity
  (kW) and estimated_annual_production (kWh), consistent with the roof area
  you were given.
* Use Malaysian context: NEM 3.0 net metering, TNB tariffs, SEDA registration.
* Never invent an address; if none is given, speak generically.

OUTPUT SCHEMA
{
  "insights": "<2-4 sentences>",
  "recommendations": ["<item 1>", "<item 2>", "<item 3>"],
  "solar_potential": {
    "estimated_panels": <int>,
    "estimated_capacity": <float, kW>,
    "estimated_annual_production": <float, kWh>
  }
}
`

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"response_mime_type,omitempty"`
}

type geminiRequest struct {
	GenerationConfig generationConfig `json:"generationConfig,omitempty"`
	Contents         []content        `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text,omitempty"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// geminiPayload mirrors the schema the prompt asks for.
type geminiPayload struct {
	Insights        string   `json:"insights"`
	Recommendations []string `json:"recommendations"`
	SolarPotential  struct {
		EstimatedPanels           int     `json:"estimated_panels"`
		EstimatedCapacity         float64 `json:"estimated_capacity"`
		EstimatedAnnualProduction float64 `json:"estimated_annual_production"`
	} `json:"solar_potential"`
}

// GeminiClient is a Provider backed by the Gemini generateContent API.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewGeminiClient creates a client for the given model. An empty baseURL
// selects the public Google endpoint.
func NewGeminiClient(apiKey, model, baseURL string) *GeminiClient {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

func (c *GeminiClient) SourceName() string {
	return "Gemini"
}

// AnalyzeRoof sends the roof description to Gemini and parses the JSON reply.
func (c *GeminiClient) AnalyzeRoof(req Request) (*Response, error) {
	desc := fmt.Sprintf("Roof area: %.1f m². Polygon vertices: %d.", req.AreaM2, len(req.Coordinates))
	if req.Address != "" {
		desc += " Address: " + req.Address + "."
	}

	reqBody := geminiRequest{
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
		Contents: []content{
			{
				Role:  "user",
				Parts: []part{{Text: promptSystem}, {Text: desc}},
			},
		},
	}

	text, err := c.generateContent(reqBody)
	if err != nil {
		return nil, err
	}

	var payload geminiPayload
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &payload); err != nil {
		return nil, fmt.Errorf("parsing model output: %w", err)
	}

	return &Response{
		Insights:        payload.Insights,
		Recommendations: payload.Recommendations,
		SolarPotential: &SolarPotential{
			EstimatedPanels:           payload.SolarPotential.EstimatedPanels,
			EstimatedCapacity:         payload.SolarPotential.EstimatedCapacity,
			EstimatedAnnualProduction: payload.SolarPotential.EstimatedAnnualProduction,
		},
	}, nil
}

func (c *GeminiClient) generateContent(body geminiRequest) (string, error) {
	// try v1beta first, then v1
	endpoints := []string{
		fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey),
		fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for _, ep := range endpoints {
		req, err := http.NewRequest("POST", ep, bytes.NewBuffer(data))
		if err != nil {
			lastErr = fmt.Errorf("failed to create request: %w", err)
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to send request: %w", err)
			continue
		}
		bodyBytes, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
			continue
		}
		var gr geminiResponse
		if err := json.Unmarshal(bodyBytes, &gr); err != nil {
			lastErr = fmt.Errorf("failed to parse response: %w", err)
			continue
		}
		if len(gr.Candidates) == 0 {
			lastErr = fmt.Errorf("no candidates in response")
			continue
		}
		for _, p := range gr.Candidates[0].Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
		lastErr = fmt.Errorf("no text part in response")
	}
	return "", lastErr
}
