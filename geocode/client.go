// Package geocode wraps the Nominatim API for the map UI: forward search for
// the address box and reverse geocoding for drawn roof polygons.
package geocode

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the public Nominatim endpoint.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	// UserAgent is required by the Nominatim usage policy.
	UserAgent = "SolarROI/1.0 (solar-roi-service)"
	// Nominatim allows at most 1 request per second.
	minRequestInterval = time.Second
)

// Client talks to Nominatim with the mandated rate limiting.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	lastRequest   time.Time
	rateLimitLock sync.Mutex
}

// NewClient creates a rate-limited Nominatim client. An empty baseURL selects
// the public endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Location is a resolved place.
type Location struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	Postcode    string  `json:"postcode,omitempty"`
	Country     string  `json:"country,omitempty"`
}

type nominatimAddress struct {
	Road        string `json:"road"`
	Suburb      string `json:"suburb"`
	City        string `json:"city"`
	Town        string `json:"town"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

type nominatimResponse struct {
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

func (c *Client) enforceRateLimit() {
	c.rateLimitLock.Lock()
	defer c.rateLimitLock.Unlock()

	if elapsed := time.Since(c.lastRequest); elapsed < minRequestInterval {
		time.Sleep(minRequestInterval - elapsed)
	}
	c.lastRequest = time.Now()
}

// Search resolves a free-form address query to a location.
func (c *Client) Search(query string) (*Location, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	var results []nominatimResponse
	if err := c.get("/search", params, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results for %q", query)
	}
	return toLocation(&results[0])
}

// ReverseGeocode resolves a coordinate to the nearest address.
func (c *Client) ReverseGeocode(lat, lon float64) (*Location, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("format", "json")
	params.Set("addressdetails", "1")

	var result nominatimResponse
	if err := c.get("/reverse", params, &result); err != nil {
		return nil, err
	}
	return toLocation(&result)
}

func (c *Client) get(path string, params url.Values, out interface{}) error {
	c.enforceRateLimit()

	req, err := http.NewRequest("GET", c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading nominatim response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing nominatim response: %w", err)
	}
	return nil
}

func toLocation(r *nominatimResponse) (*Location, error) {
	var lat, lon float64
	if _, err := fmt.Sscanf(r.Lat, "%f", &lat); err != nil {
		return nil, fmt.Errorf("parsing lat %q: %w", r.Lat, err)
	}
	if _, err := fmt.Sscanf(r.Lon, "%f", &lon); err != nil {
		return nil, fmt.Errorf("parsing lon %q: %w", r.Lon, err)
	}

	city := r.Address.City
	if city == "" {
		city = r.Address.Town
	}
	return &Location{
		Lat:         lat,
		Lon:         lon,
		DisplayName: r.DisplayName,
		City:        city,
		State:       r.Address.State,
		Postcode:    r.Address.Postcode,
		Country:     r.Address.Country,
	}, nil
}
