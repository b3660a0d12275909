package geocode

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "Jalan Ampang" {
			t.Errorf("q = %q, want Jalan Ampang", q)
		}
		if ua := r.Header.Get("User-Agent"); ua != UserAgent {
			t.Errorf("User-Agent = %q, want %q", ua, UserAgent)
		}
		w.Write([]byte(`[{"lat":"3.1579","lon":"101.7123","display_name":"Jalan Ampang, Kuala Lumpur, Malaysia","address":{"road":"Jalan Ampang","city":"Kuala Lumpur","state":"Wilayah Persekutuan","postcode":"50450","country":"Malaysia","country_code":"my"}}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	loc, err := c.Search("Jalan Ampang")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if loc.Lat != 3.1579 || loc.Lon != 101.7123 {
		t.Errorf("coordinates = %v,%v, want 3.1579,101.7123", loc.Lat, loc.Lon)
	}
	if loc.City != "Kuala Lumpur" || loc.Country != "Malaysia" {
		t.Errorf("address not parsed: %+v", loc)
	}
}

func TestSearch_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Search("nowhere at all"); err == nil {
		t.Error("expected an error for an empty result set")
	}
}

func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("path = %q, want /reverse", r.URL.Path)
		}
		w.Write([]byte(`{"lat":"3.1390","lon":"101.6869","display_name":"Kuala Lumpur City Centre","address":{"town":"Kuala Lumpur","country":"Malaysia"}}`))
	}))
	defer srv.Close()

	loc, err := NewClient(srv.URL).ReverseGeocode(3.1390, 101.6869)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if loc.DisplayName != "Kuala Lumpur City Centre" {
		t.Errorf("DisplayName = %q", loc.DisplayName)
	}
	// The town field fills in when city is absent.
	if loc.City != "Kuala Lumpur" {
		t.Errorf("City = %q, want Kuala Lumpur", loc.City)
	}
}

func TestUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).ReverseGeocode(3.1390, 101.6869); err == nil {
		t.Error("expected an error for a 503 upstream")
	}
}
