package roofgeo

import (
	"math"
	"testing"

	geojson "github.com/paulmach/go.geojson"
)

// squareRing builds an axis-aligned square of the given side length in meters
// centered near Kuala Lumpur.
func squareRing(sideM float64) []Point {
	const lat = 3.1390
	const lng = 101.6869
	dLat := sideM / 111320.0
	dLng := sideM / (111320.0 * math.Cos(lat*math.Pi/180))
	return []Point{
		{Lat: lat, Lng: lng},
		{Lat: lat, Lng: lng + dLng},
		{Lat: lat + dLat, Lng: lng + dLng},
		{Lat: lat + dLat, Lng: lng},
	}
}

func TestAreaM2_Square(t *testing.T) {
	ring := squareRing(10)
	area, err := AreaM2(ring)
	if err != nil {
		t.Fatalf("AreaM2: %v", err)
	}
	if math.Abs(area-100) > 1 {
		t.Errorf("10m square area = %v m², want ~100", area)
	}
}

func TestAreaM2_WindingOrderIrrelevant(t *testing.T) {
	ring := squareRing(25)
	reversed := make([]Point, len(ring))
	for i, p := range ring {
		reversed[len(ring)-1-i] = p
	}

	a, err := AreaM2(ring)
	if err != nil {
		t.Fatal(err)
	}
	b, err := AreaM2(reversed)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("area depends on winding order: %v vs %v", a, b)
	}
}

func TestAreaM2_TooFewVertices(t *testing.T) {
	if _, err := AreaM2(squareRing(10)[:2]); err == nil {
		t.Error("expected an error for a 2-vertex ring")
	}
}

func TestCentroid(t *testing.T) {
	ring := squareRing(100)
	c, err := Centroid(ring)
	if err != nil {
		t.Fatal(err)
	}
	if c.Lat <= ring[0].Lat || c.Lat >= ring[2].Lat {
		t.Errorf("centroid lat %v outside square", c.Lat)
	}
	if c.Lng <= ring[0].Lng || c.Lng >= ring[2].Lng {
		t.Errorf("centroid lng %v outside square", c.Lng)
	}
}

func TestFromGeoJSON(t *testing.T) {
	ring := squareRing(10)
	coords := make([][]float64, 0, len(ring)+1)
	for _, p := range ring {
		coords = append(coords, []float64{p.Lng, p.Lat})
	}
	coords = append(coords, coords[0]) // close the ring, GeoJSON style
	f := geojson.NewPolygonFeature([][][]float64{coords})

	got, err := FromGeoJSON(f)
	if err != nil {
		t.Fatalf("FromGeoJSON: %v", err)
	}
	if len(got) != len(ring) {
		t.Fatalf("ring has %d vertices, want %d (closing vertex stripped)", len(got), len(ring))
	}
	for i := range ring {
		if got[i] != ring[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, got[i], ring[i])
		}
	}
}

func TestFromGeoJSON_RejectsNonPolygon(t *testing.T) {
	f := geojson.NewPointFeature([]float64{101.6869, 3.1390})
	if _, err := FromGeoJSON(f); err == nil {
		t.Error("expected an error for a point feature")
	}
}
