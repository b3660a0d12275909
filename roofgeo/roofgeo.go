// Package roofgeo computes ground area and centroid for roof polygons drawn
// on a map as latitude/longitude rings.
package roofgeo

import (
	"fmt"

	"github.com/golang/geo/s2"
	geojson "github.com/paulmach/go.geojson"
)

// earthRadiusM is the mean earth radius in meters, used to scale spherical
// areas from steradians to m².
const earthRadiusM = 6371008.8

// Point is one polygon vertex in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AreaM2 returns the spherical area enclosed by the ring, in square meters.
// The ring needs at least three vertices and must not repeat the first vertex
// at the end (FromGeoJSON strips the closing vertex).
func AreaM2(ring []Point) (float64, error) {
	if len(ring) < 3 {
		return 0, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(ring))
	}

	pts := make([]s2.Point, 0, len(ring))
	for _, p := range ring {
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lng)))
	}

	loop := s2.LoopFromPoints(pts)
	// Winding order from a drawing UI is arbitrary; normalize so the loop
	// encloses the small region, not its complement.
	loop.Normalize()
	return loop.Area() * earthRadiusM * earthRadiusM, nil
}

// Centroid is the vertex average, adequate at roof scale.
func Centroid(ring []Point) (Point, error) {
	if len(ring) < 3 {
		return Point{}, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(ring))
	}
	var lat, lng float64
	for _, p := range ring {
		lat += p.Lat
		lng += p.Lng
	}
	n := float64(len(ring))
	return Point{Lat: lat / n, Lng: lng / n}, nil
}

// FromGeoJSON extracts the outer ring from a GeoJSON polygon feature.
// GeoJSON stores vertices as [lng, lat] and closes the ring by repeating the
// first vertex; both conventions are undone here.
func FromGeoJSON(f *geojson.Feature) ([]Point, error) {
	if f == nil || f.Geometry == nil || f.Geometry.Type != geojson.GeometryPolygon {
		return nil, fmt.Errorf("feature is not a polygon")
	}
	if len(f.Geometry.Polygon) == 0 {
		return nil, fmt.Errorf("polygon has no rings")
	}

	outer := f.Geometry.Polygon[0]
	ring := make([]Point, 0, len(outer))
	for _, v := range outer {
		if len(v) < 2 {
			return nil, fmt.Errorf("polygon vertex has %d coordinates, want 2", len(v))
		}
		ring = append(ring, Point{Lat: v[1], Lng: v[0]})
	}
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 distinct vertices, got %d", len(ring))
	}
	return ring, nil
}
