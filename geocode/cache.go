package geocode

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/apex/log"
)

const (
	// cacheGridSize rounds coordinates to a grid of this many meters so nearby
	// roofs share one cached address lookup.
	cacheGridSize = 100.0
	// cacheTTL is how long a cached lookup stays valid. Addresses move slowly.
	cacheTTL = 90 * 24 * time.Hour
)

// Geocoder is the lookup surface handlers depend on, satisfied by both the
// raw client and the cached wrapper.
type Geocoder interface {
	Search(query string) (*Location, error)
	ReverseGeocode(lat, lon float64) (*Location, error)
}

// CachedClient wraps a Geocoder with a MySQL-backed reverse-geocode cache.
// Only place lookups are cached; no user data touches the database.
type CachedClient struct {
	upstream Geocoder
	db       *sql.DB
}

// NewCachedClient wraps upstream with the given database.
func NewCachedClient(upstream Geocoder, db *sql.DB) *CachedClient {
	return &CachedClient{upstream: upstream, db: db}
}

// CreateCacheTable creates the cache table if it does not exist.
func (c *CachedClient) CreateCacheTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS geocode_cache (
			id INT AUTO_INCREMENT PRIMARY KEY,
			lat_grid DOUBLE NOT NULL,
			lon_grid DOUBLE NOT NULL,
			location JSON NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			expires_at TIMESTAMP NOT NULL,
			UNIQUE KEY idx_lat_lon (lat_grid, lon_grid),
			INDEX idx_expires (expires_at)
		)`
	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("creating geocode cache table: %w", err)
	}
	return nil
}

// Search passes through to the upstream; forward queries are rare enough that
// only reverse lookups are cached.
func (c *CachedClient) Search(query string) (*Location, error) {
	return c.upstream.Search(query)
}

// ReverseGeocode serves from cache when a fresh entry covers the coordinate's
// grid cell, falling back to the upstream and storing the result.
func (c *CachedClient) ReverseGeocode(lat, lon float64) (*Location, error) {
	latGrid, lonGrid := snapToGrid(lat, lon)

	if loc, ok := c.lookup(latGrid, lonGrid); ok {
		return loc, nil
	}

	loc, err := c.upstream.ReverseGeocode(lat, lon)
	if err != nil {
		return nil, err
	}
	c.store(latGrid, lonGrid, loc)
	return loc, nil
}

func (c *CachedClient) lookup(latGrid, lonGrid float64) (*Location, bool) {
	var raw []byte
	err := c.db.QueryRow(
		`SELECT location FROM geocode_cache
		 WHERE lat_grid = ? AND lon_grid = ? AND expires_at > NOW()`,
		latGrid, lonGrid,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Errorf("Geocode cache lookup failed: %v", err)
		return nil, false
	}

	var loc Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		log.Errorf("Corrupt geocode cache entry at %v,%v: %v", latGrid, lonGrid, err)
		return nil, false
	}
	return &loc, true
}

func (c *CachedClient) store(latGrid, lonGrid float64, loc *Location) {
	raw, err := json.Marshal(loc)
	if err != nil {
		log.Errorf("Marshaling geocode cache entry: %v", err)
		return
	}
	_, err = c.db.Exec(
		`INSERT INTO geocode_cache (lat_grid, lon_grid, location, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE location = VALUES(location), expires_at = VALUES(expires_at)`,
		latGrid, lonGrid, raw, time.Now().Add(cacheTTL),
	)
	if err != nil {
		// A failed cache write never fails the lookup.
		log.Errorf("Storing geocode cache entry: %v", err)
	}
}

// snapToGrid rounds a coordinate to the cache grid. One degree of latitude is
// roughly 111km; longitude shrinks with latitude but the error is negligible
// at residential scale in Malaysia.
func snapToGrid(lat, lon float64) (float64, float64) {
	gridDeg := cacheGridSize / 111000.0
	return math.Round(lat/gridDeg) * gridDeg, math.Round(lon/gridDeg) * gridDeg
}
