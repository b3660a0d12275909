package geocode

import (
	"encoding/json"
	"fmt"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

type fakeUpstream struct {
	searchCalls  int
	reverseCalls int
	loc          *Location
	err          error
}

func (f *fakeUpstream) Search(query string) (*Location, error) {
	f.searchCalls++
	return f.loc, f.err
}

func (f *fakeUpstream) ReverseGeocode(lat, lon float64) (*Location, error) {
	f.reverseCalls++
	return f.loc, f.err
}

func TestReverseGeocode_CacheHit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cached := &Location{Lat: 3.139, Lon: 101.6869, DisplayName: "Jalan Ampang, Kuala Lumpur"}
	raw, _ := json.Marshal(cached)
	mock.ExpectQuery("SELECT location FROM geocode_cache").
		WillReturnRows(sqlmock.NewRows([]string{"location"}).AddRow(raw))

	upstream := &fakeUpstream{loc: &Location{DisplayName: "should not be used"}}
	c := NewCachedClient(upstream, db)

	loc, err := c.ReverseGeocode(3.139, 101.6869)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if loc.DisplayName != cached.DisplayName {
		t.Errorf("DisplayName = %q, want cached %q", loc.DisplayName, cached.DisplayName)
	}
	if upstream.reverseCalls != 0 {
		t.Errorf("upstream called %d times on a cache hit", upstream.reverseCalls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReverseGeocode_CacheMissStoresResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT location FROM geocode_cache").
		WillReturnRows(sqlmock.NewRows([]string{"location"}))
	mock.ExpectExec("INSERT INTO geocode_cache").
		WillReturnResult(sqlmock.NewResult(1, 1))

	upstream := &fakeUpstream{loc: &Location{Lat: 3.139, Lon: 101.6869, DisplayName: "Taman Tun Dr Ismail"}}
	c := NewCachedClient(upstream, db)

	loc, err := c.ReverseGeocode(3.139, 101.6869)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if loc.DisplayName != upstream.loc.DisplayName {
		t.Errorf("DisplayName = %q, want upstream %q", loc.DisplayName, upstream.loc.DisplayName)
	}
	if upstream.reverseCalls != 1 {
		t.Errorf("upstream called %d times, want 1", upstream.reverseCalls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReverseGeocode_UpstreamErrorNotCached(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT location FROM geocode_cache").
		WillReturnRows(sqlmock.NewRows([]string{"location"}))

	upstream := &fakeUpstream{err: fmt.Errorf("nominatim returned 503")}
	c := NewCachedClient(upstream, db)

	if _, err := c.ReverseGeocode(3.139, 101.6869); err == nil {
		t.Fatal("expected the upstream error to propagate")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSearch_PassesThrough(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	upstream := &fakeUpstream{loc: &Location{DisplayName: "Putrajaya"}}
	c := NewCachedClient(upstream, db)

	loc, err := c.Search("Putrajaya")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if loc.DisplayName != "Putrajaya" || upstream.searchCalls != 1 {
		t.Errorf("Search did not pass through to the upstream")
	}
}

func TestSnapToGrid(t *testing.T) {
	aLat, aLon := snapToGrid(3.13901, 101.68640)
	bLat, bLon := snapToGrid(3.13905, 101.68644) // a few meters away
	if aLat != bLat || aLon != bLon {
		t.Errorf("nearby points landed on different grid cells: (%v,%v) vs (%v,%v)", aLat, aLon, bLat, bLon)
	}

	cLat, _ := snapToGrid(3.15000, 101.68690) // ~1.2km away
	if aLat == cLat {
		t.Errorf("distant points share a grid cell")
	}
}
