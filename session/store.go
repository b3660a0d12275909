// Package session carries the typed hand-off between the roof-analysis step
// and the results step. Entries live in memory with a TTL; nothing is ever
// persisted.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"solar-roi-service/geocode"
	"solar-roi-service/roofgeo"
	"solar-roi-service/survey"
)

// Handoff is everything the results page needs from the analysis step.
// Required fields are always set by the analyze handler; optional fields are
// nil when the user skipped them.
type Handoff struct {
	// RoofAreaM2 is the measured polygon area.
	RoofAreaM2 float64 `json:"roofAreaM2"`
	// Centroid of the drawn polygon.
	Centroid roofgeo.Point `json:"centroid"`
	// Survey is the synthetic roof analysis.
	Survey survey.Result `json:"survey"`
	// Location is the reverse-geocoded address, when the lookup succeeded.
	Location *geocode.Location `json:"location,omitempty"`
	// MonthlyConsumption is the user-entered bill estimate in kWh.
	MonthlyConsumption *float64 `json:"monthlyConsumption,omitempty"`
	// ElectricityRate overrides the regional tariff when the user entered one.
	ElectricityRate *float64 `json:"electricityRate,omitempty"`
	// PanelID is the chosen catalog panel, empty until the user picks one.
	PanelID string `json:"panelId,omitempty"`
}

type entry struct {
	handoff   Handoff
	expiresAt time.Time
}

// Store holds hand-offs keyed by opaque ids.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewStore creates a store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores a hand-off and returns its id.
func (s *Store) Put(h Handoff) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.entries[id] = entry{handoff: h, expiresAt: s.now().Add(s.ttl)}
	return id
}

// Get retrieves a hand-off by id.
func (s *Store) Get(id string) (Handoff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.entries, id)
		return Handoff{}, fmt.Errorf("session %s not found or expired", id)
	}
	return e.handoff, nil
}

// Update applies mutate to an existing hand-off, e.g. when the user picks a
// panel on the results page.
func (s *Store) Update(id string, mutate func(*Handoff)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.entries, id)
		return fmt.Errorf("session %s not found or expired", id)
	}
	mutate(&e.handoff)
	s.entries[id] = e
	return nil
}

// Len reports live entries, for the health endpoint.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	return len(s.entries)
}

func (s *Store) purgeLocked() {
	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
