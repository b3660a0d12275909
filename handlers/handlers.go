// Package handlers wires the HTTP surface to the computation core.
package handlers

import (
	"github.com/gin-gonic/gin"

	"solar-roi-service/config"
	"solar-roi-service/geocode"
	"solar-roi-service/insights"
	"solar-roi-service/session"
	"solar-roi-service/survey"
	"solar-roi-service/version"
)

// Handlers bundles the collaborators every endpoint needs. The geocoder and
// insight provider are interfaces so tests inject no-network fakes.
type Handlers struct {
	cfg      *config.Config
	geocoder geocode.Geocoder
	provider insights.Provider
	sessions *session.Store
	surveys  *survey.Generator
}

// New creates the handler set. provider may be nil, which routes every insight
// request through the numeric fallback.
func New(cfg *config.Config, geocoder geocode.Geocoder, provider insights.Provider,
	sessions *session.Store, surveys *survey.Generator) *Handlers {
	return &Handlers{
		cfg:      cfg,
		geocoder: geocoder,
		provider: provider,
		sessions: sessions,
		surveys:  surveys,
	}
}

// HealthCheck returns a simple health status.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":   "healthy",
		"service":  "solar-roi-service",
		"sessions": h.sessions.Len(),
	})
}

// Version returns build information.
func (h *Handlers) Version(c *gin.Context) {
	c.JSON(200, version.Get("solar-roi-service"))
}
