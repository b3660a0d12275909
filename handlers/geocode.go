package handlers

import (
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"solar-roi-service/metrics"
)

// Geocode resolves a free-form address for the map search box.
func (h *Handlers) Geocode(c *gin.Context) {
	query, ok := c.GetQuery("q")
	if !ok || query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}
	if h.geocoder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "geocoding is not configured"})
		return
	}

	loc, err := h.geocoder.Search(query)
	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("search", "error").Inc()
		log.Errorf("Geocode search %q failed: %v", query, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding failed"})
		return
	}

	metrics.GeocodeRequestsTotal.WithLabelValues("search", "ok").Inc()
	c.JSON(http.StatusOK, loc)
}

// ReverseGeocode resolves a clicked coordinate to an address.
func (h *Handlers) ReverseGeocode(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon parameters are required"})
		return
	}
	if h.geocoder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "geocoding is not configured"})
		return
	}

	loc, err := h.geocoder.ReverseGeocode(lat, lon)
	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("reverse", "error").Inc()
		log.Errorf("Reverse geocode %v,%v failed: %v", lat, lon, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding failed"})
		return
	}

	metrics.GeocodeRequestsTotal.WithLabelValues("reverse", "ok").Inc()
	c.JSON(http.StatusOK, loc)
}
