package handlers

import (
	"math"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"solar-roi-service/catalog"
	"solar-roi-service/metrics"
	"solar-roi-service/models"
	"solar-roi-service/roofgeo"
	"solar-roi-service/session"
)

// Bounds on a drawn roof's ground area. Collinear or repeated vertices pass
// the vertex-count check but enclose nothing; the upper bound catches rings
// that wrap most of the sphere.
const (
	minRoofAreaM2 = 1.0
	maxRoofAreaM2 = 100000.0
)

// AnalyzeRoof measures a drawn roof polygon, attaches a synthetic survey and
// opens a session hand-off for the results page.
func (h *Handlers) AnalyzeRoof(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Invalid analyze request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ring := req.Coordinates
	if len(ring) == 0 && req.Feature != nil {
		var err error
		ring, err = roofgeo.FromGeoJSON(req.Feature)
		if err != nil {
			metrics.RoofAnalysesTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if len(ring) < 3 {
		metrics.RoofAnalysesTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "polygon needs at least 3 vertices"})
		return
	}
	if req.ElectricityRate != nil && *req.ElectricityRate <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "electricityRate must be positive when set"})
		return
	}
	if req.MonthlyConsumption != nil && *req.MonthlyConsumption <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "monthlyConsumption must be positive when set"})
		return
	}

	area, err := roofgeo.AreaM2(ring)
	if err != nil {
		metrics.RoofAnalysesTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if math.IsNaN(area) || area < minRoofAreaM2 || area > maxRoofAreaM2 {
		metrics.RoofAnalysesTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "polygon does not enclose a measurable roof area"})
		return
	}
	centroid, err := roofgeo.Centroid(ring)
	if err != nil {
		metrics.RoofAnalysesTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	handoff := session.Handoff{
		RoofAreaM2:         area,
		Centroid:           centroid,
		Survey:             h.surveys.Generate(),
		MonthlyConsumption: req.MonthlyConsumption,
		ElectricityRate:    req.ElectricityRate,
	}

	// The address is decoration; a failed lookup must not sink the analysis.
	if h.geocoder != nil {
		loc, err := h.geocoder.ReverseGeocode(centroid.Lat, centroid.Lng)
		if err != nil {
			metrics.GeocodeRequestsTotal.WithLabelValues("reverse", "error").Inc()
			log.Warnf("Reverse geocode failed for %v,%v: %v", centroid.Lat, centroid.Lng, err)
		} else {
			metrics.GeocodeRequestsTotal.WithLabelValues("reverse", "ok").Inc()
			handoff.Location = loc
		}
	}

	id := h.sessions.Put(handoff)
	metrics.RoofAnalysesTotal.WithLabelValues("ok").Inc()
	metrics.ActiveSessions.Set(float64(h.sessions.Len()))
	metrics.ROIComputationsTotal.WithLabelValues("compare").Add(float64(len(catalog.All())))

	resp := models.AnalyzeResponse{
		SessionID:  id,
		AreaM2:     area,
		Centroid:   centroid,
		Survey:     handoff.Survey,
		Comparison: catalog.Compare(h.siteFor(handoff)),
	}
	if handoff.Location != nil {
		resp.Address = handoff.Location.DisplayName
	}

	log.WithFields(log.Fields{
		"session_id": id,
		"area_m2":    area,
		"vertices":   len(ring),
	}).Info("roof.analyzed")

	c.JSON(http.StatusOK, resp)
}

// siteFor translates a hand-off into the comparison site, applying the
// regional defaults for anything the user did not enter.
func (h *Handlers) siteFor(ho session.Handoff) catalog.Site {
	rate := h.cfg.ElectricityRate
	if ho.ElectricityRate != nil {
		rate = *ho.ElectricityRate
	}
	return catalog.Site{
		RoofAreaM2:         ho.RoofAreaM2,
		ShadingFactor:      (100 - ho.Survey.ShadingPercent) / 100,
		ElectricityRate:    rate,
		SystemSizeKW:       ho.Survey.SystemSizeKW,
		RegionalIrradiance: h.cfg.SolarIrradiance,
		MonthlyConsumption: ho.MonthlyConsumption,
	}
}
