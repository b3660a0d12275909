package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"solar-roi-service/catalog"
	"solar-roi-service/metrics"
	"solar-roi-service/models"
	"solar-roi-service/roi"
	"solar-roi-service/session"
)

// GetResults recomputes the results view for a stored session.
func (h *Handlers) GetResults(c *gin.Context) {
	id := c.Param("id")
	ho, err := h.sessions.Get(id)
	metrics.ActiveSessions.Set(float64(h.sessions.Len()))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}

	c.JSON(http.StatusOK, h.buildResults(id, ho))
}

// SelectPanel records a panel choice on an open session and returns the
// refreshed results view.
func (h *Handlers) SelectPanel(c *gin.Context) {
	id := c.Param("id")

	var req models.SelectPanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if _, ok := catalog.ByID(req.PanelID); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown panel id"})
		return
	}

	if err := h.sessions.Update(id, func(ho *session.Handoff) { ho.PanelID = req.PanelID }); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}

	ho, err := h.sessions.Get(id)
	metrics.ActiveSessions.Set(float64(h.sessions.Len()))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}

	log.WithFields(log.Fields{
		"session_id": id,
		"panel_id":   req.PanelID,
	}).Info("panel.selected")

	c.JSON(http.StatusOK, h.buildResults(id, ho))
}

func (h *Handlers) buildResults(id string, ho session.Handoff) models.ResultsResponse {
	site := h.siteFor(ho)
	metrics.ROIComputationsTotal.WithLabelValues("compare").Add(float64(len(catalog.All())))

	resp := models.ResultsResponse{
		SessionID:  id,
		Survey:     ho.Survey,
		Comparison: catalog.Compare(site),
	}
	if ho.Location != nil {
		resp.Address = ho.Location.DisplayName
	}

	if ho.PanelID != "" {
		if panel, ok := catalog.ByID(ho.PanelID); ok {
			cost := catalog.InstallationFee(panel, site.SystemSizeKW)
			res := roi.Compute(catalog.InputFor(panel, site))
			metrics.ROIComputationsTotal.WithLabelValues("results").Inc()

			view := models.NewROIResponse(res, cost)
			resp.Selected = &view
			resp.SelectedPanel = &panel
		}
	}

	return resp
}
