package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"solar-roi-service/metrics"
	"solar-roi-service/models"
	"solar-roi-service/roi"
)

// ComputeROI runs the engine for a directly entered input set.
func (h *Handlers) ComputeROI(c *gin.Context) {
	var req models.ROIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Invalid ROI request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := roi.Compute(req.Input())
	metrics.ROIComputationsTotal.WithLabelValues("roi").Inc()

	log.WithFields(log.Fields{
		"roof_area":      req.RoofArea,
		"system_cost":    req.SystemCost,
		"annual_savings": res.AnnualSavings,
	}).Info("roi.computed")

	c.JSON(http.StatusOK, models.NewROIResponse(res, req.SystemCost))
}
