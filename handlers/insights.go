package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"solar-roi-service/insights"
	"solar-roi-service/metrics"
)

// GetInsights returns AI-generated advice for an analyzed roof. When the
// provider is missing or fails, the numeric fallback estimator answers with
// a 200 so the page still renders figures.
func (h *Handlers) GetInsights(c *gin.Context) {
	var req insights.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Invalid insights request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := req.Validate(); err != nil {
		metrics.InsightRequestsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.provider == nil {
		metrics.InsightRequestsTotal.WithLabelValues("fallback").Inc()
		c.JSON(http.StatusOK, insights.Fallback(req, nil))
		return
	}

	resp, err := h.provider.AnalyzeRoof(req)
	if err != nil {
		metrics.InsightRequestsTotal.WithLabelValues("fallback").Inc()
		log.WithFields(log.Fields{
			"provider": h.provider.SourceName(),
			"area_m2":  req.AreaM2,
		}).Warnf("Insight provider failed, using fallback: %v", err)
		c.JSON(http.StatusOK, insights.Fallback(req, err))
		return
	}

	metrics.InsightRequestsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, resp)
}
