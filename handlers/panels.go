package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solar-roi-service/catalog"
)

// ListPanels returns the full catalog with each panel's output factor against
// the baseline at the regional irradiance.
func (h *Handlers) ListPanels(c *gin.Context) {
	type panelView struct {
		catalog.PanelOption
		OutputFactor float64 `json:"outputFactor"`
	}

	all := catalog.All()
	views := make([]panelView, 0, len(all))
	for _, p := range all {
		views = append(views, panelView{
			PanelOption:  p,
			OutputFactor: catalog.OutputFactor(p, h.cfg.SolarIrradiance),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"panels":   views,
		"baseline": catalog.Baseline().ID,
	})
}
