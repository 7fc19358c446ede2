package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekaraca/bulut-istakip/models"
	"github.com/ekaraca/bulut-istakip/services"
	"github.com/ekaraca/bulut-istakip/utils"
)

type ChartController struct {
	Service *services.ApplicationService
	Charts  *services.ChartService
}

func NewChartController(svc *services.ApplicationService, charts *services.ChartService) *ChartController {
	return &ChartController{Service: svc, Charts: charts}
}

func (cc *ChartController) renderChart(c *gin.Context, draw func([]models.Application) ([]byte, error)) {
	apps, err := cc.Service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	png, err := draw(apps)
	if errors.Is(err, services.ErrNoChartData) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.ErrorLogger.Printf("chart render failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// StatusChart serves the status distribution pie.
func (cc *ChartController) StatusChart(c *gin.Context) {
	cc.renderChart(c, cc.Charts.StatusPie)
}

// CompanyChart serves the per-company frequency bars.
func (cc *ChartController) CompanyChart(c *gin.Context) {
	cc.renderChart(c, cc.Charts.CompanyBar)
}

// TimelineChart serves the scatter of applications over time.
func (cc *ChartController) TimelineChart(c *gin.Context) {
	cc.renderChart(c, cc.Charts.Timeline)
}
