package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekaraca/bulut-istakip/services"
	"github.com/ekaraca/bulut-istakip/utils"
)

type DashboardController struct {
	Service *services.ApplicationService
}

func NewDashboardController(svc *services.ApplicationService) *DashboardController {
	return &DashboardController{Service: svc}
}

// GetDashboardStats recomputes the headline metrics and distributions
// from a fresh read of the sheet.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	apps, err := dc.Service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	stats := services.BuildStats(apps, time.Now())
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
