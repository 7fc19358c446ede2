package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekaraca/bulut-istakip/models"
	"github.com/ekaraca/bulut-istakip/services"
	"github.com/ekaraca/bulut-istakip/utils"
)

type ReportController struct {
	Service *services.ApplicationService
	Reports *services.ReportService
}

func NewReportController(svc *services.ApplicationService, reports *services.ReportService) *ReportController {
	return &ReportController{Service: svc, Reports: reports}
}

// ExportData returns the compact tabular export: company, position,
// status, timestamp and truncated notes per application.
func (rc *ReportController) ExportData(c *gin.Context) {
	apps, err := rc.Service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Applications export", rc.Reports.BuildSummary(apps))
}

// ExportPDF streams the detailed report: one block per application with
// its full history, most recent first.
func (rc *ReportController) ExportPDF(c *gin.Context) {
	ctx := c.Request.Context()
	apps, err := rc.Service.List(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	historyByApp := make(map[string][]models.HistoryEntry, len(apps))
	for _, app := range apps {
		entries, err := rc.Service.HistoryFor(ctx, app.ID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		historyByApp[app.ID] = entries
	}

	pdf, err := rc.Reports.BuildPDF(apps, historyByApp, time.Now())
	if err != nil {
		utils.ErrorLogger.Printf("pdf build failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("is-takip-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
