package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekaraca/bulut-istakip/services"
	"github.com/ekaraca/bulut-istakip/utils"
)

type HistoryController struct {
	Service *services.ApplicationService
}

func NewHistoryController(svc *services.ApplicationService) *HistoryController {
	return &HistoryController{Service: svc}
}

// GetApplicationHistory lists the audit trail of one application, most
// recent first. Entries of deleted applications remain reachable here.
func (hc *HistoryController) GetApplicationHistory(c *gin.Context) {
	entries, err := hc.Service.HistoryFor(c.Request.Context(), c.Param("app_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Application history", entries)
}

// DeleteHistoryEntry removes exactly one history row by its own id.
func (hc *HistoryController) DeleteHistoryEntry(c *gin.Context) {
	historyID := c.Param("history_id")
	if err := hc.Service.DeleteHistoryEntry(c.Request.Context(), historyID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "History entry deleted", gin.H{"history_id": historyID})
}
