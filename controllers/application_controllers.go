package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekaraca/bulut-istakip/models"
	"github.com/ekaraca/bulut-istakip/services"
	"github.com/ekaraca/bulut-istakip/utils"
)

type ApplicationController struct {
	Service *services.ApplicationService
}

func NewApplicationController(svc *services.ApplicationService) *ApplicationController {
	return &ApplicationController{Service: svc}
}

// respondServiceError maps the error taxonomy onto HTTP codes: validation
// 400, missing id 404, undecodable sheet row 500, everything else (the
// remote sheet call failed) 502.
func respondServiceError(c *gin.Context, err error) {
	var vErr *models.ValidationError
	var mErr *models.MalformedRowError
	switch {
	case errors.As(err, &vErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, models.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &mErr):
		utils.ErrorLogger.Printf("malformed sheet data: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	default:
		utils.ErrorLogger.Printf("spreadsheet call failed: %v", err)
		utils.RespondError(c, http.StatusBadGateway, err)
	}
}

// applicationView is a list item plus the derived stale warning.
type applicationView struct {
	models.Application
	Stale bool `json:"stale"`
}

func viewsOf(apps []models.Application, now time.Time) []applicationView {
	views := make([]applicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, applicationView{Application: app, Stale: app.StaleAt(now)})
	}
	return views
}

// GetAllApplications lists applications, optionally filtered by
// ?status=APPLIED,REJECTED and ?company=<substring>.
func (ac *ApplicationController) GetAllApplications(c *gin.Context) {
	var statuses []models.Status
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st, err := models.ParseStatus(strings.TrimSpace(part))
			if err != nil {
				utils.RespondError(c, http.StatusBadRequest, err)
				return
			}
			statuses = append(statuses, st)
		}
	}

	apps, err := ac.Service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	apps = services.FilterApplications(apps, statuses, c.Query("company"))

	utils.RespondJSON(c, http.StatusOK, "All applications", viewsOf(apps, time.Now()))
}

// GetApplicationByID returns one application.
func (ac *ApplicationController) GetApplicationByID(c *gin.Context) {
	app, err := ac.Service.Get(c.Request.Context(), c.Param("app_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Application detail", applicationView{Application: app, Stale: app.StaleAt(time.Now())})
}

type applicationBody struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
	Link     string `json:"link"`
}

func (b applicationBody) toInput() (services.ApplicationInput, error) {
	status, err := models.ParseStatus(b.Status)
	if err != nil {
		return services.ApplicationInput{}, &models.ValidationError{Msg: err.Error()}
	}
	return services.ApplicationInput{
		Company:  b.Company,
		Position: b.Position,
		Status:   status,
		Notes:    b.Notes,
		Link:     b.Link,
	}, nil
}

// CreateApplication adds a new application plus its NEW_RECORD history
// entry.
func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	var body applicationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	in, err := body.toInput()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	app, err := ac.Service.Add(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Application created", app)
}

// UpdateApplication overwrites all mutable fields and logs at most one
// history entry.
func (ac *ApplicationController) UpdateApplication(c *gin.Context) {
	var body applicationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	in, err := body.toInput()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	app, err := ac.Service.Update(c.Request.Context(), c.Param("app_id"), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Application updated", app)
}

// DeleteApplication removes the row. A second delete of the same id still
// answers 200; history rows are kept as an archive.
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	id := c.Param("app_id")
	if err := ac.Service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Application deleted", gin.H{"app_id": id})
}
