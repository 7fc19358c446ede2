package Controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ekaraca/bulut-istakip/models"
	"github.com/ekaraca/bulut-istakip/router"
	"github.com/ekaraca/bulut-istakip/services"
	"github.com/ekaraca/bulut-istakip/store"
	"github.com/ekaraca/bulut-istakip/utils"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sheet, err := store.NewLocalSpreadsheet(db)
	require.NoError(t, err)
	st := store.New(sheet)
	require.NoError(t, st.EnsureSchema(context.Background()))

	return router.SetupRouter(services.NewApplicationService(st))
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createApplication(t *testing.T, r *gin.Engine, company, position, status string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/applications", map[string]string{
		"company":  company,
		"position": position,
		"status":   status,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Status)
	require.NotEmpty(t, resp.Data.ID)
	return resp.Data.ID
}

func TestCreateAndGetApplication(t *testing.T) {
	r := setupTestRouter(t)

	id := createApplication(t, r, "Acme", "Engineer", "APPLIED")

	w := doJSON(t, r, http.MethodGet, "/applications/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		Data    struct {
			Company string        `json:"company"`
			Status  models.Status `json:"status"`
			Stale   bool          `json:"stale"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Application detail", resp.Message)
	assert.Equal(t, "Acme", resp.Data.Company)
	assert.Equal(t, models.StatusApplied, resp.Data.Status)
	assert.False(t, resp.Data.Stale)
}

func TestCreateApplicationValidation(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/applications", map[string]string{
		"company":  "",
		"position": "Engineer",
		"status":   "APPLIED",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/applications", map[string]string{
		"company":  "Acme",
		"position": "Engineer",
		"status":   "NOT_A_STATUS",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListApplicationsWithFilters(t *testing.T) {
	r := setupTestRouter(t)

	createApplication(t, r, "Acme Corp", "Engineer", "APPLIED")
	createApplication(t, r, "Globex", "Analyst", "REJECTED")
	createApplication(t, r, "Acme Labs", "Scientist", "APPLIED")

	var resp struct {
		Data []struct {
			Company string `json:"company"`
		} `json:"data"`
	}

	w := doJSON(t, r, http.MethodGet, "/applications", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3)

	w = doJSON(t, r, http.MethodGet, "/applications?status=APPLIED&company=acme", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp.Data = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)

	w = doJSON(t, r, http.MethodGet, "/applications?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateApplicationAndHistory(t *testing.T) {
	r := setupTestRouter(t)

	id := createApplication(t, r, "Acme", "Engineer", "APPLIED")

	w := doJSON(t, r, http.MethodPut, "/applications/"+id, map[string]string{
		"company":  "Acme",
		"position": "Engineer",
		"status":   "INTERVIEWED",
		"notes":    "Went well",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/applications/"+id+"/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			HistoryID string        `json:"history_id"`
			Action    models.Action `json:"action"`
			Detail    string        `json:"detail"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, models.ActionStatusUpdate, resp.Data[0].Action)
	assert.Equal(t, "Başvuruldu -> Görüşüldü", resp.Data[0].Detail)
	assert.Equal(t, models.ActionNewRecord, resp.Data[1].Action)

	// Delete one history entry by its own id.
	w = doJSON(t, r, http.MethodDelete, "/history/"+resp.Data[0].HistoryID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/applications/"+id+"/history", nil)
	resp.Data = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}

func TestUpdateMissingApplicationReturns404(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/applications/missing", map[string]string{
		"company":  "Acme",
		"position": "Engineer",
		"status":   "APPLIED",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteApplicationIsIdempotent(t *testing.T) {
	r := setupTestRouter(t)

	id := createApplication(t, r, "Acme", "Engineer", "APPLIED")

	w := doJSON(t, r, http.MethodDelete, "/applications/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A second delete still answers 200.
	w = doJSON(t, r, http.MethodDelete, "/applications/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/applications/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
