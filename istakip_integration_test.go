package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ekaraca/bulut-istakip/models"
	"github.com/ekaraca/bulut-istakip/router"
	"github.com/ekaraca/bulut-istakip/services"
	"github.com/ekaraca/bulut-istakip/store"
	"github.com/ekaraca/bulut-istakip/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main flow:
// 1. Create an application -> one NEW_RECORD history entry
// 2. Update its status -> one GUNCELLEME entry, never a note entry
// 3. Check the dashboard counters
// 4. Delete the application -> history survives
func TestEndToEndIntegration(t *testing.T) {
	r := setupIntegrationRouter()

	id := createIntegrationApplication(t, r)
	updateStatusTest(t, r, id)
	checkHistoryTest(t, r, id)
	checkStatsTest(t, r)
	deleteKeepsHistoryTest(t, r, id)
}

func setupIntegrationRouter() *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	sheet, err := store.NewLocalSpreadsheet(db)
	if err != nil {
		log.Fatalf("failed to prepare local spreadsheet: %v", err)
	}
	st := store.New(sheet)
	if err := st.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}
	return router.SetupRouter(services.NewApplicationService(st))
}

func createIntegrationApplication(t *testing.T, r *gin.Engine) string {
	body := map[string]string{
		"company":  "Acme",
		"position": "Engineer",
		"status":   "APPLIED",
		"notes":    "",
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			ID     string        `json:"id"`
			Status models.Status `json:"status"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status || resp.Data.ID == "" {
		t.Fatalf("create: bad response %s", w.Body.String())
	}
	if resp.Data.Status != models.StatusApplied {
		t.Fatalf("create: expected status APPLIED, got %s", resp.Data.Status)
	}
	return resp.Data.ID
}

func updateStatusTest(t *testing.T, r *gin.Engine, id string) {
	body := map[string]string{
		"company":  "Acme",
		"position": "Engineer",
		"status":   "INTERVIEWED",
		"notes":    "Went well",
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPut, "/applications/"+id, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func checkHistoryTest(t *testing.T, r *gin.Engine, id string) {
	req := httptest.NewRequest(http.MethodGet, "/applications/"+id+"/history", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", w.Code)
	}

	var resp struct {
		Data []struct {
			Action models.Action `json:"action"`
			Detail string        `json:"detail"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 2 {
		t.Fatalf("history: expected 2 entries, got %d", len(resp.Data))
	}
	if resp.Data[0].Action != models.ActionStatusUpdate {
		t.Fatalf("history: expected STATUS_UPDATE first, got %s", resp.Data[0].Action)
	}
	if resp.Data[0].Detail != "Başvuruldu -> Görüşüldü" {
		t.Fatalf("history: unexpected detail %q", resp.Data[0].Detail)
	}
}

func checkStatsTest(t *testing.T, r *gin.Engine) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Total != 1 {
		t.Fatalf("stats: expected total=1, got %d", resp.Data.Total)
	}
}

func deleteKeepsHistoryTest(t *testing.T, r *gin.Engine, id string) {
	req := httptest.NewRequest(http.MethodDelete, "/applications/"+id, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}

	// History is an archive: it survives the application.
	reqHist := httptest.NewRequest(http.MethodGet, "/applications/"+id+"/history", nil)
	wHist := httptest.NewRecorder()
	r.ServeHTTP(wHist, reqHist)
	if wHist.Code != http.StatusOK {
		t.Fatalf("history after delete: expected 200, got %d", wHist.Code)
	}

	var resp struct {
		Data []struct {
			Action models.Action `json:"action"`
		} `json:"data"`
	}
	json.Unmarshal(wHist.Body.Bytes(), &resp)
	if len(resp.Data) != 2 {
		t.Fatalf("history after delete: expected 2 entries, got %d", len(resp.Data))
	}
}
