package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/ekaraca/bulut-istakip/config"
	"github.com/ekaraca/bulut-istakip/router"
	"github.com/ekaraca/bulut-istakip/services"
	"github.com/ekaraca/bulut-istakip/sheets"
	"github.com/ekaraca/bulut-istakip/store"
	"github.com/ekaraca/bulut-istakip/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Configuration error: %v", err)
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	spreadsheet, err := openSpreadsheet(ctx, cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to the store: %v", err)
	}

	st := store.New(spreadsheet)
	if err := st.EnsureSchema(ctx); err != nil {
		utils.ErrorLogger.Fatalf("Failed to prepare worksheets: %v", err)
	}

	svc := services.NewApplicationService(st)
	r := router.SetupRouter(svc)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// openSpreadsheet picks the backend: the shared Google sheet when one is
// configured, otherwise a local SQLite file.
func openSpreadsheet(ctx context.Context, cfg *config.Config) (store.Spreadsheet, error) {
	if cfg.RemoteStore() {
		var opt option.ClientOption
		if cfg.CredentialsJSON != "" {
			opt = option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))
		} else {
			opt = option.WithCredentialsFile(cfg.CredentialsFile)
		}
		utils.InfoLogger.Printf("Using Google Sheets store (spreadsheet %s)", cfg.SpreadsheetID)
		return sheets.NewClient(ctx, cfg.SpreadsheetID, opt)
	}
	utils.InfoLogger.Printf("Using local store at %s", cfg.LocalDBPath)
	return store.OpenLocal(cfg.LocalDBPath)
}
