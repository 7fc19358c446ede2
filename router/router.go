package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ekaraca/bulut-istakip/controllers"
	"github.com/ekaraca/bulut-istakip/middlewares"
	"github.com/ekaraca/bulut-istakip/services"
)

// SetupRouter wires every controller onto one gin engine. The store
// handle travels inside the service; nothing here reaches for globals.
func SetupRouter(svc *services.ApplicationService) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Registered before any route: gin freezes each route's handler
	// chain at registration time, so a later Use never reaches them.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	appCtrl := controllers.NewApplicationController(svc)
	historyCtrl := controllers.NewHistoryController(svc)
	dashCtrl := controllers.NewDashboardController(svc)
	chartCtrl := controllers.NewChartController(svc, services.NewChartService())
	reportCtrl := controllers.NewReportController(svc, services.NewReportService())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// APPLICATIONS
	r.GET("/applications", appCtrl.GetAllApplications)
	r.POST("/applications", appCtrl.CreateApplication)
	r.GET("/applications/:app_id", appCtrl.GetApplicationByID)
	r.PUT("/applications/:app_id", appCtrl.UpdateApplication)
	r.DELETE("/applications/:app_id", appCtrl.DeleteApplication)

	// HISTORY
	r.GET("/applications/:app_id/history", historyCtrl.GetApplicationHistory)
	r.DELETE("/history/:history_id", historyCtrl.DeleteHistoryEntry)

	// DASHBOARD
	r.GET("/dashboard/stats", dashCtrl.GetDashboardStats)

	// CHARTS
	r.GET("/charts/status", chartCtrl.StatusChart)
	r.GET("/charts/companies", chartCtrl.CompanyChart)
	r.GET("/charts/timeline", chartCtrl.TimelineChart)

	// REPORTS - rendering is the most expensive path, keep it behind the
	// strict limiter.
	reports := r.Group("/reports")
	reports.Use(middlewares.NewStrictRateLimiter())
	{
		reports.GET("/export", reportCtrl.ExportData)
		reports.GET("/export-pdf", reportCtrl.ExportPDF)
	}

	return r
}
