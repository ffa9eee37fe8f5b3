package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ajharbinger/golfleague-skins/internal/services"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, svc *services.Services, db HealthChecker, gatherer prometheus.Gatherer) {
	healthHandler := NewHealthHandler(db)
	configHandler := NewConfigHandler(svc.Courses)
	scoresHandler := NewScoresHandler(svc.Scores)
	skinsHandler := NewSkinsHandler(svc.Skins)
	uploadHandler := NewUploadHandler(svc.Scores, svc.Skins)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.GetHealth)
		v1.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

		league := v1.Group("/leagues/:league")

		// Course configuration
		league.POST("/config", configHandler.SaveConfig)
		league.GET("/config", configHandler.GetConfig)

		// Score sheets
		league.POST("/scores", scoresHandler.SaveScores)
		league.GET("/scores", scoresHandler.ListScores)
		league.GET("/scores/:year/:round", scoresHandler.GetScores)

		// Skins
		league.POST("/skins/calculate", skinsHandler.Calculate)
		league.POST("/skins/:year/recalculate", skinsHandler.Recalculate)
		league.GET("/skins", skinsHandler.ListResults)
		league.GET("/skins/:year/summary", skinsHandler.GetSummary)
		league.GET("/skins/:year/:round", skinsHandler.GetResult)
		league.GET("/skins/:year/:round/winners", skinsHandler.GetWinners)

		// Workbook import
		league.POST("/upload/xlsx", uploadHandler.UploadWorkbook)
	}
}
