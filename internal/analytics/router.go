package analytics

import (
	"github.com/gin-gonic/gin"

	"cinebook/internal/shared/middleware"
)

func SetupAnalyticsRoutes(router *gin.RouterGroup, controller Controller) {
	analytics := router.Group("/analytics")
	analytics.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		analytics.GET("/dashboard", controller.GetDashboardAnalytics)
		analytics.GET("/movies", controller.GetMoviePerformance)
		analytics.GET("/shows/:showId/occupancy", controller.GetShowOccupancy)
	}
}
