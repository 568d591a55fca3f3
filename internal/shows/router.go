package shows

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupShowRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - browsing showtimes and seat availability
	publicShows := router.Group("/shows")
	{
		publicShows.GET("/upcoming", controller.GetUpcomingShows)
		publicShows.GET("/:showId", controller.GetShow)
		publicShows.GET("/:showId/seats", controller.GetOccupiedSeats)
	}

	router.GET("/movies/:movieId/shows", controller.GetShowsByMovie)

	// Admin routes - schedule management
	adminShows := router.Group("/admin/shows")
	adminShows.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminShows.POST("", controller.CreateShow)
		adminShows.DELETE("/:showId", controller.DeleteShow)
	}
}
