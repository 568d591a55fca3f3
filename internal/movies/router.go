package movies

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMovieRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse the catalog
	publicMovies := router.Group("/movies")
	{
		publicMovies.GET("", controller.GetAllMovies)
		publicMovies.GET("/:movieId", controller.GetMovie)
	}

	// Admin routes - catalog management
	adminMovies := router.Group("/admin/movies")
	adminMovies.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminMovies.POST("", controller.CreateMovie)
		adminMovies.DELETE("/:movieId", controller.DeleteMovie)
	}
}
