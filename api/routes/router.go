// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cinebook/internal/analytics"
	"cinebook/internal/auth"
	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/payments"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/shows"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier payments.Notifier

	// Shared across route groups for dependency injection.
	cacheService cache.Service
	authRepo     auth.Repository
	movieRepo    movies.Repository
	showRepo     shows.Repository
	showService  shows.Service
	bookingRepo  bookings.Repository
}

// NewRouter creates a new router instance. The notifier is built in main so
// the notification pipeline's lifecycle stays outside the HTTP layer.
func NewRouter(cfg *config.Config, db *database.DB, notifier payments.Notifier) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	if cache.IsInitialized() {
		r.cacheService = cache.NewService(cache.Client())
	}

	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupMovieRoutes(api)
		r.setupShowRoutes(api)
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	r.authRepo = auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(r.authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupMovieRoutes configures the movie catalog routes
func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	r.movieRepo = movies.NewRepository(r.db.GetPostgreSQL())
	movieService := movies.NewService(r.movieRepo)
	if r.cacheService != nil {
		movieService.SetCacheService(r.cacheService)
	}
	movieController := movies.NewController(movieService)

	movies.SetupMovieRoutes(rg, movieController)
}

// setupShowRoutes configures showtime and seat-availability routes
func (r *Router) setupShowRoutes(rg *gin.RouterGroup) {
	r.showRepo = shows.NewRepository(r.db.GetPostgreSQL())
	r.showService = shows.NewService(r.showRepo, r.movieRepo)
	if r.cacheService != nil {
		r.showService.SetCacheService(r.cacheService)
	}
	showController := shows.NewController(r.showService)

	shows.SetupShowRoutes(rg, showController)
}

// setupBookingRoutes configures booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	r.bookingRepo = bookings.NewRepository(r.db.GetPostgreSQL())
	checkout := payments.NewMockCheckoutProvider(r.config)
	bookingService := bookings.NewService(r.bookingRepo, r.showRepo, checkout)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupPaymentRoutes configures the payment webhook
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	log := logger.GetDefault()
	userLookup := auth.NewUserLookup(r.authRepo)
	paymentService := payments.NewService(r.bookingRepo, r.showRepo, r.showService, userLookup, r.notifier, log)
	paymentController := payments.NewController(paymentService, r.config, log)

	payments.SetupPaymentRoutes(rg, paymentController)
}

// setupAnalyticsRoutes configures admin analytics routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo)
	if r.cacheService != nil {
		analyticsService.SetCacheService(r.cacheService)
	}
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
