package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inhouse-labs/soundlab-api/internal/api/handlers"
	apimiddleware "github.com/inhouse-labs/soundlab-api/internal/api/middleware"
	"github.com/inhouse-labs/soundlab-api/internal/config"
	"github.com/inhouse-labs/soundlab-api/internal/metrics"
	"github.com/inhouse-labs/soundlab-api/internal/samples"
	"github.com/inhouse-labs/soundlab-api/internal/services"
	"gorm.io/gorm"
)

// SetupRouter wires middleware and routes. db and cw may be nil-equivalent
// (stateless mode, metrics disabled) without affecting the synthesis routes.
func SetupRouter(db *gorm.DB, cfg *config.Config, cw *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Shared state: sample library and optional persistence
	library := samples.NewLibrary()
	var patternService *services.PatternService
	if db != nil {
		patternService = services.NewPatternService(db)
	}

	// Auth middleware by mode
	auth := apimiddleware.NoAuth()
	if cfg.IsGatewayMode() {
		auth = apimiddleware.GatewayAuth()
	}

	v1 := router.Group("/api/v1")
	v1.Use(auth)
	{
		// Synthesis: pattern in, WAV out
		renderHandler := handlers.NewRenderHandler(cfg, library, patternService, cw)
		v1.POST("/render", renderHandler.Render)

		// Pattern and hook generators
		patternHandler := handlers.NewPatternHandler(cfg, patternService, cw, time.Now().UnixNano())
		v1.POST("/patterns/generate", patternHandler.Generate)
		v1.GET("/hooks/next", patternHandler.NextHook)
		v1.POST("/hooks/reset", patternHandler.ResetHooks)

		// Saved patterns (db-backed)
		v1.POST("/patterns", patternHandler.Save)
		v1.GET("/patterns", patternHandler.List)
		v1.DELETE("/patterns/:id", patternHandler.Delete)

		// External sample library
		sampleHandler := handlers.NewSampleHandler(library, cw)
		v1.PUT("/samples/:token", sampleHandler.Upload)
		v1.GET("/samples", sampleHandler.List)
		v1.DELETE("/samples/:token", sampleHandler.Delete)
	}

	return router
}
