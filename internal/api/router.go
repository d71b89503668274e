package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/songprompt/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/songprompt/internal/api/middleware"
	"github.com/Conceptual-Machines/songprompt/internal/catalog"
	"github.com/Conceptual-Machines/songprompt/internal/config"
	"github.com/Conceptual-Machines/songprompt/internal/metrics"
	"github.com/Conceptual-Machines/songprompt/internal/prompt"
	"github.com/Conceptual-Machines/songprompt/internal/services"
)

func SetupRouter(
	cat *catalog.Catalog,
	cfg *config.Config,
	recorder *metrics.Recorder,
	postProcessor *prompt.PostProcessor,
	version string,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(recorder))

	// Health check
	healthHandler := handlers.NewHealthHandler(cat)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, recorder)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	v1 := router.Group("/api/v1")
	{
		genresHandler := handlers.NewGenresHandler(cat)
		v1.GET("/genres", genresHandler.ListGenres)
		v1.GET("/genres/:name", genresHandler.GetGenre)

		instrumentsHandler := handlers.NewInstrumentsHandler(cat, recorder)
		v1.POST("/instruments/select", instrumentsHandler.SelectInstruments)

		guidanceHandler := handlers.NewGuidanceHandler(services.NewBlender(cat), recorder)
		v1.POST("/guidance/blend", guidanceHandler.Blend)

		promptHandler := handlers.NewPromptHandler(prompt.NewPromptBuilder(cat, cfg.MaxInstrumentTags))
		promptRoutes := v1.Group("/prompt")
		promptRoutes.POST("/field", promptHandler.Field)
		promptRoutes.POST("/instruments", promptHandler.InjectInstruments)
		promptRoutes.POST("/vocal-style", promptHandler.InjectVocalStyle)
		promptRoutes.POST("/genre-instruments", promptHandler.ApplyGenre)

		tagsHandler := handlers.NewTagsHandler()
		v1.POST("/tags/merge", tagsHandler.Merge)

		textHandler := handlers.NewTextHandler(postProcessor, cfg.MaxPromptChars)
		textRoutes := v1.Group("/text")
		textRoutes.POST("/strip-meta", textHandler.StripMeta)
		textRoutes.POST("/truncate", textHandler.Truncate)
		textRoutes.POST("/validate-format", textHandler.ValidateFormat)
		textRoutes.POST("/repeated-words", textHandler.RepeatedWords)
	}

	return router
}
