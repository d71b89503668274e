package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Conceptual-Machines/songprompt/internal/api"
	"github.com/Conceptual-Machines/songprompt/internal/catalog"
	"github.com/Conceptual-Machines/songprompt/internal/config"
	"github.com/Conceptual-Machines/songprompt/internal/logger"
	"github.com/Conceptual-Machines/songprompt/internal/metrics"
	"github.com/Conceptual-Machines/songprompt/internal/prompt"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	shutdownTimeout       = 10 * time.Second
	readHeaderTimeout     = 5 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "songprompt@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			logger.Warn("Failed to initialize Sentry", logger.Fields{"error": err.Error()})
		} else {
			logger.Info("Sentry initialized", logger.Fields{
				"environment": cfg.Environment,
				"release":     releaseVersion,
			})
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		logger.Info("Sentry not configured (SENTRY_DSN not set)", nil)
	}

	if err := run(cfg); err != nil {
		logger.Error("Server stopped with error", err, nil)
		sentry.Flush(sentryFlushTimeout)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Genre tables
	cat, err := catalog.Load(catalog.Sources{
		GenrePath:    cfg.GenreCatalogPath,
		GuidancePath: cfg.GenreGuidancePath,
	})
	if err != nil {
		return err
	}
	for _, warning := range cat.Warnings() {
		logger.Warn("Genre catalog warning", logger.Fields{"warning": warning})
	}
	logger.Info("Genre catalog loaded", logger.Fields{
		"genres":        cat.Len(),
		"genre_path":    cfg.GenreCatalogPath,
		"guidance_path": cfg.GenreGuidancePath,
	})

	postProcessor, err := prompt.NewPostProcessor(prompt.NewPromptLoader(), cfg.RepetitionThreshold)
	if err != nil {
		return err
	}

	cloud, err := metrics.NewClient(ctx, cfg.Environment, cfg.CloudWatchEnabled)
	if err != nil {
		return err
	}
	recorder := metrics.NewRecorder(cloud)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(cat, cfg, recorder, postProcessor, GetVersion())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", logger.Fields{"port": cfg.Port, "version": GetVersion()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
