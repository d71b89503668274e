package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Conceptual-Machines/songprompt/internal/logger"
	"github.com/Conceptual-Machines/songprompt/internal/metrics"
)

const (
	httpStatusBadRequest          = http.StatusBadRequest
	httpStatusInternalServerError = http.StatusInternalServerError
	sentryFlushTimeout            = 2 * time.Second
	requestIDHeader               = "X-Request-ID"
)

// RequestTracking adds request ID and logging to all requests
func RequestTracking(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Generate request ID, keeping a caller-supplied one so traces line
		// up across services
		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)

		// Add to response header
		c.Header(requestIDHeader, requestID)

		// Start timer
		start := time.Now()

		// Process request
		c.Next()

		// Log request completion
		duration := time.Since(start)
		statusCode := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		fields := logger.Fields{
			"request_id":  requestID,
			"duration_ms": duration.Milliseconds(),
			"status_code": statusCode,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"client_ip":   c.ClientIP(),
		}

		// Log based on status code
		switch {
		case statusCode >= httpStatusInternalServerError:
			logger.Error("Request failed with server error", nil, fields)
		case statusCode >= httpStatusBadRequest:
			logger.Warn("Request failed with client error", fields)
		default:
			logger.Info("Request completed", fields)
		}

		// Record API metrics in Sentry and CloudWatch
		if recorder != nil {
			recorder.APIRequest(c.Request.Context(), endpoint, statusCode, duration)
		}
	}
}

// SentryMiddleware returns the Sentry middleware with custom configuration
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         sentryFlushTimeout,
	})
}

// RecoverWithSentry recovers from panics and sends them to Sentry
func RecoverWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// Capture panic in Sentry
				if hub := sentrygin.GetHubFromContext(c); hub != nil {
					hub.WithScope(func(scope *sentry.Scope) {
						scope.SetRequest(c.Request)
						scope.SetContext("request", map[string]interface{}{
							"request_id": c.GetString("request_id"),
							"method":     c.Request.Method,
							"path":       c.Request.URL.Path,
							"client_ip":  c.ClientIP(),
						})
						hub.RecoverWithContext(c.Request.Context(), err)
					})
				}

				// Log the panic
				logger.Error("Panic recovered", fmt.Errorf("%v", err), logger.Fields{
					"request_id": c.GetString("request_id"),
					"path":       c.Request.URL.Path,
				})

				// Return 500
				c.AbortWithStatusJSON(httpStatusInternalServerError, gin.H{
					"error":      "Internal server error",
					"request_id": c.GetString("request_id"),
				})
			}
		}()
		c.Next()
	}
}
