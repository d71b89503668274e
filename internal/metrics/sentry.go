package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics records request and domain events as Sentry spans
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // spans are dropped by the SDK when Sentry is not configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	// Create a span for API request tracking using the request context
	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	// Set span tags
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	// Set span data
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	// Set span status based on response
	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	// Set span description
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordSelection records an instrument selection
func (m *SentryMetrics) RecordSelection(ctx context.Context, genre string, tagCount int) {
	if !m.enabled {
		return
	}

	// Tag the request transaction so selections can be filtered by genre
	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("selection.genre", genre)
		transaction.SetData("selection.tag_count", tagCount)
	}

	// Also create a child span for detailed tracking
	span := sentry.StartSpan(ctx, "selector.result")
	defer span.Finish()

	// Set span tags and data
	span.SetTag("genre", genre)
	span.SetData("tag_count", tagCount)
	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Instrument selection: %s", genre)
}

// RecordBlend records a multi-genre guidance blend
func (m *SentryMetrics) RecordBlend(ctx context.Context, genres []string, resolved bool) {
	if !m.enabled {
		return
	}

	// Create a span for blend tracking using the request context
	span := sentry.StartSpan(ctx, "blender.blend")
	defer span.Finish()

	// Set span tags
	span.SetTag("resolved", fmt.Sprintf("%t", resolved))
	// Set span data
	span.SetData("genres", genres)

	// Set span status
	if resolved {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusNotFound
	}
	span.Description = fmt.Sprintf("Blend: %s", strings.Join(genres, " + "))
}
