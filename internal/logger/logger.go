package logger

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Fields represents structured log fields
type Fields map[string]interface{}

var base atomic.Pointer[zap.SugaredLogger]

func init() {
	base.Store(zap.NewNop().Sugar())
}

// Init builds the process logger. Production gets JSON output at info level,
// everything else the human-readable development encoder at debug level.
func Init(environment string) error {
	var cfg zap.Config
	switch strings.ToLower(environment) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	base.Store(zapLogger.Sugar())
	return nil
}

// Replace swaps the process logger and returns a func restoring the previous
// one.
func Replace(l *zap.Logger) func() {
	prev := base.Swap(l.WithOptions(zap.AddCallerSkip(1)).Sugar())
	return func() { base.Store(prev) }
}

// Sync flushes buffered log entries.
func Sync() {
	_ = base.Load().Sync()
}

// WithContext extracts request context for logging
func WithContext(c *gin.Context) Fields {
	return Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}
}

// Info logs an informational message with structured fields
func Info(msg string, fields Fields) {
	base.Load().Infow(msg, keysAndValues(fields)...)
	breadcrumb("info", msg, fields, sentry.LevelInfo)
}

// Warn logs a warning message with structured fields
func Warn(msg string, fields Fields) {
	base.Load().Warnw(msg, keysAndValues(fields)...)
	breadcrumb("warning", msg, fields, sentry.LevelWarning)
}

// Debug logs a debug message with structured fields
func Debug(msg string, fields Fields) {
	base.Load().Debugw(msg, keysAndValues(fields)...)
	breadcrumb("debug", msg, fields, sentry.LevelDebug)
}

// Error logs an error message with structured fields and sends err to Sentry
func Error(msg string, err error, fields Fields) {
	base.Load().Errorw(msg, append(keysAndValues(fields), "error", err)...)

	if hub := sentry.CurrentHub(); hub.Client() != nil && err != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			applyScope(scope, fields)
			hub.CaptureException(err)
		})
	}
}

// LogAPIRequest logs API request metrics
func LogAPIRequest(c *gin.Context, duration time.Duration, statusCode int, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}

	fields["duration_ms"] = duration.Milliseconds()
	fields["status_code"] = statusCode
	fields["request_id"] = c.GetString("request_id")
	fields["method"] = c.Request.Method
	fields["path"] = c.Request.URL.Path
	fields["client_ip"] = c.ClientIP()

	Info("API request completed", fields)
}

// LogSelection records an instrument selection and times it as a Sentry span
// when the request carries a hub.
func LogSelection(ctx context.Context, genre string, seed int64, tags []string, duration time.Duration) {
	Debug("Instruments selected", Fields{
		"genre":       genre,
		"seed":        seed,
		"tag_count":   len(tags),
		"duration_us": duration.Microseconds(),
	})

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		span := sentry.StartSpan(ctx, "selector.select_instruments")
		span.Description = genre
		span.SetData("seed", seed)
		span.SetData("tags", tags)
		span.Finish()
	}
}

// LogToSentry sends a log message directly to Sentry as an event
func LogToSentry(level sentry.Level, msg string, fields Fields) {
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetLevel(level)
			applyScope(scope, fields)
			hub.CaptureMessage(msg)
		})
	}
}

func breadcrumb(kind, msg string, fields Fields, level sentry.Level) {
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     kind,
			Category: "log",
			Message:  msg,
			Data:     convertFieldsToMap(fields),
			Level:    level,
		}, nil)
	}
}

func applyScope(scope *sentry.Scope, fields Fields) {
	for key, value := range fields {
		scope.SetContext(key, map[string]interface{}{
			"value": value,
		})
	}
	// Tags for filtering in Sentry
	for _, tag := range []string{"request_id", "genre"} {
		if v, ok := fields[tag].(string); ok {
			scope.SetTag(tag, v)
		}
	}
}

// keysAndValues flattens fields for zap in a stable key order.
func keysAndValues(fields Fields) []interface{} {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	return kv
}

func convertFieldsToMap(fields Fields) map[string]interface{} {
	result := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		result[k] = v
	}
	return result
}
