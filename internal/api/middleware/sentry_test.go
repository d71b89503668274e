package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Conceptual-Machines/songprompt/internal/logger"
	"github.com/Conceptual-Machines/songprompt/internal/metrics"
)

func newTestRouter(recorder *metrics.Recorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoverWithSentry())
	r.Use(RequestTracking(recorder))
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("request_id")})
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func TestRequestTrackingSetsRequestID(t *testing.T) {
	recorder := metrics.NewRecorder(nil)
	r := newTestRouter(recorder)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(requestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Contains(t, w.Body.String(), id)
	assert.Equal(t, int64(1), recorder.Snapshot()["requests"])
}

func TestRequestTrackingKeepsIncomingID(t *testing.T) {
	r := newTestRouter(nil)
	incoming := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(requestIDHeader, incoming)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, incoming, w.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(requestIDHeader))
}

func TestRecoverWithSentry(t *testing.T) {
	r := newTestRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestRecoverWithSentryLogsError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	r := newTestRouter(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	recovered := logs.FilterMessage("Panic recovered").All()
	require.Len(t, recovered, 1)
	assert.Equal(t, zapcore.ErrorLevel, recovered[0].Level)
	assert.Contains(t, recovered[0].ContextMap()["error"], "boom")
}
