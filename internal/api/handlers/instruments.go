package handlers

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/songprompt/internal/catalog"
	"github.com/Conceptual-Machines/songprompt/internal/logger"
	"github.com/Conceptual-Machines/songprompt/internal/metrics"
	"github.com/Conceptual-Machines/songprompt/internal/rng"
	"github.com/Conceptual-Machines/songprompt/internal/services"
)

type InstrumentsHandler struct {
	catalog  *catalog.Catalog
	recorder *metrics.Recorder
}

func NewInstrumentsHandler(cat *catalog.Catalog, recorder *metrics.Recorder) *InstrumentsHandler {
	return &InstrumentsHandler{catalog: cat, recorder: recorder}
}

type SelectInstrumentsRequest struct {
	Genre string `json:"genre" binding:"required"`
	// Seed makes the selection reproducible. A random seed is drawn and
	// echoed back when it is omitted.
	Seed *int64 `json:"seed,omitempty"`
}

type SelectInstrumentsResponse struct {
	Genre string   `json:"genre"`
	Seed  int64    `json:"seed"`
	Tags  []string `json:"tags"`
}

// SelectInstruments picks instrument tags for one genre
// POST /api/v1/instruments/select
func (h *InstrumentsHandler) SelectInstruments(c *gin.Context) {
	var req SelectInstrumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, ok := h.catalog.Resolve(req.Genre)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown genre: " + req.Genre})
		return
	}

	seed := rand.Int64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	start := time.Now()
	tags := services.SelectInstruments(genre, rng.New(seed))
	duration := time.Since(start)

	ctx := c.Request.Context()
	logger.LogSelection(ctx, genre.Name, seed, tags, duration)
	if h.recorder != nil {
		h.recorder.Selection(ctx, genre.Name, len(tags))
	}

	c.JSON(http.StatusOK, SelectInstrumentsResponse{
		Genre: genre.Name,
		Seed:  seed,
		Tags:  tags,
	})
}
