package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/songprompt/internal/logger"
	"github.com/Conceptual-Machines/songprompt/internal/metrics"
	"github.com/Conceptual-Machines/songprompt/internal/rng"
	"github.com/Conceptual-Machines/songprompt/internal/services"
)

type GuidanceHandler struct {
	blender  *services.Blender
	recorder *metrics.Recorder
}

func NewGuidanceHandler(blender *services.Blender, recorder *metrics.Recorder) *GuidanceHandler {
	return &GuidanceHandler{blender: blender, recorder: recorder}
}

// BlendRequest takes either free text ("jazz rock", "trap x synthwave") or
// pre-split tokens. Tokens win when both are given.
type BlendRequest struct {
	Genres string   `json:"genres"`
	Tokens []string `json:"tokens"`
	Seed   *int64   `json:"seed,omitempty"`
}

type BlendResponse struct {
	// Guidance is the rendered text block, null when no token resolved.
	Guidance *string            `json:"guidance"`
	Details  *services.Guidance `json:"details,omitempty"`
}

// Blend merges the guidance of every recognised genre in the request
// POST /api/v1/guidance/blend
func (h *GuidanceHandler) Blend(c *gin.Context) {
	var req BlendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Genres == "" && len(req.Tokens) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "genres or tokens is required"})
		return
	}
	if len(req.Tokens) > maxGenreTokens {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("too many tokens: %d (max %d)", len(req.Tokens), maxGenreTokens)})
		return
	}
	if !checkLimits(c, req.Genres, nil) {
		return
	}

	// Without a seed the blender derives one from the resolved genre names.
	var src rng.Source
	if req.Seed != nil {
		src = rng.New(*req.Seed)
	}

	var guidance *services.Guidance
	requested := req.Tokens
	if len(req.Tokens) > 0 {
		guidance = h.blender.Blend(req.Tokens, src)
	} else {
		guidance = h.blender.BlendText(req.Genres, src)
		requested = []string{req.Genres}
	}

	resolved := guidance != nil
	genres := requested
	if resolved {
		genres = guidance.Genres
	}
	if h.recorder != nil {
		h.recorder.Blend(c.Request.Context(), genres, resolved)
	}

	if !resolved {
		logger.Debug("No genre resolved for blend", logger.Fields{
			"request_id": c.GetString("request_id"),
			"requested":  requested,
		})
		c.JSON(http.StatusOK, BlendResponse{})
		return
	}

	text := guidance.String()
	c.JSON(http.StatusOK, BlendResponse{
		Guidance: &text,
		Details:  guidance,
	})
}
