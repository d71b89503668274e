package handlers

import (
	"math/rand/v2"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/songprompt/internal/prompt"
)

type PromptHandler struct {
	builder *prompt.Builder
}

func NewPromptHandler(builder *prompt.Builder) *PromptHandler {
	return &PromptHandler{builder: builder}
}

type FieldRequest struct {
	Text    string `json:"text"`
	Field   string `json:"field" binding:"required"`
	Op      string `json:"op"`
	Value   string `json:"value"`
	MaxMode *bool  `json:"max_mode,omitempty"`
}

type FieldResponse struct {
	Text  string `json:"text,omitempty"`
	Value string `json:"value,omitempty"`
	Found bool   `json:"found"`
	Mode  string `json:"mode"`
}

// Field reads or edits one tagged field of a prompt
// POST /api/v1/prompt/field
func (h *PromptHandler) Field(c *gin.Context) {
	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !checkLimits(c, req.Text+req.Value, nil) {
		return
	}

	field, ok := prompt.ParseField(req.Field)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field: " + req.Field})
		return
	}

	// Insertion encoding follows the prompt unless the caller forces one.
	mode := prompt.DetectMode(req.Text)
	if req.MaxMode != nil {
		mode = prompt.ModeFromFlag(*req.MaxMode)
	}

	value, found := prompt.GetField(req.Text, field)
	resp := FieldResponse{Found: found, Mode: mode.String()}

	switch req.Op {
	case "", opGet:
		resp.Value = value
	case opReplace:
		resp.Text = prompt.ReplaceField(req.Text, field, req.Value)
	case opInsert:
		resp.Text = prompt.InsertField(req.Text, field, req.Value, mode)
	case opSet:
		resp.Text = prompt.SetField(req.Text, field, req.Value, mode)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown op: " + req.Op})
		return
	}

	c.JSON(http.StatusOK, resp)
}

type InjectInstrumentsRequest struct {
	Text     string   `json:"text"`
	Tags     []string `json:"tags"`
	MaxMode  bool     `json:"max_mode"`
	MaxItems int      `json:"max_items"`
}

// InjectInstruments merges tags into the Instruments field
// POST /api/v1/prompt/instruments
func (h *PromptHandler) InjectInstruments(c *gin.Context) {
	var req InjectInstrumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !checkLimits(c, req.Text, req.Tags) {
		return
	}

	text := h.builder.InjectInstrumentTags(req.Text, req.Tags, req.MaxMode, req.MaxItems)
	instruments, _ := prompt.GetField(text, prompt.FieldInstruments)
	c.JSON(http.StatusOK, gin.H{
		"text":        text,
		"instruments": instruments,
		"changed":     text != req.Text,
	})
}

type InjectVocalStyleRequest struct {
	Text        string `json:"text"`
	Description string `json:"description" binding:"required"`
	MaxMode     bool   `json:"max_mode"`
	MaxItems    int    `json:"max_items"`
}

// InjectVocalStyle replaces vocal-style items in the Instruments field with
// the parsed description
// POST /api/v1/prompt/vocal-style
func (h *PromptHandler) InjectVocalStyle(c *gin.Context) {
	var req InjectVocalStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !checkLimits(c, req.Text+req.Description, nil) {
		return
	}

	text := h.builder.InjectVocalStyle(req.Text, req.Description, req.MaxMode, req.MaxItems)
	instruments, _ := prompt.GetField(text, prompt.FieldInstruments)
	c.JSON(http.StatusOK, gin.H{
		"text":        text,
		"instruments": instruments,
		"changed":     text != req.Text,
	})
}

type ApplyGenreRequest struct {
	Text    string `json:"text"`
	Genre   string `json:"genre" binding:"required"`
	Seed    *int64 `json:"seed,omitempty"`
	MaxMode bool   `json:"max_mode"`
}

// ApplyGenre selects instruments for the genres in the request and writes
// them into the prompt
// POST /api/v1/prompt/genre-instruments
func (h *PromptHandler) ApplyGenre(c *gin.Context) {
	var req ApplyGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !checkLimits(c, req.Text+req.Genre, nil) {
		return
	}

	seed := rand.Int64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	text, tags, ok := h.builder.ApplyGenreInstruments(req.Text, req.Genre, seed, req.MaxMode)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown genre: " + req.Genre})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"text": text,
		"tags": tags,
		"seed": seed,
	})
}
