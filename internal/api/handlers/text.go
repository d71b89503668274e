package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/songprompt/internal/prompt"
)

type TextHandler struct {
	postProcessor   *prompt.PostProcessor
	defaultMaxChars int
}

func NewTextHandler(postProcessor *prompt.PostProcessor, defaultMaxChars int) *TextHandler {
	return &TextHandler{postProcessor: postProcessor, defaultMaxChars: defaultMaxChars}
}

type TextRequest struct {
	Text string `json:"text"`
}

type TruncateRequest struct {
	Text         string `json:"text"`
	MaxChars     int    `json:"max_chars"`
	LockedPhrase string `json:"locked_phrase"`
}

func (h *TextHandler) bindText(c *gin.Context) (string, bool) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	if !checkLimits(c, req.Text, nil) {
		return "", false
	}
	return req.Text, true
}

// StripMeta removes leaked instruction lines from model output
// POST /api/v1/text/strip-meta
func (h *TextHandler) StripMeta(c *gin.Context) {
	text, ok := h.bindText(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.postProcessor.StripLeakedMetaLines(text)})
}

// Truncate cuts text to a character budget, keeping the locked phrase
// POST /api/v1/text/truncate
func (h *TextHandler) Truncate(c *gin.Context) {
	var req TruncateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !checkLimits(c, req.Text, nil) {
		return
	}

	maxChars := req.MaxChars
	if maxChars <= 0 {
		maxChars = h.defaultMaxChars
	}
	if maxChars > maxPromptBudget {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("max_chars %d exceeds %d", maxChars, maxPromptBudget)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":      prompt.TruncateToLimit(req.Text, maxChars, req.LockedPhrase),
		"max_chars": maxChars,
	})
}

// ValidateFormat normalises section headers and field encoding
// POST /api/v1/text/validate-format
func (h *TextHandler) ValidateFormat(c *gin.Context) {
	text, ok := h.bindText(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.postProcessor.ValidateAndFixFormat(text)})
}

// RepeatedWords lists overused words in the lyric body
// POST /api/v1/text/repeated-words
func (h *TextHandler) RepeatedWords(c *gin.Context) {
	text, ok := h.bindText(c)
	if !ok {
		return
	}
	words := h.postProcessor.DetectRepeatedWords(text)
	if words == nil {
		words = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"words":     words,
		"threshold": h.postProcessor.Threshold(),
	})
}
