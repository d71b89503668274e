package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/songprompt/internal/services"
)

type TagsHandler struct{}

func NewTagsHandler() *TagsHandler {
	return &TagsHandler{}
}

type MergeTagsRequest struct {
	CSV             string   `json:"csv"`
	Tags            []string `json:"tags"`
	MaxItems        int      `json:"max_items"`
	StripVocalStyle bool     `json:"strip_vocal_style"`
}

// Merge combines an existing tag list with new tags
// POST /api/v1/tags/merge
func (h *TagsHandler) Merge(c *gin.Context) {
	var req MergeTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !checkLimits(c, req.CSV, req.Tags) {
		return
	}

	merged := services.MergeInstrumentTags(req.CSV, req.Tags, services.MergeOptions{
		MaxItems:        req.MaxItems,
		StripVocalStyle: req.StripVocalStyle,
	})
	items := services.SplitCSV(merged)
	if items == nil {
		items = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"csv":   merged,
		"items": items,
	})
}
