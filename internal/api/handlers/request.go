package handlers

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// checkLimits rejects request bodies that are too large to process
// interactively. It writes the 400 response itself and reports false when
// the request must stop.
func checkLimits(c *gin.Context, text string, tags []string) bool {
	if n := utf8.RuneCountInString(text); n > maxTextRunes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("text too long: %d characters (max %d)", n, maxTextRunes)})
		return false
	}
	if len(tags) > maxTagsPerCall {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("too many tags: %d (max %d)", len(tags), maxTagsPerCall)})
		return false
	}
	return true
}
