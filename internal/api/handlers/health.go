package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/songprompt/internal/catalog"
)

type HealthHandler struct {
	catalog *catalog.Catalog
}

func NewHealthHandler(cat *catalog.Catalog) *HealthHandler {
	return &HealthHandler{catalog: cat}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.catalog == nil || h.catalog.Len() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "genre catalog not loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"catalog": gin.H{
			"genres":   h.catalog.Len(),
			"warnings": len(h.catalog.Warnings()),
		},
	})
}
