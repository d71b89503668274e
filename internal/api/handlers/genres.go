package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/songprompt/internal/catalog"
)

type GenresHandler struct {
	catalog *catalog.Catalog
}

func NewGenresHandler(cat *catalog.Catalog) *GenresHandler {
	return &GenresHandler{catalog: cat}
}

// ListGenres returns the canonical names of every catalog genre
// GET /api/v1/genres
func (h *GenresHandler) ListGenres(c *gin.Context) {
	names := h.catalog.Names()
	c.JSON(http.StatusOK, gin.H{
		"genres": names,
		"count":  len(names),
	})
}

// GetGenre resolves a name or keyword and returns the definition with its guidance
// GET /api/v1/genres/:name
func (h *GenresHandler) GetGenre(c *gin.Context) {
	name := c.Param("name")
	def, ok := h.catalog.Resolve(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown genre: " + name})
		return
	}

	resp := gin.H{"genre": def}
	if guidance, ok := h.catalog.Guidance(def.Name); ok {
		resp["guidance"] = guidance
	}
	c.JSON(http.StatusOK, resp)
}
