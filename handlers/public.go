package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index shows how many records the directory holds.
func (h *Handler) Index(c *gin.Context) {
	counts, err := h.svc.Counts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":  "Halal Restaurants Home",
		"Counts": counts,
	})
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Halal Restaurant Directory",
		"version": "1.0.0",
	})
}
