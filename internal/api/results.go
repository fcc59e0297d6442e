package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRun returns the per-rule row counts of an earlier run.
// GET /api/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	results, ok := h.runs.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found or expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runId":  c.Param("id"),
		"counts": results.Counts(),
	})
}

// GetResult returns one materialized result table.
// GET /api/runs/:id/results/:name
func (h *Handler) GetResult(c *gin.Context) {
	results, ok := h.runs.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found or expired"})
		return
	}

	t, ok := results.Table(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown result table"})
		return
	}

	c.JSON(http.StatusOK, toTableJSON(t))
}
