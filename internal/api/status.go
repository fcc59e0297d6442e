package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse describes the running service.
type StatusResponse struct {
	Service    string `json:"service"`
	ActiveRuns int    `json:"activeRuns"` // cached runs not yet expired
	TTLMinutes int    `json:"ttlMinutes"`
}

// GetStatus returns the service status.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Service:    "life-jde-analysis",
		ActiveRuns: h.runs.count(),
		TTLMinutes: h.cfg.Data.RunTTLMinutes,
	})
}
