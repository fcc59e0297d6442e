// Package api exposes the cleaning pipeline over HTTP for the web UI:
// one processing endpoint, result re-display and the workbook download.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/config"
)

// Handler holds the API state: configuration and the session run cache.
type Handler struct {
	cfg  *config.AppConfig
	runs *runStore
}

// NewHandler creates the API handler.
func NewHandler(cfg *config.AppConfig) *Handler {
	return &Handler{
		cfg:  cfg,
		runs: newRunStore(time.Duration(cfg.Data.RunTTLMinutes) * time.Minute),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// service status
	router.GET("/status", h.GetStatus)

	// one-shot processing of an upload triple
	router.POST("/process", h.Process)

	// session re-display and export
	router.GET("/runs/:id", h.GetRun)
	router.GET("/runs/:id/results/:name", h.GetResult)
	router.GET("/runs/:id/export", h.Export)
}
