package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gisteam.backend/pkg/logger"
)

const (
	serviceName    = "gisteam-backend"
	serviceVersion = "0.3.0"
)

// Probe checks that a dependency answers.
type Probe func(ctx context.Context) error

type HealthHandler struct {
	probe   Probe
	timeout time.Duration
}

// NewHealthHandler creates a health handler. probe may be nil.
func NewHealthHandler(probe Probe) *HealthHandler {
	return &HealthHandler{probe: probe, timeout: 3 * time.Second}
}

// Live reports that the process is serving.
// GET /health
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// Ready reports whether the object store answers.
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.probe != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if err := h.probe(ctx); err != nil {
			logger.Warn(ctx, "Readiness probe failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
