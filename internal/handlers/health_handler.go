package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/repositories"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// HealthHandler reports liveness of the process and its store
type HealthHandler struct {
	store repositories.Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(store repositories.Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		slog.Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
