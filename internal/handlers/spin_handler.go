package handlers

import (
	"errors"
	"net/http"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// SpinHandler handles the public wheel endpoints
type SpinHandler struct {
	spinService services.SpinService
}

// NewSpinHandler creates a new SpinHandler
func NewSpinHandler(spinService services.SpinService) *SpinHandler {
	return &SpinHandler{
		spinService: spinService,
	}
}

// Spin handles POST /api/spin
func (h *SpinHandler) Spin(c *gin.Context) {
	var req models.SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "DNI debe tener 8 dígitos"})
		return
	}

	result, err := h.spinService.Spin(c.Request.Context(), req.DNI)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"prize":    result.Prize,
		"redirect": result.Redirect,
	})
}

// LastPrize handles GET /api/last-prize/:dni
func (h *SpinHandler) LastPrize(c *gin.Context) {
	view, err := h.spinService.LastPrize(c.Request.Context(), c.Param("dni"))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sin registro de premio para este DNI"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
