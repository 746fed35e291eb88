package handlers

import (
	"net/http"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// PrizeHandler handles prize catalog requests
type PrizeHandler struct {
	prizeService services.PrizeService
}

// NewPrizeHandler creates a new PrizeHandler
func NewPrizeHandler(prizeService services.PrizeService) *PrizeHandler {
	return &PrizeHandler{
		prizeService: prizeService,
	}
}

// ListPrizes handles GET /api/prizes
func (h *PrizeHandler) ListPrizes(c *gin.Context) {
	prizes, err := h.prizeService.ListPrizes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prizes)
}

// CreatePrize handles POST /api/prizes
func (h *PrizeHandler) CreatePrize(c *gin.Context) {
	var req models.CreatePrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	prize, err := h.prizeService.CreatePrize(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prize)
}

// UpdatePrize handles PUT /api/prizes/:id
func (h *PrizeHandler) UpdatePrize(c *gin.Context) {
	var req models.UpdatePrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	prize, err := h.prizeService.UpdatePrize(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prize)
}

// DeletePrize handles DELETE /api/prizes/:id
func (h *PrizeHandler) DeletePrize(c *gin.Context) {
	if err := h.prizeService.DeletePrize(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
