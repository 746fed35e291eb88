package handlers

import (
	"net/http"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// ConfigHandler handles business configuration requests
type ConfigHandler struct {
	configService services.ConfigService
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(configService services.ConfigService) *ConfigHandler {
	return &ConfigHandler{
		configService: configService,
	}
}

// GetConfig handles GET /api/config
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := h.configService.GetConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig handles PUT /api/config
func (h *ConfigHandler) UpdateConfig(c *gin.Context) {
	var req models.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	cfg, err := h.configService.UpdateConfig(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "config": cfg})
}
