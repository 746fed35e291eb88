package handlers

import (
	"errors"
	"net/http"

	"github.com/ArowuTest/spin-wheel-backend/internal/middleware"
	"github.com/ArowuTest/spin-wheel-backend/internal/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// respondError maps service errors onto status codes and user-facing messages.
// Unclassified errors are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		rateLimited   *services.RateLimitedError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &rateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     rateLimited.Error(),
			"retryInMs": rateLimited.RetryInMs(),
		})
	case errors.Is(err, services.ErrCatalogEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No hay premios configurados"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No encontrado"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Código incorrecto"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
	case errors.Is(err, services.ErrSpinConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Ya hay un giro en curso para este DNI"})
	default:
		slog.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "requestId", c.GetString(middleware.RequestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
	}
}
