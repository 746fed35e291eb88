package handlers

import (
	"net/http"

	"github.com/ArowuTest/spin-wheel-backend/internal/middleware"
	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	authService  services.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the session cookie Secure (production).
func NewAuthHandler(authService services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	// a malformed body is just a wrong code
	_ = c.ShouldBindJSON(&req)

	session, err := h.authService.IssueToken(req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, session.Token, int(session.TTL.Seconds()), "/", "", h.secureCookie, true)
	slog.Info("Admin logged in", "clientIp", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout handles POST /api/admin/logout. Only this browser's cookie is
// cleared; other issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Session handles GET /api/admin/session
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": middleware.IsAdmin(c, h.authService)})
}
