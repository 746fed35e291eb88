package middleware

import (
	"net/http"

	"github.com/ArowuTest/spin-wheel-backend/internal/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// SessionCookie carries the signed admin session token
const SessionCookie = "admin_token"

// IsAdmin reports whether the request carries a valid admin session cookie
func IsAdmin(c *gin.Context, authService services.AuthService) bool {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return false
	}
	return authService.VerifyToken(token)
}

// AdminAPIMiddleware rejects API calls without a valid admin session.
func AdminAPIMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c, authService) {
			slog.Warn("Unauthorized admin API call", "method", c.Request.Method, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}
		c.Next()
	}
}

// AdminPageMiddleware guards the admin panel files. Page loads without a
// session get the login page with status 200; anything else gets 401.
func AdminPageMiddleware(authService services.AuthService, loginPage []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAdmin(c, authService) {
			c.Next()
			return
		}
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead {
			c.Header("Cache-Control", "no-store")
			c.Data(http.StatusOK, "text/html; charset=utf-8", loginPage)
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
	}
}
