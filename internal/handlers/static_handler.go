package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the public site, the result page and the admin panel files
type StaticHandler struct {
	dir        string
	publicFS   http.Handler
	adminFS    http.Handler
	resultPage string
}

// NewStaticHandler creates a StaticHandler rooted at dir
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{
		dir:        dir,
		publicFS:   http.FileServer(http.Dir(dir)),
		adminFS:    http.StripPrefix("/admin", http.FileServer(http.Dir(filepath.Join(dir, "admin")))),
		resultPage: filepath.Join(dir, "premio.html"),
	}
}

// AdminFiles serves /admin and /admin/*filepath. Only reached once the admin gate allowed the request.
func (h *StaticHandler) AdminFiles(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Método no permitido"})
		return
	}
	if c.Request.URL.Path == "/admin" {
		c.Redirect(http.StatusMovedPermanently, "/admin/")
		return
	}
	h.adminFS.ServeHTTP(c.Writer, c.Request)
}

// ResultPage handles GET /premio/:dni; the page itself fetches /api/last-prize/:dni
func (h *StaticHandler) ResultPage(c *gin.Context) {
	c.File(h.resultPage)
}

// Fallback serves public files for unmatched GET requests outside /api
func (h *StaticHandler) Fallback(c *gin.Context) {
	method := c.Request.Method
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || (method != http.MethodGet && method != http.MethodHead) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No encontrado"})
		return
	}
	h.publicFS.ServeHTTP(c.Writer, c.Request)
}
