package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the built frontend's pages from a web root.
type PageHandler struct {
	webRoot string
}

func NewPageHandler(webRoot string) *PageHandler {
	return &PageHandler{webRoot: webRoot}
}

// Serve writes the HTML file for the request path, trying <page>.html then
// <page>/index.html. Without a matching file it answers with a JSON
// placeholder naming the page.
func (h *PageHandler) Serve(c *gin.Context) {
	page := strings.Trim(c.Request.URL.Path, "/")
	if page == "" {
		page = "index"
	}

	if h.webRoot != "" {
		for _, candidate := range []string{page + ".html", filepath.Join(page, "index.html")} {
			path := filepath.Join(h.webRoot, filepath.FromSlash(candidate))
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				c.File(path)
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"page": c.Request.URL.Path})
}

// Health handles GET|HEAD /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
