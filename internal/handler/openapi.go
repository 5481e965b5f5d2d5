package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API documentation UI.
//
// The page is a static HTML file that loads its JS from a CDN and reads
// /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

// NewOpenAPIHandler constructs an OpenAPIHandler reading from assets.
func NewOpenAPIHandler(s *server.Server, assets fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		assets:  assets,
	}
}

// ServeOpenAPIUI serves openapi.html with caching disabled so doc changes
// show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := fs.ReadFile(h.assets, "openapi.html")

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTMLBlob(http.StatusOK, templateBytes); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}

// Assets returns the documentation file system, also served under /static.
func (h *OpenAPIHandler) Assets() fs.FS {
	return h.assets
}
