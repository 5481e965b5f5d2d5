package router

import (
	"github.com/deppfellow/contacts-service/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// contacts API: health, metrics and documentation.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/metrics", h.Metrics.ServeMetrics)

	// openapi.json and openapi.html from the embedded assets.
	r.StaticFS("/static", h.OpenAPI.Assets())

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
