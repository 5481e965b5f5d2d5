package handler

import (
	"net/http"

	"github.com/VictoriaMetrics/metrics"
	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsHandler exposes the server's metrics set in Prometheus text format.
type MetricsHandler struct {
	Handler
}

func NewMetricsHandler(s *server.Server) *MetricsHandler {
	return &MetricsHandler{
		Handler: NewHandler(s),
	}
}

// ServeMetrics writes request and repository metrics followed by the Go
// runtime and process metrics.
func (h *MetricsHandler) ServeMetrics(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/plain; version=0.0.4; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)

	w := c.Response().Writer
	if h.server.Metrics != nil {
		h.server.Metrics.WritePrometheus(w)
	}
	metrics.WriteProcessMetrics(w)

	return nil
}
