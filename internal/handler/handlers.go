package handler

import (
	"io/fs"

	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/deppfellow/contacts-service/internal/service"
)

// Handlers groups every HTTP handler so router setup takes a single value.
type Handlers struct {
	Contact *ContactHandler // Contact serves the /contacts resource.
	Health  *HealthHandler  // Health serves /status.
	Metrics *MetricsHandler // Metrics serves /metrics.
	OpenAPI *OpenAPIHandler // OpenAPI serves the docs UI.
}

// NewHandlers constructs the handler container. assets holds the
// documentation files (openapi.html, openapi.json).
func NewHandlers(s *server.Server, services *service.Services, assets fs.FS) *Handlers {
	return &Handlers{
		Contact: NewContactHandler(s, services.Contact),
		Health:  NewHealthHandler(s, services.Contact),
		Metrics: NewMetricsHandler(s),
		OpenAPI: NewOpenAPIHandler(s, assets),
	}
}
