// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/contacts-service/internal/handler"
	"github.com/deppfellow/contacts-service/internal/middleware"
	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the global middleware chain, the
// error handler and every route.
//
// Middleware order matters: the request id and New Relic transaction must
// exist before the context logger is built, and Recover sits inside the
// logging and metrics middleware so recovered panics are recorded as 500s.
func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Metrics.MeterRequests(),
		m.Global.Recover(),
		m.Global.Secure(),
		m.Global.CORS(),
		m.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerContactRoutes(router, h)

	s.Logger.Debug().
		Int("routes", len(router.Routes())).
		Msg("router initialized")

	return router
}
