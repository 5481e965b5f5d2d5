package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// unmatchedPath labels requests that hit no route, keeping label cardinality bounded.
const unmatchedPath = "unmatched"

var durationBuckets = metrics.ExponentialBuckets(1e-3, 5, 6)

// MetricsMiddleware records request counts and latencies on the server's
// metrics set, labelled by method, route template and final status.
type MetricsMiddleware struct {
	set *metrics.Set
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{set: s.Metrics}
}

func (m *MetricsMiddleware) MeterRequests() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.set == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = StatusFromError(err)
			}

			labels := fmt.Sprintf(`{method=%q,path=%q,status="%d"}`,
				c.Request().Method, routeLabel(c, err), status)
			m.set.GetOrCreatePrometheusHistogramExt(`http_request_duration_seconds`+labels, durationBuckets).UpdateDuration(start)
			m.set.GetOrCreateCounter(`http_requests_total` + labels).Inc()

			return err
		}
	}
}

// routeLabel returns the matched route template, or unmatchedPath when
// echo's router found nothing for the request.
func routeLabel(c echo.Context, err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return unmatchedPath
		}
	}
	if c.Path() == "" {
		return unmatchedPath
	}
	return c.Path()
}
