package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/server"
)

// unmatchedRoute labels requests that matched no registered route, keeping
// arbitrary URLs out of the label set.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records per-request Prometheus metrics.
type MetricsMiddleware struct {
	server *server.Server
}

// NewMetricsMiddleware constructs MetricsMiddleware.
func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// RecordRequests counts every request by route template, method and final
// status, and observes its duration.
func (mm *MetricsMiddleware) RecordRequests() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}

			mm.server.Metrics.RecordHTTPRequest(
				route,
				c.Request().Method,
				strconv.Itoa(ResolveStatus(c, err)),
				time.Since(start).Seconds(),
			)

			return err
		}
	}
}
