package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/config"
	"github.com/deppfellow/item-service/internal/middleware"
	"github.com/deppfellow/item-service/internal/server"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// CheckHealth reports the service as healthy. The service has no external
// dependencies, so answering at all means it is alive.
func (h *HealthHandler) CheckHealth(c echo.Context, _ *EmptyRequest) (HealthResponse, error) {
	middleware.GetLogger(c).Debug().
		Str("operation", "health_check").
		Msg("health check passed")

	return HealthResponse{
		Status:  "healthy",
		Service: config.ServiceName,
	}, nil
}
