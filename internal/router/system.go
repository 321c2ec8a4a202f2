package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/handler"
	"github.com/deppfellow/item-service/internal/server"
)

// registerSystemRoutes registers endpoints that are not part of the item
// API itself: the welcome route, health, docs and metrics.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/", handler.Handle(h.Root.Handler, h.Root.Welcome, http.StatusOK, &handler.EmptyRequest{}))

	r.GET("/api/health", handler.Handle(h.Health.Handler, h.Health.CheckHealth, http.StatusOK, &handler.EmptyRequest{}))

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/openapi.json", h.OpenAPI.ServeOpenAPIDocument)

	r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
}
