package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/handler"
)

// registerItemRoutes registers the item API under g (mounted at /api).
func registerItemRoutes(g *echo.Group, h *handler.Handlers) {
	items := g.Group("/items")

	items.GET("", handler.Handle(h.Items.Handler, h.Items.ListItems, http.StatusOK, &handler.EmptyRequest{}))
	items.GET("/:item_id", handler.Handle(h.Items.Handler, h.Items.GetItem, http.StatusOK, &handler.GetItemRequest{}))
	items.POST("", handler.Handle(h.Items.Handler, h.Items.CreateItem, http.StatusOK, &handler.CreateItemRequest{}))
}
