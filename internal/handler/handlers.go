package handler

import (
	"github.com/deppfellow/item-service/internal/server"
	"github.com/deppfellow/item-service/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Root    *RootHandler
	Health  *HealthHandler
	Items   *ItemHandler
	OpenAPI *OpenAPIHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Root:    NewRootHandler(s),
		Health:  NewHealthHandler(s),
		Items:   NewItemHandler(s, services.Items),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
