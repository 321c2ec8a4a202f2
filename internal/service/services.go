package service

import (
	"github.com/deppfellow/item-service/internal/repository"
	"github.com/deppfellow/item-service/internal/server"
)

// Services is a container for the business layer.
type Services struct {
	Items *ItemService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Items: NewItemService(s, repos.Items),
	}, nil
}
