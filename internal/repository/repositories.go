package repository

import (
	"github.com/deppfellow/item-service/internal/model"
	"github.com/deppfellow/item-service/internal/server"
)

// Repositories is a container for all repository instances.
//
// It is built once at startup and handed to the service layer, so every
// request works against the same store.
type Repositories struct {
	Items *ItemRepository
}

// NewRepositories constructs the repository container with the seed items
// already loaded.
func NewRepositories(s *server.Server) *Repositories {
	items := NewItemRepository(model.SeedItems()...)

	s.Logger.Debug().
		Int("seed_items", items.Count()).
		Msg("item repository initialized")

	return &Repositories{
		Items: items,
	}
}
