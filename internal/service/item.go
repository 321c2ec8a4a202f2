package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/item-service/internal/model"
	"github.com/deppfellow/item-service/internal/repository"
	"github.com/deppfellow/item-service/internal/server"
)

// ItemService lists, looks up and creates items.
type ItemService struct {
	server *server.Server
	items  *repository.ItemRepository
}

// NewItemService constructs an ItemService over items and publishes the
// initial stored-items gauge.
func NewItemService(s *server.Server, items *repository.ItemRepository) *ItemService {
	s.Metrics.SetItemsStored(items.Count())

	return &ItemService{
		server: s,
		items:  items,
	}
}

// ListItems returns every item in insertion order.
func (svc *ItemService) ListItems(ctx context.Context) []model.Item {
	items := svc.items.List()

	zerolog.Ctx(ctx).Debug().
		Int("count", len(items)).
		Msg("listed items")

	return items
}

// GetItem returns the earliest-inserted item with id.
//
// found is false when no item matches; that is not an error.
func (svc *ItemService) GetItem(ctx context.Context, id int) (item model.Item, found bool, err error) {
	item, err = svc.items.FindByID(id)

	switch {
	case errors.Is(err, repository.ErrItemNotFound):
		svc.server.Metrics.RecordItemLookup(false)
		zerolog.Ctx(ctx).Debug().Int("item_id", id).Msg("item not found")
		return model.Item{}, false, nil

	case err != nil:
		return model.Item{}, false, errors.Wrapf(err, "find item %d", id)
	}

	svc.server.Metrics.RecordItemLookup(true)
	return item, true, nil
}

// CreateItem appends item as submitted and returns it.
//
// The id is stored as given: duplicates are accepted and later lookups keep
// returning the earlier item.
func (svc *ItemService) CreateItem(ctx context.Context, item model.Item) model.Item {
	created := svc.items.Append(item)

	svc.server.Metrics.RecordItemCreated()
	svc.server.Metrics.SetItemsStored(svc.items.Count())

	zerolog.Ctx(ctx).Info().
		Int("item_id", created.ID).
		Msg("item created")

	return created
}
