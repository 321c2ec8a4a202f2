package repository

import (
	"errors"
	"sync"

	"github.com/deppfellow/item-service/internal/model"
)

// ErrItemNotFound is returned by FindByID when no stored item carries the id.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository is an ordered, append-only collection of items.
//
// Ids are not checked for uniqueness. Lookups scan in insertion order, so
// the earliest item with a given id always wins.
type ItemRepository struct {
	mu    sync.RWMutex
	items []model.Item
}

// NewItemRepository creates a repository holding seed in the given order.
func NewItemRepository(seed ...model.Item) *ItemRepository {
	items := make([]model.Item, len(seed))
	copy(items, seed)

	return &ItemRepository{items: items}
}

// List returns every item in insertion order.
//
// The returned slice is a copy; callers may keep or modify it freely.
func (r *ItemRepository) List() []model.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Item, len(r.items))
	copy(out, r.items)
	return out
}

// FindByID returns the first item whose ID equals id.
func (r *ItemRepository) FindByID(id int) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return model.Item{}, ErrItemNotFound
}

// Append stores item at the end of the collection and returns it unchanged.
func (r *ItemRepository) Append(item model.Item) model.Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
	return item
}

// Count reports how many items are stored.
func (r *ItemRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
