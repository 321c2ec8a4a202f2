// Package model defines the records the API exposes.
package model

// Item is a single catalog entry.
//
// ID is meant to be unique but nothing enforces it; create requests may
// reuse or invent any id.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SeedItems returns the records the store starts with.
func SeedItems() []Item {
	return []Item{
		{ID: 1, Name: "Item 1", Description: "This is item 1"},
		{ID: 2, Name: "Item 2", Description: "This is item 2"},
		{ID: 3, Name: "Item 3", Description: "This is item 3"},
	}
}
