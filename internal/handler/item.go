package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/model"
	"github.com/deppfellow/item-service/internal/server"
	"github.com/deppfellow/item-service/internal/service"
	"github.com/deppfellow/item-service/internal/validation"
)

// ItemNotFoundMessage is the error text returned when a lookup misses.
const ItemNotFoundMessage = "Item not found"

// ItemHandler serves the /api/items routes.
type ItemHandler struct {
	Handler
	items *service.ItemService
}

// NewItemHandler constructs an ItemHandler.
func NewItemHandler(s *server.Server, items *service.ItemService) *ItemHandler {
	return &ItemHandler{
		Handler: NewHandler(s),
		items:   items,
	}
}

// GetItemRequest binds the item id from the path.
type GetItemRequest struct {
	ItemID int `param:"item_id"`
}

// Bind reads item_id with Echo's path binder so a non-integer id is
// reported against the item_id field.
func (r *GetItemRequest) Bind(c echo.Context) error {
	return echo.PathParamsBinder(c).
		MustInt("item_id", &r.ItemID).
		BindError()
}

func (r *GetItemRequest) Validate() error {
	return nil
}

// CreateItemRequest is the body of POST /api/items.
//
// Pointers distinguish a missing field from its zero value: id 0 and an
// empty name are valid, an absent field is not.
type CreateItemRequest struct {
	ID          *int    `json:"id" validate:"required"`
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

func (r *CreateItemRequest) Validate() error {
	return validation.Struct(r)
}

// Item converts a validated request into the model.
func (r *CreateItemRequest) Item() model.Item {
	return model.Item{
		ID:          *r.ID,
		Name:        *r.Name,
		Description: *r.Description,
	}
}

// ItemNotFoundResponse is the body returned when a lookup misses.
//
// The status is 200 unless strict not-found handling is configured, in
// which case it is 404. The body is the same either way.
type ItemNotFoundResponse struct {
	Error string `json:"error"`

	status int
}

func (r ItemNotFoundResponse) StatusCode() int {
	return r.status
}

// ListItems returns every item in insertion order.
func (h *ItemHandler) ListItems(c echo.Context, _ *EmptyRequest) ([]model.Item, error) {
	return h.items.ListItems(c.Request().Context()), nil
}

// GetItem returns the item with the path id, or ItemNotFoundResponse.
func (h *ItemHandler) GetItem(c echo.Context, req *GetItemRequest) (any, error) {
	item, found, err := h.items.GetItem(c.Request().Context(), req.ItemID)
	if err != nil {
		return nil, err
	}

	if !found {
		status := http.StatusOK
		if h.server.Config.Server.StrictNotFound {
			status = http.StatusNotFound
		}
		return ItemNotFoundResponse{Error: ItemNotFoundMessage, status: status}, nil
	}

	return item, nil
}

// CreateItem stores the submitted item and echoes it back unchanged.
func (h *ItemHandler) CreateItem(c echo.Context, req *CreateItemRequest) (model.Item, error) {
	return h.items.CreateItem(c.Request().Context(), req.Item()), nil
}
