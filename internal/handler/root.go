package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/server"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to FastAPI Backend"

// RootHandler serves the welcome payload.
type RootHandler struct {
	Handler
}

// NewRootHandler constructs a RootHandler.
func NewRootHandler(s *server.Server) *RootHandler {
	return &RootHandler{
		Handler: NewHandler(s),
	}
}

// WelcomeResponse is the body of GET /.
type WelcomeResponse struct {
	Message string `json:"message"`
}

// Welcome always succeeds with the fixed welcome message.
func (h *RootHandler) Welcome(c echo.Context, _ *EmptyRequest) (WelcomeResponse, error) {
	return WelcomeResponse{Message: WelcomeMessage}, nil
}
