package handler

import (
	"reflect"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/item-service/internal/middleware"
	"github.com/deppfellow/item-service/internal/server"
	"github.com/deppfellow/item-service/internal/validation"
)

// Handler is the base handler type that holds shared application
// dependencies.
//
// Concrete handlers (RootHandler, HealthHandler, ItemHandler, OpenAPIHandler)
// embed it, so each one reaches config, the root logger and metrics through
// *server.Server without taking them as separate constructor arguments.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
//
// It returns the struct by value; the only field is a pointer, so every copy
// still refers to the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint function that:
//
//   - receives a bound and validated request payload (Req)
//   - returns the response body (Res) or an error
//
// Req must satisfy validation.Validatable and is a pointer type in practice,
// e.g. *CreateItemRequest, because binding populates it in place. Returned
// errors reach the global error handler unchanged, so an *errs.HTTPError
// keeps its status and body.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// StatusCoder lets a response body pick its own HTTP status.
//
// JSONResponseHandler consults it before falling back to the status given to
// Handle. ItemNotFoundResponse uses it to answer 200 or 404 from the same
// handler depending on configuration.
type StatusCoder interface {
	StatusCode() int
}

// ResponseHandler defines how a successful handler result is written to the
// HTTP response, and which observability attributes are attached for it.
//
// Failed handlers never reach it; their errors go to the global error
// handler instead.
type ResponseHandler interface {
	// Handle writes the HTTP response for result.
	Handle(c echo.Context, result interface{}) error

	// GetOperation names the handler type in structured logs.
	GetOperation() string

	// AddAttributes attaches New Relic attributes for the result.
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code, unless
// the result implements StatusCoder.
//
// Slices are written as JSON arrays; the repository never hands out a nil
// slice, so an empty store is written as [] rather than null.
type JSONResponseHandler struct {
	status int
}

// Handle writes result as JSON with the status chosen by statusFor.
func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.statusFor(result), result)
}

// GetOperation labels log lines written by the pipeline.
func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

// AddAttributes records the number of returned elements for list results.
// http.status_code is already set by the tracing middleware.
func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn == nil || result == nil {
		return
	}
	if v := reflect.ValueOf(result); v.Kind() == reflect.Slice {
		txn.AddAttribute("response.items", v.Len())
	}
}

func (h JSONResponseHandler) statusFor(result interface{}) int {
	if sc, ok := result.(StatusCoder); ok {
		return sc.StatusCode()
	}
	return h.status
}

// handleRequest is the shared execution pipeline for all typed handlers.
//
// It centralises, in order:
//
//   - request binding and validation (validation.BindAndValidate)
//   - structured logging through the request-scoped logger
//   - New Relic attributes and error noticing, when a transaction exists
//   - phase timings (validation, handler, total)
//   - response writing through responseHandler
//
// A binding or validation failure returns the 422 *errs.HTTPError before the
// handler runs, so rejected requests never touch the service layer.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", method).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler into an echo.HandlerFunc.
//
// prototype only fixes the request type: every call binds into a freshly
// allocated value, so concurrent requests never share a request struct.
//
//	api.POST("/items", handler.Handle(h.Handler, h.CreateItem, http.StatusOK, &CreateItemRequest{}))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	prototype Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(prototype), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// newRequest allocates a zero value of the type prototype points to.
func newRequest[Req validation.Validatable](prototype Req) Req {
	t := reflect.TypeOf(prototype)
	if t.Kind() != reflect.Ptr {
		return prototype
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

// EmptyRequest is the request type of endpoints that take no input.
//
// Binding it is a no-op for GET requests without a body; Validate always
// succeeds.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}
