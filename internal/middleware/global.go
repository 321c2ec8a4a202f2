package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/item-service/internal/errs"
	"github.com/deppfellow/item-service/internal/server"
)

// corsAllowedMethods is every method a browser may ask to use.
var corsAllowedMethods = []string{
	http.MethodDelete,
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodPatch,
	http.MethodPost,
	http.MethodPut,
}

// GlobalMiddlewares groups middleware applied to every route and the global
// error handler.
//
// The methods hang off a struct holding *server.Server so each middleware
// reads its settings (CORS origins, credentials) from the loaded config at
// router construction time.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
//
// Nothing is installed here; the router calls the individual methods and
// decides the order.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured from the server config.
//
// The defaults allow any origin, credentials, every method and any request
// header. With "*" and credentials together the caller's Origin is mirrored,
// since browsers reject a literal "*" on credentialed requests. This is only
// suitable for trusted or development deployments.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	cfg := global.server.Config.Server

	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     corsAllowedMethods,
		AllowCredentials: cfg.CORSAllowCredentials,

		// Empty AllowHeaders reflects Access-Control-Request-Headers on preflight.
		AllowHeaders: nil,

		UnsafeWildcardOriginWithAllowCredentials: cfg.CORSAllowCredentials,
	})
}

// RequestLogger returns Echo's request logger middleware writing one "API"
// line per request through the request-scoped zerolog logger.
//
// The level follows the final status: 5xx error, 4xx warn, otherwise info.
// The line carries latency, status, method, uri, host, ip and user agent;
// request_id, path and trace ids come from the logger ContextEnhancer built.
//
// It runs after ContextEnhancer, otherwise GetLogger falls back to a no-op
// logger and the line is lost.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := ResolveStatus(c, v.Error)

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// ResolveStatus returns the status a request will finish with.
//
// When a handler returns an error the response has not been written yet;
// the global error handler will pick the status from the error, so the same
// mapping is applied here.
// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
func ResolveStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// Recover returns Echo's panic recovery middleware.
//
// A panic in a handler is turned into an error and passed to
// GlobalErrorHandler, which answers 500 with the generic message and logs
// the stack. It is installed last so it sits closest to the handlers.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo's secure headers middleware with its defaults:
// X-XSS-Protection, X-Content-Type-Options and X-Frame-Options.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler turns every error returned by a handler or middleware
// into the errs.HTTPError JSON shape and logs the original error.
//
// Errors are normalised first:
//
//   - *errs.HTTPError is written as is (validation 422s land here)
//   - *echo.HTTPError 404 from the router becomes "Route not found"; other
//     Echo errors (405, 415) keep their status and message
//   - anything else becomes a generic 500 so internal messages never leak
//
// 5xx responses are logged at error level with a stack, the rest at warn.
// HEAD requests get the status without a body, and nothing is written once
// the response is already committed.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code == http.StatusNotFound {
				err = errs.NewNotFoundError("Route not found", false, nil)
			}
		} else {
			// Unknown errors never leak their message.
			err = errs.NewInternalServerError()
		}
	}

	var echoErr *echo.HTTPError
	var status int
	var code string
	var message string
	var fieldErrors []errs.FieldError
	var action *errs.Action

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Status
		code = httpErr.Code
		message = httpErr.Message
		fieldErrors = httpErr.Errors
		action = httpErr.Action

	case errors.As(err, &echoErr):
		status = echoErr.Code
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))

		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(echoErr.Code)
		}

	default:
		status = http.StatusInternalServerError
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError))
		message = http.StatusText(http.StatusInternalServerError)
	}

	logger := *GetLogger(c)

	var event *zerolog.Event
	if status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	} else {
		event = logger.Warn()
	}
	event.
		Err(originalErr).
		Int("status", status).
		Str("error_code", code).
		Msg(message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}

	_ = c.JSON(status, errs.HTTPError{
		Code:     code,
		Message:  message,
		Status:   status,
		Override: httpErr != nil && httpErr.Override,
		Errors:   fieldErrors,
		Action:   action,
	})
}
