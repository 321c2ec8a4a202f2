// Package middleware holds the Echo middleware shared by every route:
// request ids, request-scoped loggers, CORS, access logging, panic
// recovery, New Relic tracing, Prometheus metrics and the global error
// handler.
package middleware
