// Package errs defines the error shapes the API sends to clients.
//
// Handlers return *HTTPError values; the global error handler writes them
// as JSON so every failure has the same structure.
package errs
