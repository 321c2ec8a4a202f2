// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers hand it
// validated input, it performs the operation against the repositories and
// records the metrics that belong to the operation.
package service
