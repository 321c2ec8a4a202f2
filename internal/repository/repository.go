// Package repository owns the data the service exposes.
//
// Items live in process memory only. Each repository guards its own state
// so handlers running on separate goroutines can share one instance.
package repository
