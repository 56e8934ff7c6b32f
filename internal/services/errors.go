// internal/services/errors.go
package services

import "errors"

// Sentinel errors shared by all services. Handlers map them to HTTP
// status codes with errors.Is, keeping one error taxonomy across the
// whole API instead of per-service ad hoc kinds.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("not authenticated")
	ErrForbidden         = errors.New("access denied")
)
