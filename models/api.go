package models

import "fmt"

// OperationError is the single failure signal for any resource operation.
// Transport errors, unexpected status codes and decode failures all end up
// here; the client deliberately does not distinguish a 403 from a 404 from
// a connection reset. The server's rejection is authoritative either way.
type OperationError struct {
	Op  string // e.g. "list products", "update order status"
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// ValidationError reports a client-side form check failure. It is raised
// before any network call is made.
type ValidationError struct {
	Field   string
	Details string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Details)
}
