package billing

import "fmt"

// APIError is a non-success response from the billing API. It carries the
// server's message text so callers can surface it; it is always recoverable
// (collection cleared, banner shown), never fatal.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("billing api: %s (status %d)", e.Message, e.StatusCode)
}
