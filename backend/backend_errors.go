package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNetwork marks transport-level failures: the backend was never
// reached or the response never arrived.
var ErrNetwork = errors.New("backend unreachable")

// Error is a non-2xx response from the backend, carrying the
// human-readable message the backend supplied.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Message extracts the display text for an error: the backend's own
// message for backend failures, the error text otherwise.
func Message(err error) string {
	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr.Message
	}
	return err.Error()
}

func newError(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Status: status, Message: message}
}
