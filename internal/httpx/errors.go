package httpx

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a failure that carries the status and message shown to the
// user.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// NewError constructs a *StatusError.
func NewError(status int, message string) error {
	return &StatusError{Status: status, Message: message}
}

const serverErrorMessage = "Server error"

// StatusOf returns the status and message to render for err. Errors that are
// not a *StatusError become a generic 500.
func StatusOf(err error) (int, string) {
	var se *StatusError
	if errors.As(err, &se) {
		status := se.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		msg := se.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return status, msg
	}
	return http.StatusInternalServerError, serverErrorMessage
}
