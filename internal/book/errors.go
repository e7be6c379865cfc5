package book

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no book matches the identifier.
	ErrNotFound = errors.New("book not found")
	// ErrServer is returned when storage lost a record it had just handed out.
	ErrServer = errors.New("book storage inconsistency")
)

// FieldError describes one rejected form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a write is rejected because of field
// constraints.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Kind classifies errors produced by this package.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// KindOf reports which kind err belongs to.
func KindOf(err error) Kind {
	var verr *ValidationError
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &verr):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrServer):
		return KindServer
	default:
		return KindUnknown
	}
}

// FieldErrors returns the per-field messages carried by err, if any.
func FieldErrors(err error) []FieldError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
