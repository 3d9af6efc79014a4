// Package apperr defines the error kinds returned by the service layer.
// Handlers map a Kind to an HTTP status without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// MessageInternal is the generic message for internal faults. Do not expose internal details to clients.
const MessageInternal = "internal server error"

// Error is a classified failure. Message is safe to show to clients; Err is the
// underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrUserExists          = &Error{Kind: KindConflict, Message: "user already exists"}
	ErrInvalidCredentials  = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}
	ErrDestinationNotFound = &Error{Kind: KindNotFound, Message: "destination not found"}
	ErrForbidden           = &Error{Kind: KindForbidden, Message: "forbidden"}
)

// Internal wraps an unexpected fault.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: MessageInternal, Err: err}
}

// Validation reports malformed input with per-field details.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// Unauthorized reports a missing or unusable credential.
func Unauthorized(message string, err error) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
