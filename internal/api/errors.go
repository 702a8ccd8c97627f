package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API operation.
type Kind string

const (
	// KindValidation is bad input, local or reported by the server as 400.
	KindValidation Kind = "VALIDATION"
	// KindTimeout is a request that exceeded the client-side deadline.
	KindTimeout Kind = "TIMEOUT"
	// KindNetwork is a request that received no response at all.
	KindNetwork Kind = "NETWORK"
	// KindServer is a 5xx response.
	KindServer Kind = "SERVER"
	// KindUnexpected is any other non-2xx response.
	KindUnexpected Kind = "UNEXPECTED"
)

// Messages shown to the user for each failure class when the server
// supplies no detail of its own.
const (
	msgServer     = "Server error. Please try again later."
	msgBadRequest = "Invalid request"
	msgTimeout    = "Request timeout. Please check your connection."
	msgNetwork    = "Network error. Please check your connection."
	msgUnexpected = "An unexpected error occurred"
)

// Error is a classified API failure with a human-readable message. Raw
// transport errors never cross the package boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// ErrKind returns the Kind of err when it is an *Error, else KindUnexpected.
func ErrKind(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnexpected
}

// UserMessage returns the display message of err: the classified message
// for an *Error, the plain Error() text otherwise, and empty for nil.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
