package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by the client and by draft validation.
type ErrorKind string

const (
	// KindValidation is a required field or file missing; never sent to the server.
	KindValidation ErrorKind = "validation"
	// KindTransport is a connection or request construction failure.
	KindTransport ErrorKind = "transport"
	// KindServer is a non-2xx response or an explicit success=false envelope.
	KindServer ErrorKind = "server"
	// KindDecode is a 2xx response whose body could not be understood.
	KindDecode ErrorKind = "decode"
)

// NetworkErrorMessage is shown for every transport failure.
const NetworkErrorMessage = "Network Error: Could not connect to server."

// Error is the single error type returned by the API client.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError builds a local validation failure.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: NetworkErrorMessage, Err: err}
}

func serverError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("Server Error: %d", status)
	}
	return &Error{Kind: KindServer, Status: status, Message: message}
}

func decodeError(err error) *Error {
	return &Error{Kind: KindDecode, Message: fmt.Sprintf("decode response: %v", err), Err: err}
}

// KindOf reports the kind of err, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
