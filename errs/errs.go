// Package errs defines the typed errors raised by the domain services and
// their mapping to HTTP status codes. Handlers translate with Status and
// serialize only the error message; hashes, secrets and internal causes are
// never exposed.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("authentication error")
	ErrAuthorization  = errors.New("authorization error")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal error")
)

// Error wraps one of the sentinel kinds with a safe, user-facing message.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

func Validation(msg string) *Error     { return &Error{Kind: ErrValidation, Message: msg} }
func Authentication(msg string) *Error { return &Error{Kind: ErrAuthentication, Message: msg} }
func Authorization(msg string) *Error  { return &Error{Kind: ErrAuthorization, Message: msg} }
func NotFound(msg string) *Error       { return &Error{Kind: ErrNotFound, Message: msg} }
func Conflict(msg string) *Error       { return &Error{Kind: ErrConflict, Message: msg} }

// Internal keeps the cause for logs but exposes only a generic message.
func Internal(cause error) *Error {
	return &Error{Kind: ErrInternal, Message: "internal server error", Cause: cause}
}

// Status maps an error to its HTTP status code. Unknown errors are treated as
// internal.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the safe message for an error. Internal and unknown errors
// collapse to a generic message so causes never leak into responses.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if errors.Is(err, ErrInternal) {
			return "internal server error"
		}
		return e.Message
	}
	return "internal server error"
}
