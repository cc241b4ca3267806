// Package autherrors defines coded errors whose messages are safe to render
// directly in the UI. Services wrap backend failures into these; the web layer
// maps codes to HTTP statuses without inspecting error text.
package autherrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	// CodeInvalidInput covers client-detectable validation failures. No
	// backend call was made and no audit event was recorded.
	CodeInvalidInput Code = "invalid_input"

	// CodeUnauthorized covers rejected credentials and missing sessions.
	CodeUnauthorized Code = "unauthorized"

	// CodeConflict covers signup attempts for an already registered email.
	CodeConflict Code = "conflict"

	// CodeUnavailable covers transient backend failures (network, outage).
	CodeUnavailable Code = "unavailable"

	CodeInternal Code = "internal"
)

// Error carries a code plus a display-ready message. Message is shown to end
// users verbatim, so wrapped causes stay out of it.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// DisplayMessage extracts the user-facing message, falling back to a generic
// one so raw backend errors never leak into rendered pages.
func DisplayMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong. Please try again."
}

// ToHTTPStatus keeps code-to-status translation in one place.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
