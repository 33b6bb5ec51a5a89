package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/logging"
)

// Kind classifies an error so callers can discriminate the taxonomy
// programmatically instead of matching message strings.
type Kind string

const (
	KindInvalidInput    Kind = "INVALID_INPUT"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindForbidden       Kind = "FORBIDDEN"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindInternal        Kind = "INTERNAL_ERROR"
)

// Error is a kind-tagged error. Services return these (directly or wrapped)
// and the HTTP layer maps the kind to a status code.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new kind-tagged error.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Convenience constructors per kind.

func InvalidInput(message string) *Error    { return E(KindInvalidInput, message) }
func NotFound(message string) *Error        { return E(KindNotFound, message) }
func Conflict(message string) *Error        { return E(KindConflict, message) }
func Forbidden(message string) *Error       { return E(KindForbidden, message) }
func Unauthenticated(message string) *Error { return E(KindUnauthenticated, message) }
func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf extracts the kind from an error chain. Unclassified errors are
// treated as internal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusCode maps a kind to its HTTP status.
func StatusCode(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the JSON error body returned to clients.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Respond writes an error response for err. Internal errors are logged and
// surfaced as a generic message so store details never leak to the caller.
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)

	message := err.Error()
	var e *Error
	if stderrors.As(err, &e) {
		message = e.Message
	}

	if kind == KindInternal {
		logging.Logger.WithFields(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).WithError(err).Error("request failed")
		message = "Internal server error"
	}

	c.JSON(StatusCode(kind), APIError{Code: string(kind), Message: message})
}
