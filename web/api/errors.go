package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/poolwatch/poolwatch/pkg/httpkit"
)

// Error is the JSON error body returned by the API
type Error struct {
	cause    error
	message  string
	httpCode int
}

var _ httpkit.HTTPError = (*Error)(nil)

func (e *Error) HTTPCode() int { return e.httpCode }

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.cause }

// Cause returns the original error for logging
func (e *Error) Cause() error { return e.cause }

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"code":    e.httpCode,
		"message": e.message,
	})
}

// BadRequest exposes the cause; client errors carry no internals
func BadRequest(cause error) *Error {
	return &Error{cause: cause, message: cause.Error(), httpCode: http.StatusBadRequest}
}

// NotFound exposes the cause
func NotFound(cause error) *Error {
	return &Error{cause: cause, message: cause.Error(), httpCode: http.StatusNotFound}
}

// InternalServerError hides the cause behind the status text
func InternalServerError(cause error) *Error {
	return &Error{
		cause:    cause,
		message:  http.StatusText(http.StatusInternalServerError),
		httpCode: http.StatusInternalServerError,
	}
}

// Wrap turns err into an API error. API errors pass through unchanged;
// anything else is an internal error.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return InternalServerError(err)
}
