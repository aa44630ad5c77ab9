package httpkit

import (
	"context"
	"encoding/json"
	"net/http"
)

// HTTPError is an error that knows its status code and keeps the
// detailed cause for logs
type HTTPError interface {
	error
	HTTPCode() int
	Cause() error
}

const contentTypeOptions = "X-Content-Type-Options"

var (
	jsonResponseType = []string{"application/json; charset=utf-8"}
	nosniff          = []string{"nosniff"}
)

func setDefaultHeader(w http.ResponseWriter, key string, value []string) {
	if len(w.Header()[key]) == 0 {
		w.Header()[key] = value
	}
}

type ctxKeyError struct{}

type errorSlot struct {
	err error
}

// WithErrorTracking attaches an error slot to ctx unless one is present
func WithErrorTracking(ctx context.Context) context.Context {
	if _, ok := ctx.Value(ctxKeyError{}).(*errorSlot); ok {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyError{}, &errorSlot{})
}

// SetError records err for the request logger
func SetError(ctx context.Context, err error) {
	if slot, ok := ctx.Value(ctxKeyError{}).(*errorSlot); ok {
		slot.err = err
	}
}

// Error returns the error recorded for the request, if any
func Error(ctx context.Context) error {
	if slot, ok := ctx.Value(ctxKeyError{}).(*errorSlot); ok {
		return slot.err
	}
	return nil
}

// HandlerFunc is a handler that returns the response writer to run
type HandlerFunc func(http.ResponseWriter, *http.Request) http.HandlerFunc

func (h HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(WithErrorTracking(r.Context()))
	if respond := h(w, r); respond != nil {
		respond(w, r)
	}
}

// JSON writes data with status 200
func JSON(data any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		setDefaultHeader(w, contentTypeHeader, jsonResponseType)
		setDefaultHeader(w, contentTypeOptions, nosniff)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JsonError records err on the request and writes it with its status code
func JsonError(err HTTPError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		SetError(r.Context(), err)
		setDefaultHeader(w, contentTypeHeader, jsonResponseType)
		setDefaultHeader(w, contentTypeOptions, nosniff)
		w.WriteHeader(err.HTTPCode())
		_ = json.NewEncoder(w).Encode(err)
	}
}
