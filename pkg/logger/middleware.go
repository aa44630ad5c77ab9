package logger

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/poolwatch/poolwatch/pkg/httpkit"
)

// statusRecorder captures the status code and body size of a response
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// NewMiddleware logs every request served by the wrapped handler.
// 5xx responses are logged at ERROR, everything else at INFO.
func NewMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			r = r.WithContext(httpkit.WithErrorTracking(r.Context()))

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			level := slog.LevelInfo
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("uri", r.RequestURI),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int("bytes_out", rec.bytes),
			}
			if err := httpkit.Error(r.Context()); err != nil {
				attrs = append(attrs, slog.String("error", causeOf(err).Error()))
			}

			logger.LogAttrs(r.Context(), level, "HTTP", attrs...)
		})
	}
}

// causeOf returns the detailed cause behind an HTTP error
func causeOf(err error) error {
	var httpErr httpkit.HTTPError
	if errors.As(err, &httpErr) && httpErr.Cause() != nil {
		return httpErr.Cause()
	}
	return err
}
