package logger

import (
	"log/slog"
	"net/http"
	"time"
)

// transport logs every outgoing request made through it
type transport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

// NewTransport wraps next with request logging. A nil next uses
// http.DefaultTransport.
func NewTransport(logger *slog.Logger, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &transport{next: next, logger: logger}
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("host", req.URL.Host),
		slog.String("path", req.URL.Path),
		slog.Duration("duration", duration),
	}

	level := slog.LevelDebug
	switch {
	case err != nil:
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", err.Error()))
	case resp.StatusCode >= http.StatusInternalServerError:
		level = slog.LevelError
		attrs = append(attrs, slog.Int("status", resp.StatusCode))
	default:
		attrs = append(attrs, slog.Int("status", resp.StatusCode))
	}

	t.logger.LogAttrs(req.Context(), level, "HTTP", attrs...)
	return resp, err
}
