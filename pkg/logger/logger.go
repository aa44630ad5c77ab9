package logger

import (
	"io"
	"log/slog"
	"os"
)

const BritishTimeFormat = "02.01.2006 15:04:05"

// Config represents logger configuration from environment/config
// LogLevel is a string like "debug", "info", "error";
// LogHumanFriendly toggles between text (true) and JSON (false).
type Config struct {
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogHumanFriendly bool   `env:"LOG_HUMAN_FRIENDLY" envDefault:"true"`
}

// ParseLevel converts a string to slog.Level, defaulting to Info on error.
func ParseLevel(level string) slog.Level {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(level))
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NewFromConfig creates a slog.Logger writing to stderr.
// Stdout is left to the tools' own output.
func NewFromConfig(cfg Config) *slog.Logger {
	return New(os.Stderr, cfg)
}

// New creates a slog.Logger writing to w
func New(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogLevel),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(BritishTimeFormat))
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.LogHumanFriendly {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}
