package filesig

import (
	"io"
	"log/slog"
	"strings"
)

// serviceName tags every record written by loggers built here
const serviceName = "filesig"

// NewLogger builds a slog logger writing to w. Format "json" selects the
// JSON handler; anything else gives text. Unknown levels fall back to info.
func NewLogger(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: false, Level: parseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json", "1", "true":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", serviceName)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// discardLogger drops everything; used when no logger is configured
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
