package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// New creates a JSON structured logger writing to w at the given level.
// Every record carries the module name and version. Source locations are
// added only at debug level.
func New(w io.Writer, module, version, level string) *slog.Logger {
	lev := ParseLogLevel(level)

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	})).With("module", module, "version", version)
}

// SetDefault installs a stderr logger as the slog default and returns it.
func SetDefault(module, version, level string) *slog.Logger {
	l := New(os.Stderr, module, version, level)
	slog.SetDefault(l)
	return l
}

// ErrorLog adapts l for http.Server.ErrorLog.
func ErrorLog(l *slog.Logger) *log.Logger {
	return slog.NewLogLogger(l.Handler(), slog.LevelError)
}

// ParseLogLevel converts "debug", "warn", "error" (case-insensitive) to a slog.Level.
// Anything else is info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
