// FILE: lixenwraith/flagconf/logging.go
package flagconf

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger creates a text slog.Logger writing to w. The level is parsed
// with ParseLevel; invalid or empty levels fall back to warn.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// ParseLevel converts debug, info, warn (warning) or error to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", level)
}

// LevelEnum lets a Field[slog.Level] be set from the command line or a
// preset by name.
func LevelEnum() *EnumTraits[slog.Level] {
	return &EnumTraits[slog.Level]{
		Parse:  ParseLevel,
		Format: func(l slog.Level) string { return strings.ToLower(l.String()) },
	}
}
