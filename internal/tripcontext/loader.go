// Package tripcontext loads the itinerary text that grounds the
// model's answers. Loading fails open: a missing or unreadable file
// degrades to empty context with a warning, never an error.
package tripcontext

import (
	"log/slog"
	"os"
)

type Loader struct {
	defaultPath string
	log         *slog.Logger
}

func NewLoader(defaultPath string, log *slog.Logger) *Loader {
	return &Loader{defaultPath: defaultPath, log: log}
}

// ResolvePath prefers an explicit override, then the configured
// default, then empty. Pure, no I/O.
func (l *Loader) ResolvePath(override string) string {
	if override != "" {
		return override
	}
	return l.defaultPath
}

// Load reads the itinerary file wholesale. An empty path and a missing
// file both yield "" — content-not-found is a representable state, not
// an error — and read failures are logged and swallowed the same way.
func (l *Loader) Load(path string) string {
	if path == "" {
		l.log.Debug("no trip context path configured, continuing with empty context")
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		l.log.Warn("trip context not found", "path", path)
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		l.log.Error("trip context read failed", "path", path, "err", err)
		return ""
	}
	l.log.Debug("trip context loaded", "path", path, "bytes", len(data))
	return string(data)
}
