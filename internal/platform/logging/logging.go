// Package logging builds the zerolog logger shared by resolve-mcp commands.
//
// Logs always go to stderr (or a caller-supplied writer): stdout belongs to
// the stdio MCP transport and must only carry protocol frames.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level or an unknown level is configured.
const DefaultLevel = zerolog.InfoLevel

// ParseLevel converts a level name to a zerolog level.
// Unknown or empty names map to DefaultLevel.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return DefaultLevel
	}
	return level
}

// New returns a console logger writing to w at the named level.
// A nil writer means stderr.
func New(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stderr}
	return zerolog.New(console).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Component derives a child logger tagged with a component name.
func Component(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str("component", name).Logger()
}
