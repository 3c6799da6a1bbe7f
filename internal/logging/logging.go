// Package logging configures the process logger shared by the GUI and the
// command line tool.
package logging

import (
	"io"
	"os"
	"strings"

	"charm.land/log/v2"
)

// Logger defaults
const (
	DefaultLevel  = "info"
	DefaultPrefix = "source-editor"
)

// New returns a logger writing to w at the named level. Unknown level names
// fall back to info.
func New(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          DefaultPrefix,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// NewStderr returns a logger writing to standard error.
func NewStderr(level string) *log.Logger {
	return New(os.Stderr, level)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}
