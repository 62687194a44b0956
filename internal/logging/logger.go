// Package logging configures the charmbracelet/log loggers used by mdbridge
// and carries them through a context.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Prefix is printed in front of interactive status messages.
const Prefix = "mdbridge"

//nolint:gochecknoglobals // the process-wide logger used when a context carries none
var defaultLogger atomic.Pointer[log.Logger]

// New creates a stderr logger at the given level.
// Valid levels: "debug", "info", "warn", "error". Anything else means info.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger that writes to w at the given level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// NewInteractive creates a logger for messages meant for a person at a
// terminal, such as "wrote .mdbridge.yml". It always logs at info level.
func NewInteractive() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  log.InfoLevel,
		Prefix: Prefix,
	})
}

// ParseLevel maps a level name to a log level, ignoring case. Unknown names
// map to info.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}

	parsed, err := log.ParseLevel(name)
	if err != nil || parsed == log.FatalLevel {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the process-wide logger, creating it at info level on
// first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel updates the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
