package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a human-readable logger on stderr
func SetupLogger(level log.Level) *log.Logger {
	return NewLogger(os.Stderr, level)
}

// NewLogger configures a logger writing to w
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// ResolveLevel picks the log level from the configured name, with debug
// taking precedence.
func ResolveLevel(configured string, debug bool) (log.Level, error) {
	if debug {
		return log.DebugLevel, nil
	}
	if configured == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(configured)
}
