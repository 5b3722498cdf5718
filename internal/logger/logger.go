// Package logger provides a shared charmbracelet/log configuration for
// the rest of the module.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a logger with the given prefix, reporting timestamps but
// not call sites, at the process's global log level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a logger with an explicit level, caller
// reporting and timestamp behavior, for callers that need more than
// the defaults New provides.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, formatter log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       formatter,
	})
}
