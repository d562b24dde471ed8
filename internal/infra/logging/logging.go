// Where: cli/internal/infra/logging/logging.go
// What: Diagnostic logger construction.
// Why: Keep structured debug logs separate from user-facing console output.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/poruru/npm-deploy/cli/internal/meta"
)

// New returns a logger writing to w. Verbose enables debug records.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: meta.AppName,
		Level:  level,
	})
}

// Discard returns a logger that drops every record.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
