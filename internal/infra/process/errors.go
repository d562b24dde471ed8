// Where: cli/internal/infra/process/errors.go
// What: Error type for failed external commands.
// Why: Preserve exit code and diagnostics so callers can surface the cause.
package process

import (
	"fmt"
	"slices"
	"strings"
)

const (
	maxDiagnosticBytes = 4 << 10
	// Masked is the placeholder for secret flag values.
	Masked = "***"
)

// secretFlags take a value that must never be kept in errors.
var secretFlags = []string{"--otp"}

// MaskFlagValues returns a copy of args with the value following each of
// flags replaced by Masked.
func MaskFlagValues(args []string, flags ...string) []string {
	out := append([]string(nil), args...)
	for i := 0; i < len(out)-1; i++ {
		if slices.Contains(flags, out[i]) {
			out[i+1] = Masked
			i++
		}
	}
	return out
}

// CommandError describes a command that exited non-zero or failed to start.
// Args has secret flag values masked.
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func newCommandError(name string, args []string, err error, diagnostics []byte) *CommandError {
	text := strings.TrimSpace(string(diagnostics))
	if len(text) > maxDiagnosticBytes {
		text = text[len(text)-maxDiagnosticBytes:]
	}
	return &CommandError{
		Name:     name,
		Args:     MaskFlagValues(args, secretFlags...),
		ExitCode: exitCode(err),
		Stderr:   text,
		Err:      err,
	}
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("run %s: %v", e.Name, e.Err)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
