// Where: cli/internal/infra/process/runner.go
// What: External command execution for the package manager CLI.
// Why: Keep subprocess handling behind an interface the usecase can fake.
package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// CommandRunner defines the interface for executing external commands.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
	RunOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner is a concrete implementation of CommandRunner using os/exec.
// Nil writers fall back to the process stdout/stderr.
type ExecRunner struct {
	Out    io.Writer
	ErrOut io.Writer
	Env    []string
}

// Run streams the command output and keeps a tail of stderr for the error.
func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := r.command(ctx, dir, name, args...)
	stderrTail := &tailBuffer{limit: maxDiagnosticBytes}
	cmd.Stdout = writerOr(r.Out, os.Stdout)
	cmd.Stderr = io.MultiWriter(writerOr(r.ErrOut, os.Stderr), stderrTail)
	if err := cmd.Run(); err != nil {
		return newCommandError(name, args, err, stderrTail.Bytes())
	}
	return nil
}

// RunOutput captures combined output without streaming it.
func (r ExecRunner) RunOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := r.command(ctx, dir, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, newCommandError(name, args, err, output)
	}
	return output, nil
}

func (r ExecRunner) command(ctx context.Context, dir, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// tailBuffer keeps at most limit trailing bytes.
type tailBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	b.buf.Write(p)
	if over := b.buf.Len() - b.limit; over > 0 {
		b.buf.Next(over)
	}
	return n, nil
}

func (b *tailBuffer) Bytes() []byte {
	return b.buf.Bytes()
}
