// Where: cli/cmd/npm-deploy/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"

	"github.com/poruru/npm-deploy/cli/internal/command"
	"github.com/poruru/npm-deploy/cli/internal/infra/process"
)

var (
	getwd            = os.Getwd
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// buildDependencies constructs the runtime dependencies required by the CLI.
// The working directory is resolved once so a deleted cwd fails early.
func buildDependencies() (command.Dependencies, error) {
	cwd, err := getwd()
	if err != nil {
		return command.Dependencies{}, err
	}
	return command.Dependencies{
		Out:    stdout,
		ErrOut: stderr,
		Runner: process.ExecRunner{Out: stdout, ErrOut: stderr},
		Getwd:  func() (string, error) { return cwd, nil },
	}, nil
}
