// Where: cli/cmd/npm-deploy/main.go
// What: CLI entrypoint.
// Why: Execute npm-deploy commands with configured dependencies.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/poruru/npm-deploy/cli/internal/command"
)

func main() {
	deps, err := buildDependencies()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := command.Run(ctx, os.Args[1:], deps)
	stop()
	os.Exit(code)
}
