// Where: cli/internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/poruru/npm-deploy/cli/internal/infra/process"
	"github.com/poruru/npm-deploy/cli/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Nil writers and Getwd fall back to process defaults; Runner must be wired
// by the caller.
type Dependencies struct {
	Out    io.Writer
	ErrOut io.Writer
	Runner process.CommandRunner
	Getwd  func() (string, error)
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	EnvFile string     `name:"env-file" help:"Path to .env file (default: <root>/.env when present)"`
	Verbose bool       `short:"v" help:"Verbose diagnostic logging"`
	Deploy  DeployCmd  `cmd:"" help:"Publish a built package to an npm registry"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type (
	// DeployCmd defines the deploy command flags. Flags left empty defer to
	// the options document, then to built-in defaults.
	DeployCmd struct {
		Dist           string        `arg:"" optional:"" name:"dist" help:"Dist folder containing package.json, relative to the workspace root"`
		Options        string        `short:"c" name:"options" help:"Options document (YAML or JSON)"`
		Root           string        `name:"root" help:"Workspace root (default: auto-detected)"`
		Access         string        `name:"access" help:"Package access (public/restricted, default public)"`
		Tag            string        `short:"t" name:"tag" help:"Dist-tag to publish under"`
		OTP            string        `name:"otp" env:"NPM_DEPLOY_OTP" help:"One-time password for two-factor publishing"`
		DryRun         bool          `name:"dry-run" negatable:"" help:"Pass --dry-run to the package manager"`
		Registry       string        `name:"registry" help:"Registry URL"`
		PackageVersion string        `name:"package-version" help:"Rewrite package.json version before publishing"`
		CheckExisting  string        `name:"check-existing" help:"Existing version policy (off/warning/error; true/false accepted)"`
		PackageManager string        `name:"package-manager" help:"Package manager executable (default npm)"`
		WaitRegistry   time.Duration `name:"wait-registry" help:"Wait up to this long for the registry to answer before publishing"`
		Emoji          bool          `name:"emoji" help:"Enable emoji output (default: auto)"`
		NoEmoji        bool          `name:"no-emoji" help:"Disable emoji output"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments and dispatches to the requested
// handler. Returns 0 on success, 1 on error.
func Run(ctx context.Context, args []string, deps Dependencies) int {
	deps = withDefaults(deps)
	out := deps.Out

	if len(args) == 0 {
		return runNoArgs(out)
	}

	cwd, err := deps.Getwd()
	if err != nil {
		return exitWithError(out, err)
	}

	cli := CLI{}
	parser, err := kong.New(
		&cli,
		kong.Name(cliName()),
		kong.Description("Publish built packages to npm-compatible registries."),
		kong.Writers(out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, out)
	}

	switch kctx.Command() {
	case "deploy", "deploy <dist>":
		return runDeploy(ctx, cli, kctx, deps, cwd)
	case "version":
		return runVersion(out)
	}

	legacyUI(out).Warn("unknown command")
	return 1
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	return deps
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	legacyUI(out).Info(version.GetVersion())
	return 0
}

// runNoArgs prints a short usage hint.
func runNoArgs(out io.Writer) int {
	ui := legacyUI(out)
	cmd := cliName()
	ui.Info("Usage:")
	ui.Info(fmt.Sprintf("  %s deploy <dist> [--access public|restricted] [--tag T] [--registry URL] [flags]", cmd))
	ui.Info("")
	ui.Info(fmt.Sprintf("Try: %s deploy --help", cmd))
	return 0
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, out io.Writer) int {
	msg := err.Error()
	if strings.Contains(msg, "expected") && strings.Contains(msg, "value") {
		ui := legacyUI(out)
		switch {
		case strings.Contains(msg, "--options"):
			ui.Warn("`-c/--options` expects a value. Provide a YAML or JSON options file.")
			ui.Info(fmt.Sprintf("Example: %s deploy -c ./deploy.yaml", cliName()))
			return 1
		case strings.Contains(msg, "--wait-registry"):
			ui.Warn("`--wait-registry` expects a duration.")
			ui.Info(fmt.Sprintf("Example: %s deploy dist/lib --registry http://localhost:4873 --wait-registry 30s", cliName()))
			return 1
		}
	}
	return exitWithError(out, err)
}
