// Where: cli/internal/command/deploy_entry.go
// What: Deploy command entry and workflow execution.
// Why: Keep option resolution separate from the publish workflow.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/poruru/npm-deploy/cli/internal/infra/config"
	"github.com/poruru/npm-deploy/cli/internal/infra/env"
	"github.com/poruru/npm-deploy/cli/internal/infra/envutil"
	"github.com/poruru/npm-deploy/cli/internal/infra/logging"
	"github.com/poruru/npm-deploy/cli/internal/infra/ui"
	"github.com/poruru/npm-deploy/cli/internal/usecase/deploy"
)

var errEmojiFlagConflict = errors.New("deploy: --emoji and --no-emoji cannot be used together")

// runDeploy executes the 'deploy' command.
func runDeploy(ctx context.Context, cli CLI, kctx *kong.Context, deps Dependencies, cwd string) int {
	out := deps.Out
	emojiEnabled, err := resolveDeployEmojiEnabled(out, cli.Deploy)
	if err != nil {
		return exitWithError(out, err)
	}
	deployUI := ui.NewDeployUI(out, emojiEnabled)
	logger := logging.New(deps.ErrOut, cli.Verbose)

	root, err := resolveRoot(cli.Deploy.Root, cwd)
	if err != nil {
		return exitWithError(out, err)
	}

	loaded, err := config.LoadEnvFile(absFrom(cwd, cli.EnvFile), root)
	if err != nil {
		deployUI.Warn(fmt.Sprintf("Warning: %v", err))
	} else if loaded != "" {
		logger.Debug("loaded env file", "path", loaded)
	}

	merged, err := resolveOptions(cli.Deploy, kctx, cwd, root)
	if err != nil {
		return exitWithError(out, err)
	}
	opts, err := merged.Resolve(root)
	if err != nil {
		return exitWithError(out, err)
	}

	if err := env.ApplyProxyDefaults(opts.Registry); err != nil {
		return exitWithError(out, err)
	}

	workflow := deploy.NewDeployWorkflow(deps.Runner, deployUI, logger)
	result, err := workflow.Run(ctx, deploy.Request{
		Options:        opts,
		WorkDir:        root,
		PackageManager: merged.PackageManager,
		RegistryWait:   cli.Deploy.WaitRegistry,
	})
	if err != nil {
		return exitWithError(out, err)
	}
	logger.Debug("deploy finished", "outcome", result.Outcome, "identifier", result.Identifier)
	return 0
}

// resolveOptions layers, lowest first: defaults files, the options
// document, then flags.
func resolveOptions(flags DeployCmd, kctx *kong.Context, cwd, root string) (config.Options, error) {
	defaults, err := config.LoadDefaults(config.DefaultsPaths(root)...)
	if err != nil {
		return config.Options{}, err
	}

	var fileOpts config.Options
	if strings.TrimSpace(flags.Options) != "" {
		loaded, err := config.LoadOptionsFile(absFrom(cwd, flags.Options))
		if err != nil {
			return config.Options{}, err
		}
		fileOpts = loaded
	}

	otp := flags.OTP
	if otp == "" {
		// The env file is loaded after flag parsing.
		otp = envutil.GetHostEnv("OTP")
	}
	flagOpts := config.Options{
		DistFolderPath: flags.Dist,
		Access:         flags.Access,
		Tag:            flags.Tag,
		OTP:            otp,
		Registry:       flags.Registry,
		PackageVersion: flags.PackageVersion,
		PackageManager: flags.PackageManager,
	}
	if flagWasSet(kctx, "dry-run") {
		dryRun := flags.DryRun
		flagOpts.DryRun = &dryRun
	}
	if strings.TrimSpace(flags.CheckExisting) != "" {
		check, err := config.ParseCheckExisting(flags.CheckExisting)
		if err != nil {
			return config.Options{}, err
		}
		flagOpts.CheckExisting = &check
	}
	return config.Merge(config.Merge(defaults, fileOpts), flagOpts), nil
}

func flagWasSet(kctx *kong.Context, name string) bool {
	if kctx == nil {
		return false
	}
	for _, flag := range kctx.Flags() {
		if flag.Name == name {
			return flag.Set
		}
	}
	return false
}

func resolveRoot(flagRoot, cwd string) (string, error) {
	if strings.TrimSpace(flagRoot) != "" {
		return absFrom(cwd, flagRoot), nil
	}
	return config.ResolveWorkspaceRoot(cwd)
}

func absFrom(cwd, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cwd, path)
}

func resolveDeployEmojiEnabled(out io.Writer, flags DeployCmd) (bool, error) {
	mode, err := resolveEmojiMode(flags)
	if err != nil {
		return false, err
	}
	return ui.ResolveEmoji(out, mode), nil
}

func resolveEmojiMode(flags DeployCmd) (ui.EmojiMode, error) {
	switch {
	case flags.Emoji && flags.NoEmoji:
		return ui.EmojiAuto, errEmojiFlagConflict
	case flags.Emoji:
		return ui.EmojiOn, nil
	case flags.NoEmoji:
		return ui.EmojiOff, nil
	default:
		return ui.EmojiAuto, nil
	}
}
