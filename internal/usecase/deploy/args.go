// Where: cli/internal/usecase/deploy/args.go
// What: Package manager argument builders.
// Why: Token order is part of the CLI contract and must stay deterministic.
package deploy

import (
	"strconv"

	"github.com/poruru/npm-deploy/cli/internal/domain/publish"
	"github.com/poruru/npm-deploy/cli/internal/infra/process"
)

const redacted = process.Masked

// PublishArgs returns the publish argv (without the executable).
// Flags follow a fixed order: access, tag, otp, dry-run, registry.
func PublishArgs(distFolderPath string, opts publish.DeployOptions) []string {
	args := []string{"publish", distFolderPath, "--access", opts.Access.String()}
	if opts.Tag != "" {
		args = append(args, "--tag", opts.Tag)
	}
	if opts.OTP != "" {
		args = append(args, "--otp", opts.OTP)
	}
	if opts.DryRun != nil {
		args = append(args, "--dry-run", strconv.FormatBool(*opts.DryRun))
	}
	if opts.Registry != "" {
		args = append(args, "--registry", opts.Registry)
	}
	return args
}

// ViewArgs returns the existence probe argv for "<name>@<version>".
func ViewArgs(identifier, registry string) []string {
	args := []string{"view", identifier, "version"}
	if registry != "" {
		args = append(args, "--registry", registry)
	}
	return args
}

// RedactArgs returns a copy of args with the one-time password masked.
func RedactArgs(args []string) []string {
	return process.MaskFlagValues(args, "--otp")
}
