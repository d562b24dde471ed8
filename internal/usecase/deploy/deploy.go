// Where: cli/internal/usecase/deploy/deploy.go
// What: Publish workflow orchestration.
// Why: Encapsulate the existence check, version write and publish steps without CLI concerns.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/poruru/npm-deploy/cli/internal/domain/publish"
	"github.com/poruru/npm-deploy/cli/internal/infra/logging"
	"github.com/poruru/npm-deploy/cli/internal/infra/manifest"
	"github.com/poruru/npm-deploy/cli/internal/infra/process"
	"github.com/poruru/npm-deploy/cli/internal/infra/ui"
	"github.com/poruru/npm-deploy/cli/internal/meta"
)

var (
	errRunnerNotConfigured         = errors.New("command runner is not configured")
	errManifestReaderNotConfigured = errors.New("manifest reader is not configured")
	errVersionWriterNotConfigured  = errors.New("version writer is not configured")
)

// ManifestReader returns the raw manifest text of a dist folder.
type ManifestReader interface {
	ReadManifest(ctx context.Context, dir string) ([]byte, error)
}

// VersionWriter rewrites the manifest version of a dist folder.
type VersionWriter interface {
	SetVersion(ctx context.Context, dir, version string) error
}

// Request captures the inputs required to publish one package.
type Request struct {
	Options publish.DeployOptions
	// WorkDir is the subprocess working directory; empty inherits the caller's.
	WorkDir        string
	PackageManager string
	RegistryWait   time.Duration
}

func (r Request) packageManager() string {
	if pm := strings.TrimSpace(r.PackageManager); pm != "" {
		return pm
	}
	return meta.PackageManager
}

// Result describes a completed run.
type Result struct {
	Outcome    publish.Outcome
	Identifier string
	Command    []string
}

// Workflow executes the publish orchestration steps.
type Workflow struct {
	Runner         process.CommandRunner
	Manifests      ManifestReader
	Versions       VersionWriter
	UserInterface  ui.UserInterface
	Logger         *log.Logger
	RegistryWaiter RegistryWaiter
}

// NewDeployWorkflow constructs a Workflow backed by the given runner and the
// package.json file store.
func NewDeployWorkflow(runner process.CommandRunner, ui ui.UserInterface, logger *log.Logger) Workflow {
	store := manifest.FileStore{}
	return Workflow{
		Runner:         runner,
		Manifests:      store,
		Versions:       store,
		UserInterface:  ui,
		Logger:         logger,
		RegistryWaiter: defaultRegistryWaiter,
	}
}

// Run executes the publish workflow. Steps run strictly in order and the
// first failure ends the run.
func (w Workflow) Run(ctx context.Context, req Request) (Result, error) {
	if w.Runner == nil {
		return Result{}, errRunnerNotConfigured
	}
	opts := req.Options
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	pm := req.packageManager()
	w.emitPlan(req, pm)

	if req.RegistryWait > 0 && opts.Registry != "" && w.RegistryWaiter != nil {
		if err := w.RegistryWaiter(ctx, opts.Registry, req.RegistryWait); err != nil {
			return Result{}, fmt.Errorf("registry not ready: %w", err)
		}
	}

	if opts.CheckExisting.Enabled() {
		identifier, exists, err := w.probeExisting(ctx, req, pm)
		if err != nil {
			return Result{}, err
		}
		if exists {
			if opts.CheckExisting == publish.WarnIfExists {
				w.warn(fmt.Sprintf("%s is already published, skipping publish", identifier))
				return Result{Outcome: publish.SkippedExisting, Identifier: identifier}, nil
			}
			return Result{}, &publish.VersionExistsError{Identifier: identifier}
		}
	}

	if opts.PackageVersion != "" && !opts.IsDryRun() {
		if w.Versions == nil {
			return Result{}, errVersionWriterNotConfigured
		}
		if err := w.Versions.SetVersion(ctx, opts.DistFolderPath, opts.PackageVersion); err != nil {
			return Result{}, &publish.VersionWriteError{
				Path:    manifest.Path(opts.DistFolderPath),
				Version: opts.PackageVersion,
				Err:     err,
			}
		}
		w.logger().Debug("package version set", "version", opts.PackageVersion)
	}

	args := PublishArgs(opts.DistFolderPath, opts)
	display := append([]string{pm}, RedactArgs(args)...)
	w.logger().Debug("running publish", "command", strings.Join(display, " "))
	if err := w.Runner.Run(ctx, req.WorkDir, pm, args...); err != nil {
		return Result{}, &publish.PublishError{Command: display, Err: err}
	}

	if w.UserInterface != nil {
		if opts.IsDryRun() {
			w.UserInterface.Success("Publish dry run complete")
		} else {
			w.UserInterface.Success("Publish complete")
		}
	}
	return Result{Outcome: publish.Published, Command: display}, nil
}

// probeExisting reports whether name@version from the dist manifest is
// already on the registry. Any probe failure counts as absent.
func (w Workflow) probeExisting(ctx context.Context, req Request, pm string) (string, bool, error) {
	dist := req.Options.DistFolderPath
	if w.Manifests == nil {
		return "", false, errManifestReaderNotConfigured
	}
	payload, err := w.Manifests.ReadManifest(ctx, dist)
	if err != nil {
		return "", false, &publish.ManifestReadError{Path: manifest.Path(dist), Err: err}
	}
	pkg, err := publish.ParseManifest(payload)
	if err != nil {
		return "", false, &publish.ManifestReadError{Path: manifest.Path(dist), Err: err}
	}

	identifier := pkg.Identifier()
	args := ViewArgs(identifier, req.Options.Registry)
	output, err := w.Runner.RunOutput(ctx, req.WorkDir, pm, args...)
	if err != nil {
		w.logger().Debug("existence probe failed, treating as unpublished",
			"identifier", identifier, "error", err)
		return identifier, false, nil
	}
	w.logger().Debug("existence probe succeeded",
		"identifier", identifier, "output", strings.TrimSpace(string(output)))
	return identifier, true, nil
}

func (w Workflow) emitPlan(req Request, pm string) {
	if w.UserInterface == nil {
		return
	}
	opts := req.Options
	rows := []ui.KeyValue{
		{Key: "Dist", Value: opts.DistFolderPath},
		{Key: "Package manager", Value: pm},
		{Key: "Access", Value: opts.Access},
		{Key: "Tag", Value: valueOr(opts.Tag, "(default)")},
		{Key: "Registry", Value: valueOr(opts.Registry, "(default)")},
		{Key: "Version", Value: valueOr(opts.PackageVersion, "(manifest)")},
		{Key: "Check existing", Value: opts.CheckExisting},
		{Key: "Dry run", Value: opts.IsDryRun()},
	}
	if opts.OTP != "" {
		rows = append(rows, ui.KeyValue{Key: "OTP", Value: redacted})
	}
	w.UserInterface.Block("📦", "Publish plan", rows)
}

func (w Workflow) warn(msg string) {
	if w.UserInterface != nil {
		w.UserInterface.Warn(msg)
	}
}

// logger drops diagnostics when no logger is injected.
func (w Workflow) logger() *log.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return logging.Discard()
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
