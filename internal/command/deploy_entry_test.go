// Where: cli/internal/command/deploy_entry_test.go
// What: End-to-end tests for the deploy command with a fake package manager.
// Why: Verify flag/options layering and exit codes without a registry.
package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRunDeployPublishesWithAllFlags(t *testing.T) {
	ws := newTestWorkspace(t)
	runner := &fakeRunner{}

	code, out := runInWorkspace(ws, runner,
		"deploy", "dist/lib",
		"--access", "restricted",
		"--tag", "next",
		"--otp", "someValue",
		"--registry", "http://localhost:4873",
		"--dry-run",
	)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out)
	}
	want := [][]string{{
		"npm", "publish", ws.dist,
		"--access", "restricted",
		"--tag", "next",
		"--otp", "someValue",
		"--dry-run", "true",
		"--registry", "http://localhost:4873",
	}}
	if !reflect.DeepEqual(runner.commands, want) {
		t.Fatalf("commands = %#v, want %#v", runner.commands, want)
	}
	if strings.Contains(out, "someValue") {
		t.Fatalf("otp must not be printed: %s", out)
	}
}

func TestRunDeployOmitsDryRunWhenUnset(t *testing.T) {
	ws := newTestWorkspace(t)
	runner := &fakeRunner{}

	if code, out := runInWorkspace(ws, runner, "deploy", "dist/lib"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out)
	}
	want := []string{"npm", "publish", ws.dist, "--access", "public"}
	if !reflect.DeepEqual(runner.commands[0], want) {
		t.Fatalf("publish argv = %#v, want %#v", runner.commands[0], want)
	}
}

func TestRunDeployOptionsFileWithFlagOverrides(t *testing.T) {
	ws := newTestWorkspace(t)
	writeTestFile(t, filepath.Join(ws.root, "deploy.yaml"), `
distFolderPath: dist/lib
access: restricted
tag: beta
dryRun: true
checkExisting: true
registry: http://localhost:4873
`)
	runner := &fakeRunner{errs: map[string]error{"view": errors.New("E404")}}

	code, out := runInWorkspace(ws, runner, "deploy", "-c", "deploy.yaml", "--tag", "next", "--no-dry-run")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out)
	}
	want := [][]string{
		{"npm", "view", "@test/package@1.0.0", "version", "--registry", "http://localhost:4873"},
		{"npm", "publish", ws.dist, "--access", "restricted", "--tag", "next", "--dry-run", "false", "--registry", "http://localhost:4873"},
	}
	if !reflect.DeepEqual(runner.commands, want) {
		t.Fatalf("commands = %#v, want %#v", runner.commands, want)
	}
}

func TestRunDeployWarningSkipsExistingVersion(t *testing.T) {
	ws := newTestWorkspace(t)
	runner := &fakeRunner{}

	code, out := runInWorkspace(ws, runner, "deploy", "dist/lib", "--check-existing", "warning")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out)
	}
	want := [][]string{{"npm", "view", "@test/package@1.0.0", "version"}}
	if !reflect.DeepEqual(runner.commands, want) {
		t.Fatalf("commands = %#v, want %#v", runner.commands, want)
	}
	if !strings.Contains(out, "already published") {
		t.Fatalf("expected skip warning, got %q", out)
	}
}

func TestRunDeployErrorOnExistingVersion(t *testing.T) {
	ws := newTestWorkspace(t)
	runner := &fakeRunner{}

	code, out := runInWorkspace(ws, runner, "deploy", "dist/lib", "--check-existing", "error")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if len(runner.commands) != 1 || runner.commands[0][1] != "view" {
		t.Fatalf("publish must not run: %#v", runner.commands)
	}
	if !strings.Contains(out, "version already published: @test/package@1.0.0") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRunDeployWritesPackageVersion(t *testing.T) {
	ws := newTestWorkspace(t)
	runner := &fakeRunner{}

	code, out := runInWorkspace(ws, runner, "deploy", "dist/lib", "--package-version", "v2.1.0")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out)
	}
	payload, err := os.ReadFile(filepath.Join(ws.dist, "package.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if !strings.Contains(string(payload), `"version":"2.1.0"`) {
		t.Fatalf("version not written: %s", payload)
	}
}

func TestRunDeployDryRunKeepsManifest(t *testing.T) {
	ws := newTestWorkspace(t)
	runner := &fakeRunner{}

	code, out := runInWorkspace(ws, runner, "deploy", "dist/lib", "--package-version", "2.1.0", "--dry-run")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out)
	}
	payload, _ := os.ReadFile(filepath.Join(ws.dist, "package.json"))
	if string(payload) != `{"name":"@test/package","version":"1.0.0"}` {
		t.Fatalf("dry run must not touch the manifest: %s", payload)
	}
}

func TestRunDeployPublishFailureExitsNonZero(t *testing.T) {
	ws := newTestWorkspace(t)
	runner := &fakeRunner{errs: map[string]error{"publish": errors.New("npm ERR! code E403")}}

	code, out := runInWorkspace(ws, runner, "deploy", "dist/lib")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out, "E403") {
		t.Fatalf("cause must be surfaced: %q", out)
	}
}

func TestRunDeployRequiresDist(t *testing.T) {
	ws := newTestWorkspace(t)
	runner := &fakeRunner{}

	code, out := runInWorkspace(ws, runner, "deploy")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out, "dist folder path is required") {
		t.Fatalf("unexpected output: %q", out)
	}
	if len(runner.commands) != 0 {
		t.Fatalf("no command may run: %#v", runner.commands)
	}
}

func TestRunDeployRejectsEmojiConflict(t *testing.T) {
	ws := newTestWorkspace(t)
	code, _ := runInWorkspace(ws, &fakeRunner{}, "deploy", "dist/lib", "--emoji", "--no-emoji")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunDeployUsesWorkspaceDefaults(t *testing.T) {
	ws := newTestWorkspace(t)
	writeTestFile(t, filepath.Join(ws.root, ".npm-deploy", "config.yaml"),
		"registry: http://localhost:4873\npackage-manager: pnpm\n")
	runner := &fakeRunner{}

	if code, out := runInWorkspace(ws, runner, "deploy", "dist/lib"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out)
	}
	want := []string{"pnpm", "publish", ws.dist, "--access", "public", "--registry", "http://localhost:4873"}
	if !reflect.DeepEqual(runner.commands[0], want) {
		t.Fatalf("publish argv = %#v, want %#v", runner.commands[0], want)
	}
}

func TestRunDeployOptionsFileOverridesDefaults(t *testing.T) {
	ws := newTestWorkspace(t)
	writeTestFile(t, filepath.Join(ws.root, ".npm-deploy", "config.yaml"),
		"dry-run: false\nregistry: http://defaults:4873\ntag: beta\n")
	writeTestFile(t, filepath.Join(ws.root, "deploy.yaml"),
		"distFolderPath: dist/lib\ndryRun: true\nregistry: http://file:4873\n")
	runner := &fakeRunner{}

	if code, out := runInWorkspace(ws, runner, "deploy", "-c", "deploy.yaml"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out)
	}
	want := []string{"npm", "publish", ws.dist, "--access", "public", "--tag", "beta", "--dry-run", "true", "--registry", "http://file:4873"}
	if !reflect.DeepEqual(runner.commands[0], want) {
		t.Fatalf("publish argv = %#v, want %#v", runner.commands[0], want)
	}
}

func TestRunDeployFlagsOverrideDefaults(t *testing.T) {
	ws := newTestWorkspace(t)
	writeTestFile(t, filepath.Join(os.Getenv("HOME"), ".npm-deploy", "config.yaml"), "registry: http://user:4873\n")
	writeTestFile(t, filepath.Join(ws.root, ".npm-deploy", "config.yaml"), "registry: http://workspace:4873\n")
	runner := &fakeRunner{}

	if code, out := runInWorkspace(ws, runner, "deploy", "dist/lib"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out)
	}
	if got := runner.commands[0][len(runner.commands[0])-1]; got != "http://workspace:4873" {
		t.Fatalf("workspace defaults must win over user defaults, got %q", got)
	}

	runner = &fakeRunner{}
	if code, out := runInWorkspace(ws, runner, "deploy", "dist/lib", "--registry", "http://flag:4873", "--no-dry-run"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out)
	}
	want := []string{"npm", "publish", ws.dist, "--access", "public", "--dry-run", "false", "--registry", "http://flag:4873"}
	if !reflect.DeepEqual(runner.commands[0], want) {
		t.Fatalf("publish argv = %#v, want %#v", runner.commands[0], want)
	}
}

func TestRunDeployDefaultsAcceptLegacyCheckExisting(t *testing.T) {
	ws := newTestWorkspace(t)
	writeTestFile(t, filepath.Join(ws.root, ".npm-deploy", "config.yaml"), "check-existing: true\n")
	runner := &fakeRunner{}

	code, out := runInWorkspace(ws, runner, "deploy", "dist/lib")
	if code != 1 {
		t.Fatalf("expected exit code 1 for an existing version, got %d: %s", code, out)
	}
	want := [][]string{{"npm", "view", "@test/package@1.0.0", "version"}}
	if !reflect.DeepEqual(runner.commands, want) {
		t.Fatalf("commands = %#v, want %#v", runner.commands, want)
	}
	if !strings.Contains(out, "version already published") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRunDeployRejectsInvalidDefaults(t *testing.T) {
	ws := newTestWorkspace(t)
	writeTestFile(t, filepath.Join(ws.root, ".npm-deploy", "config.yaml"), "dry-run: maybe\n")
	runner := &fakeRunner{}

	if code, _ := runInWorkspace(ws, runner, "deploy", "dist/lib"); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if len(runner.commands) != 0 {
		t.Fatalf("no command may run: %#v", runner.commands)
	}
}

func TestRunDeployReadsOTPFromEnvFile(t *testing.T) {
	ws := newTestWorkspace(t)
	writeTestFile(t, filepath.Join(ws.root, ".env"), "NPM_DEPLOY_OTP=654321\n")
	os.Unsetenv("NPM_DEPLOY_OTP")
	runner := &fakeRunner{}

	if code, out := runInWorkspace(ws, runner, "deploy", "dist/lib"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out)
	}
	want := []string{"npm", "publish", ws.dist, "--access", "public", "--otp", "654321"}
	if !reflect.DeepEqual(runner.commands[0], want) {
		t.Fatalf("publish argv = %#v, want %#v", runner.commands[0], want)
	}
}

func TestRunDeployWithoutRunnerFails(t *testing.T) {
	ws := newTestWorkspace(t)
	var out strings.Builder
	code := Run(context.Background(), []string{"deploy", "dist/lib"}, Dependencies{
		Out:   &out,
		Getwd: func() (string, error) { return ws.root, nil },
	})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "runner") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
