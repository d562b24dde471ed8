// Where: cli/internal/command/app_test.go
// What: Tests for CLI run behavior.
// Why: Ensure command routing remains stable.
package command

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRunNoArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	exitCode := Run(context.Background(), nil, Dependencies{Out: &out})
	if exitCode != 0 {
		t.Fatalf("expected zero exit code, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "npm-deploy deploy --help") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunVersion(t *testing.T) {
	ws := newTestWorkspace(t)
	code, out := runInWorkspace(ws, &fakeRunner{}, "version")
	if code != 0 {
		t.Fatalf("expected zero exit code, got %d", code)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected version output")
	}
}

func TestRunUnknownFlagFails(t *testing.T) {
	ws := newTestWorkspace(t)
	code, out := runInWorkspace(ws, &fakeRunner{}, "deploy", "--bogus")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out, "bogus") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRunOptionsFlagWithoutValue(t *testing.T) {
	ws := newTestWorkspace(t)
	code, out := runInWorkspace(ws, &fakeRunner{}, "deploy", "--options")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d: %s", code, out)
	}
}
