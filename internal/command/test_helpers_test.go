package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

// fakeRunner records package manager invocations. Errors are keyed by the
// subcommand ("view", "publish").
type fakeRunner struct {
	commands [][]string
	errs     map[string]error
}

func (r *fakeRunner) record(name string, args []string) error {
	r.commands = append(r.commands, append([]string{name}, args...))
	if len(args) == 0 || r.errs == nil {
		return nil
	}
	return r.errs[args[0]]
}

func (r *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) error {
	return r.record(name, args)
}

func (r *fakeRunner) RunOutput(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
	if err := r.record(name, args); err != nil {
		return nil, err
	}
	return []byte("1.0.0\n"), nil
}

type testWorkspace struct {
	root string
	dist string
}

// newTestWorkspace creates <root>/nx.json and <root>/dist/lib/package.json.
func newTestWorkspace(t *testing.T) testWorkspace {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NPM_DEPLOY_OTP", "")
	t.Setenv("NPM_DEPLOY_WORKSPACE_ROOT", "")
	t.Setenv("NO_EMOJI", "1")

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "nx.json"), "{}")
	dist := filepath.Join(root, "dist", "lib")
	writeTestFile(t, filepath.Join(dist, "package.json"), `{"name":"@test/package","version":"1.0.0"}`)
	return testWorkspace{root: root, dist: dist}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runInWorkspace(ws testWorkspace, runner *fakeRunner, args ...string) (int, string) {
	var out bytes.Buffer
	code := Run(context.Background(), args, Dependencies{
		Out:    &out,
		ErrOut: &bytes.Buffer{},
		Runner: runner,
		Getwd:  func() (string, error) { return ws.root, nil },
	})
	return code, out.String()
}
