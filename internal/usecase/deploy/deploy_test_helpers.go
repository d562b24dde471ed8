package deploy

import (
	"context"
	"time"

	"github.com/poruru/npm-deploy/cli/internal/infra/ui"
)

type testUI struct {
	success []string
	info    []string
	warn    []string
	error   []string
	blocks  []string
}

func (u *testUI) Success(msg string) {
	u.success = append(u.success, msg)
}

func (u *testUI) Info(msg string) {
	u.info = append(u.info, msg)
}

func (u *testUI) Warn(msg string) {
	u.warn = append(u.warn, msg)
}

func (u *testUI) Error(msg string) {
	u.error = append(u.error, msg)
}

func (u *testUI) Block(_, title string, _ []ui.KeyValue) {
	u.blocks = append(u.blocks, title)
}

// fakeRunner is a test double for process.CommandRunner. Errors are keyed by
// the first argument ("view", "publish").
type fakeRunner struct {
	commands [][]string
	dirs     []string
	errs     map[string]error
}

func (r *fakeRunner) record(dir, name string, args []string) error {
	r.dirs = append(r.dirs, dir)
	r.commands = append(r.commands, append([]string{name}, args...))
	if len(args) == 0 {
		return nil
	}
	return r.errs[args[0]]
}

func (r *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	return r.record(dir, name, args)
}

func (r *fakeRunner) RunOutput(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	if err := r.record(dir, name, args); err != nil {
		return nil, err
	}
	return []byte("1.0.0\n"), nil
}

func (r *fakeRunner) subcommands() []string {
	out := make([]string, 0, len(r.commands))
	for _, cmd := range r.commands {
		if len(cmd) > 1 {
			out = append(out, cmd[1])
		}
	}
	return out
}

type fakeManifests struct {
	payload []byte
	err     error
	reads   []string
}

func (m *fakeManifests) ReadManifest(_ context.Context, dir string) ([]byte, error) {
	m.reads = append(m.reads, dir)
	return m.payload, m.err
}

type versionCall struct {
	dir     string
	version string
}

type fakeVersions struct {
	calls []versionCall
	err   error
}

func (v *fakeVersions) SetVersion(_ context.Context, dir, version string) error {
	v.calls = append(v.calls, versionCall{dir: dir, version: version})
	return v.err
}

func noopRegistryWaiter(_ context.Context, _ string, _ time.Duration) error {
	return nil
}
