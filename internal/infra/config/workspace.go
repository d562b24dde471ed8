// Where: cli/internal/infra/config/workspace.go
// What: Workspace root discovery.
// Why: Relative dist folders are resolved against the monorepo root, not the cwd.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/poruru/npm-deploy/cli/internal/infra/envutil"
)

const envSuffixWorkspaceRoot = "WORKSPACE_ROOT"

var workspaceMarkers = []string{
	"nx.json",
	"pnpm-workspace.yaml",
	"lerna.json",
	"turbo.json",
}

// ResolveWorkspaceRoot determines the workspace root.
// Priority order.
// 1. NPM_DEPLOY_WORKSPACE_ROOT.
// 2. Upward search for a monorepo marker file from startDir.
// 3. startDir itself.
func ResolveWorkspaceRoot(startDir string) (string, error) {
	if root := envutil.GetHostEnv(envSuffixWorkspaceRoot); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", envutil.HostEnvKey(envSuffixWorkspaceRoot), err)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("%w: %s=%s", errWorkspaceNotFound, envutil.HostEnvKey(envSuffixWorkspaceRoot), root)
		}
		return abs, nil
	}

	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start dir: %w", err)
	}
	if root, ok := findWorkspaceRoot(start); ok {
		return root, nil
	}
	return start, nil
}

func findWorkspaceRoot(dir string) (string, bool) {
	for {
		for _, marker := range workspaceMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
