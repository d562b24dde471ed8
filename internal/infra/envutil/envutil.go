// Package envutil provides helper functions for brand-prefixed environment variables.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru/npm-deploy/cli/internal/meta"
)

// HostEnvKey constructs a brand-prefixed environment variable name.
// Example: HostEnvKey("OTP") returns "NPM_DEPLOY_OTP".
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// GetHostEnv retrieves a brand-prefixed environment variable, trimmed.
// Example: GetHostEnv("WORKSPACE_ROOT") returns the value of NPM_DEPLOY_WORKSPACE_ROOT.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}
