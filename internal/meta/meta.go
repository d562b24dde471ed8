// Where: cli/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep branding, file names and env keys in one place.
package meta

const (
	// Project Identity
	AppName   = "npm-deploy"
	EnvPrefix = "NPM_DEPLOY"

	// Package manager defaults
	PackageManager = "npm"
	ManifestFile   = "package.json"

	// Directory Layout
	HomeDir        = ".npm-deploy"
	ConfigFilename = "config.yaml"
)
