// Where: cli/internal/domain/publish/manifest.go
// What: Package manifest identity parsing.
// Why: The existence probe only needs name and version from package.json.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	errManifestNameRequired    = errors.New("manifest name is required")
	errManifestVersionRequired = errors.New("manifest version is required")
)

// PackageManifest is the identity part of a package.json document.
type PackageManifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ParseManifest decodes raw package.json text.
func ParseManifest(payload []byte) (PackageManifest, error) {
	var manifest PackageManifest
	if err := json.Unmarshal(payload, &manifest); err != nil {
		return PackageManifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	manifest.Name = strings.TrimSpace(manifest.Name)
	manifest.Version = strings.TrimSpace(manifest.Version)
	if manifest.Name == "" {
		return PackageManifest{}, errManifestNameRequired
	}
	if manifest.Version == "" {
		return PackageManifest{}, errManifestVersionRequired
	}
	return manifest, nil
}

// Identifier returns "<name>@<version>" as used by npm view.
func (m PackageManifest) Identifier() string {
	return m.Name + "@" + m.Version
}
