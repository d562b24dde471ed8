// Where: cli/internal/infra/manifest/store.go
// What: package.json reader and version writer.
// Why: Provide the manifest collaborators used by the publish workflow.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"
	"github.com/poruru/npm-deploy/cli/internal/domain/publish"
	"github.com/poruru/npm-deploy/cli/internal/meta"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	errManifestInvalid   = errors.New("manifest is not valid JSON")
	errManifestNotObject = errors.New("manifest is not a JSON object")
)

// FileStore reads and rewrites the manifest inside a dist folder.
type FileStore struct{}

// Path returns the manifest location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, meta.ManifestFile)
}

// ReadManifest returns the raw manifest text.
func (FileStore) ReadManifest(ctx context.Context, dir string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return payload, nil
}

// SetVersion rewrites the version value in place. Key order, formatting and
// file mode are kept.
func (FileStore) SetVersion(ctx context.Context, dir, version string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	normalized, err := publish.NormalizeVersion(version)
	if err != nil {
		return err
	}
	path := Path(dir)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat manifest: %w", err)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	updated, err := replaceVersion(payload, normalized)
	if err != nil {
		return err
	}
	if err := atomicwriter.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// replaceVersion sets "version" on the top-level object. Only the version
// value changes; a missing version is appended.
func replaceVersion(payload []byte, version string) ([]byte, error) {
	if !gjson.ValidBytes(payload) {
		return nil, errManifestInvalid
	}
	if !gjson.ParseBytes(payload).IsObject() {
		return nil, errManifestNotObject
	}
	updated, err := sjson.SetBytes(payload, "version", version)
	if err != nil {
		return nil, fmt.Errorf("set version: %w", err)
	}
	return updated, nil
}
