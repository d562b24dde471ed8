// Where: cli/internal/domain/publish/errors.go
// What: Error kinds surfaced by a publish run.
// Why: Callers distinguish failure stages with errors.As/errors.Is.
package publish

import (
	"errors"
	"fmt"
	"strings"
)

// ErrVersionExists matches VersionExistsError through errors.Is.
var ErrVersionExists = errors.New("version already published")

// Outcome is the terminal state of a successful run.
type Outcome int

const (
	Published Outcome = iota
	SkippedExisting
)

func (o Outcome) String() string {
	switch o {
	case Published:
		return "published"
	case SkippedExisting:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ManifestReadError reports a manifest that could not be read or parsed.
type ManifestReadError struct {
	Path string
	Err  error
}

func (e *ManifestReadError) Error() string {
	return fmt.Sprintf("read package manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestReadError) Unwrap() error {
	return e.Err
}

// VersionExistsError reports that the probe found the version on the registry.
type VersionExistsError struct {
	Identifier string
}

func (e *VersionExistsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrVersionExists, e.Identifier)
}

func (e *VersionExistsError) Is(target error) bool {
	return target == ErrVersionExists
}

// VersionWriteError reports a failed manifest version rewrite.
type VersionWriteError struct {
	Path    string
	Version string
	Err     error
}

func (e *VersionWriteError) Error() string {
	return fmt.Sprintf("set package version %s in %s: %v", e.Version, e.Path, e.Err)
}

func (e *VersionWriteError) Unwrap() error {
	return e.Err
}

// PublishError reports a failed publish subprocess.
type PublishError struct {
	Command []string
	Err     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed (%s): %v", strings.Join(e.Command, " "), e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
