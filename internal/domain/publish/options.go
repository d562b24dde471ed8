// Where: cli/internal/domain/publish/options.go
// What: Publish option types and validation.
// Why: Keep the publish request shape pure so usecase/infra share one model.
package publish

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	errDistFolderRequired    = errors.New("dist folder path is required")
	errUnsupportedAccess     = errors.New("unsupported access")
	errUnsupportedCheck      = errors.New("unsupported check-existing mode")
	errInvalidRegistry       = errors.New("invalid registry url")
	errInvalidPackageVersion = errors.New("invalid package version")
)

// Access is the registry visibility of a published package.
type Access string

const (
	AccessPublic     Access = "public"
	AccessRestricted Access = "restricted"
)

// ParseAccess validates and normalizes an access value.
func ParseAccess(value string) (Access, error) {
	normalized := Access(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case AccessPublic, AccessRestricted:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w: %q (use public|restricted)", errUnsupportedAccess, value)
	}
}

func (a Access) String() string {
	return string(a)
}

// CheckExisting selects what happens when the version is already on the registry.
type CheckExisting int

const (
	CheckExistingOff CheckExisting = iota
	WarnIfExists
	ErrorIfExists
)

// ParseCheckExisting parses the enum names only. Legacy boolean values are
// mapped by the configuration layer.
func ParseCheckExisting(value string) (CheckExisting, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "off":
		return CheckExistingOff, nil
	case "warning":
		return WarnIfExists, nil
	case "error":
		return ErrorIfExists, nil
	default:
		return CheckExistingOff, fmt.Errorf("%w: %q (use off|warning|error)", errUnsupportedCheck, value)
	}
}

func (c CheckExisting) String() string {
	switch c {
	case CheckExistingOff:
		return "off"
	case WarnIfExists:
		return "warning"
	case ErrorIfExists:
		return "error"
	default:
		return fmt.Sprintf("CheckExisting(%d)", int(c))
	}
}

// Enabled reports whether an existence probe must run before publish.
func (c CheckExisting) Enabled() bool {
	return c == WarnIfExists || c == ErrorIfExists
}

// DeployOptions describes one publish request. It is passed by value and
// never mutated by a run.
type DeployOptions struct {
	DistFolderPath string
	Access         Access
	Tag            string
	OTP            string
	// DryRun is nil when the option was not given; no flag is emitted then.
	DryRun         *bool
	Registry       string
	PackageVersion string
	CheckExisting  CheckExisting
}

// IsDryRun reports whether dry run was explicitly requested.
func (o DeployOptions) IsDryRun() bool {
	return o.DryRun != nil && *o.DryRun
}

// Validate checks the option invariants.
func (o DeployOptions) Validate() error {
	if strings.TrimSpace(o.DistFolderPath) == "" {
		return errDistFolderRequired
	}
	if _, err := ParseAccess(string(o.Access)); err != nil {
		return err
	}
	switch o.CheckExisting {
	case CheckExistingOff, WarnIfExists, ErrorIfExists:
	default:
		return fmt.Errorf("%w: %s", errUnsupportedCheck, o.CheckExisting)
	}
	if o.Registry != "" {
		if err := validateRegistryURL(o.Registry); err != nil {
			return err
		}
	}
	if o.PackageVersion != "" {
		if _, err := NormalizeVersion(o.PackageVersion); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeVersion parses a semantic version the way npm does for manifest
// versions: surrounding space and a leading "v" or "=" are dropped.
func NormalizeVersion(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	trimmed = strings.TrimLeft(trimmed, "=v")
	parsed, err := semver.StrictNewVersion(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", errInvalidPackageVersion, value, err)
	}
	return parsed.String(), nil
}

func validateRegistryURL(registry string) error {
	parsed, err := url.Parse(strings.TrimSpace(registry))
	if err != nil {
		return fmt.Errorf("%w %q: %v", errInvalidRegistry, registry, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w %q: scheme must be http or https", errInvalidRegistry, registry)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w %q: host is required", errInvalidRegistry, registry)
	}
	return nil
}
