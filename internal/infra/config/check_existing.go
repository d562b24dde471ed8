// Where: cli/internal/infra/config/check_existing.go
// What: checkExisting option parsing including the legacy boolean form.
// Why: The domain only knows the three-way variant; legacy values stop here.
package config

import (
	"fmt"
	"strings"

	"github.com/poruru/npm-deploy/cli/internal/domain/publish"
)

// ParseCheckExisting maps a raw option value to the domain variant.
// Legacy true maps to ErrorIfExists and false to off.
func ParseCheckExisting(value any) (publish.CheckExisting, error) {
	switch v := value.(type) {
	case nil:
		return publish.CheckExistingOff, nil
	case bool:
		return legacyCheckExisting(v), nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return legacyCheckExisting(true), nil
		case "false":
			return legacyCheckExisting(false), nil
		}
		return publish.ParseCheckExisting(v)
	default:
		return publish.CheckExistingOff, fmt.Errorf("%w: unsupported checkExisting value %v", errInvalidOptions, value)
	}
}

func legacyCheckExisting(enabled bool) publish.CheckExisting {
	if enabled {
		return publish.ErrorIfExists
	}
	return publish.CheckExistingOff
}
