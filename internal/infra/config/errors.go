// Where: cli/internal/infra/config/errors.go
// What: Shared error definitions for configuration loading.
// Why: Ensure consistent error wrapping without dynamic error creation.
package config

import "errors"

var (
	errDistFolderRequired = errors.New("dist folder path is required")
	errInvalidOptions     = errors.New("invalid deploy options")
	errWorkspaceNotFound  = errors.New("workspace root not found")
)
