// Where: cli/internal/infra/config/env_file.go
// What: dotenv loading for option templates and the package manager.
// Why: CI pipelines commonly pass release data (versions, tags) through .env files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads path into the process environment. With an empty path,
// "<dir>/.env" is loaded when present. It returns the loaded file, if any.
// Existing variables are never overridden.
func LoadEnvFile(path, dir string) (string, error) {
	if strings.TrimSpace(path) != "" {
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("load env file %s: %w", path, err)
		}
		return path, nil
	}
	candidate := filepath.Join(dir, ".env")
	if _, err := os.Stat(candidate); err != nil {
		return "", nil
	}
	if err := godotenv.Load(candidate); err != nil {
		return "", fmt.Errorf("load env file %s: %w", candidate, err)
	}
	return candidate, nil
}
