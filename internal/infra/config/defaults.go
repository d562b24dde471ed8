// Where: cli/internal/infra/config/defaults.go
// What: YAML defaults files for deploy options.
// Why: Let users keep registry/package manager defaults in ~/.npm-deploy/config.yaml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/poruru/npm-deploy/cli/internal/meta"
	"gopkg.in/yaml.v3"
)

// DefaultsPaths returns the user and workspace defaults files, lowest
// precedence first.
func DefaultsPaths(workspaceRoot string) []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, meta.HomeDir, meta.ConfigFilename))
	}
	if strings.TrimSpace(workspaceRoot) != "" {
		paths = append(paths, filepath.Join(workspaceRoot, meta.HomeDir, meta.ConfigFilename))
	}
	return paths
}

// LoadDefaults reads every existing file in paths; later files win.
// Missing files are skipped.
func LoadDefaults(paths ...string) (Options, error) {
	var merged Options
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Options{}, fmt.Errorf("open defaults %s: %w", path, err)
		}
		opts, err := ParseDefaults(file)
		_ = file.Close()
		if err != nil {
			return Options{}, fmt.Errorf("%s: %w", path, err)
		}
		merged = Merge(merged, opts)
	}
	return merged, nil
}

// ParseDefaults decodes one defaults document. Keys may be written in
// kebab-case, snake_case or camelCase; unknown keys are ignored.
func ParseDefaults(r io.Reader) (Options, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("decode defaults: %w", err)
	}
	lookup := func(name string) (any, bool) {
		for _, key := range flagKeys(name) {
			if value, ok := values[key]; ok && value != nil {
				return value, true
			}
		}
		return nil, false
	}

	var opts Options
	for name, dst := range map[string]*string{
		"access":          &opts.Access,
		"tag":             &opts.Tag,
		"registry":        &opts.Registry,
		"package-manager": &opts.PackageManager,
	} {
		if value, ok := lookup(name); ok {
			*dst = scalarString(value)
		}
	}
	if value, ok := lookup("dry-run"); ok {
		dryRun, err := strconv.ParseBool(scalarString(value))
		if err != nil {
			return Options{}, fmt.Errorf("%w: dry-run %v", errInvalidOptions, value)
		}
		opts.DryRun = &dryRun
	}
	if value, ok := lookup("check-existing"); ok {
		check, err := ParseCheckExisting(value)
		if err != nil {
			return Options{}, err
		}
		opts.CheckExisting = &check
	}
	return opts, nil
}

func flagKeys(name string) []string {
	parts := strings.Split(name, "-")
	camel := parts[0]
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		camel += strings.ToUpper(part[:1]) + part[1:]
	}
	return []string{name, strings.ReplaceAll(name, "-", "_"), camel}
}
