// Where: cli/internal/infra/config/options.go
// What: Unresolved deploy options and their resolution into the domain model.
// Why: Keep optional/legacy option shapes at the configuration boundary.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/poruru/npm-deploy/cli/internal/domain/publish"
)

// Options is a partially specified deploy request as read from an options
// document or from flags. Empty strings and nil pointers mean "not set".
type Options struct {
	DistFolderPath string
	Access         string
	Tag            string
	OTP            string
	DryRun         *bool
	Registry       string
	PackageVersion string
	CheckExisting  *publish.CheckExisting
	PackageManager string
}

// Merge returns base with every set field of override applied on top.
func Merge(base, override Options) Options {
	merged := base
	mergeString(&merged.DistFolderPath, override.DistFolderPath)
	mergeString(&merged.Access, override.Access)
	mergeString(&merged.Tag, override.Tag)
	mergeString(&merged.OTP, override.OTP)
	mergeString(&merged.Registry, override.Registry)
	mergeString(&merged.PackageVersion, override.PackageVersion)
	mergeString(&merged.PackageManager, override.PackageManager)
	if override.DryRun != nil {
		v := *override.DryRun
		merged.DryRun = &v
	}
	if override.CheckExisting != nil {
		v := *override.CheckExisting
		merged.CheckExisting = &v
	}
	return merged
}

func mergeString(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = value
	}
}

// Resolve produces domain options. The dist folder is made absolute against
// workspaceRoot and access defaults to public.
func (o Options) Resolve(workspaceRoot string) (publish.DeployOptions, error) {
	dist := strings.TrimSpace(o.DistFolderPath)
	if dist == "" {
		return publish.DeployOptions{}, errDistFolderRequired
	}
	if !filepath.IsAbs(dist) {
		dist = filepath.Join(workspaceRoot, dist)
	}
	abs, err := filepath.Abs(dist)
	if err != nil {
		return publish.DeployOptions{}, fmt.Errorf("resolve dist folder: %w", err)
	}

	accessValue := o.Access
	if strings.TrimSpace(accessValue) == "" {
		accessValue = string(publish.AccessPublic)
	}
	access, err := publish.ParseAccess(accessValue)
	if err != nil {
		return publish.DeployOptions{}, err
	}

	check := publish.CheckExistingOff
	if o.CheckExisting != nil {
		check = *o.CheckExisting
	}

	var dryRun *bool
	if o.DryRun != nil {
		v := *o.DryRun
		dryRun = &v
	}

	opts := publish.DeployOptions{
		DistFolderPath: abs,
		Access:         access,
		Tag:            strings.TrimSpace(o.Tag),
		OTP:            strings.TrimSpace(o.OTP),
		DryRun:         dryRun,
		Registry:       strings.TrimSpace(o.Registry),
		PackageVersion: strings.TrimSpace(o.PackageVersion),
		CheckExisting:  check,
	}
	if err := opts.Validate(); err != nil {
		return publish.DeployOptions{}, err
	}
	return opts, nil
}
