// Package configloader provides configuration loading and resolution.
// It discovers .mdlrc settings and style files, merges them with the
// environment and flags, and resolves the style they name.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project files.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit settings file (from --config flag).
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level settings.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips the upward search for .mdlrc and style files.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLI contains settings from CLI flags. These take highest precedence.
	CLI *Settings
}

// LoadResult contains the resolved settings, the style, and metadata.
type LoadResult struct {
	// Settings is the final merged settings.
	Settings *Settings

	// Style is the parsed style the settings name.
	Style *style.File

	// StylePath is the resolved style location, or "builtin:<name>".
	StylePath string

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the settings files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final settings by merging all sources, then loads the
// style they name.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLI)
//  2. Environment variables (MDLSTYLE_*)
//  3. Explicit settings file (opts.ExplicitPath)
//  4. Project .mdlrc (upward search)
//  5. Project style file (.mdl.rb, found in the same search)
//  6. User settings (~/.mdlrc)
//  7. Defaults (the "default" built-in style)
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	settings := &Settings{Style: DefaultStyle}

	load := func(path, what string) error {
		layer, warnings, err := LoadSettingsFile(ctx, path)
		if err != nil {
			return fmt.Errorf("load %s settings: %w", what, err)
		}
		logger.Debug("loaded settings", logging.FieldPath, path, logging.FieldSource, what)
		settings = merge(settings, layer)
		result.LoadedFrom = append(result.LoadedFrom, path)
		result.Warnings = append(result.Warnings, warnings...)
		return nil
	}

	if !opts.IgnoreUserConfig && paths.User != "" {
		if err := load(paths.User, "user"); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreProjectConfig {
		if paths.ProjectStyle != "" {
			settings = merge(settings, &Settings{Style: paths.ProjectStyle})
		}
		if paths.Project != "" && paths.Project != paths.User {
			if err := load(paths.Project, "project"); err != nil {
				return nil, err
			}
		}
		if paths.Project == "" && paths.ProjectStyle == "" && paths.Markdownlint != "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("found %s but no style; run 'mdlstyle convert %s' to create one",
					paths.Markdownlint, paths.Markdownlint))
		}
	}

	if opts.ExplicitPath != "" {
		if err := load(opts.ExplicitPath, "explicit"); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(settings); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLI != nil {
		settings = merge(settings, opts.CLI)
	}

	result.Settings = settings

	file, stylePath, err := LoadStyle(ctx, settings.Style, settings.StyleBase)
	if err != nil {
		return nil, err
	}
	result.Style = file
	result.StylePath = stylePath

	logger.Debug("style selected", logging.FieldStyle, stylePath)
	return result, nil
}

// Resolve resolves the loaded style against reg with the loaded filters and
// strictness.
func (r *LoadResult) Resolve(ctx context.Context, reg *catalog.Registry) (*ruleset.RuleSet, error) {
	return ruleset.Resolve(ctx, r.Style, reg, ruleset.Options{
		Strict: r.Settings.IsStrict(),
		Filter: r.Settings.Filter(),
	})
}
