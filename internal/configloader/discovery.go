package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// User is the user-level settings file (~/.mdlrc or
	// $XDG_CONFIG_HOME/mdlstyle/mdlrc).
	User string

	// Project is the nearest .mdlrc found searching upward from the
	// working directory.
	Project string

	// ProjectStyle is a style file (.mdl.rb and friends) found in the same
	// upward search.
	ProjectStyle string

	// Explicit is a settings file provided via --config.
	Explicit string

	// Markdownlint is a markdownlint config in the working directory, noted
	// so the user can be pointed at `mdlstyle convert`.
	Markdownlint string
}

// SettingsFileName is the mdl settings file name.
const SettingsFileName = ".mdlrc"

// styleFileNames are the project style names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var styleFileNames = []string{
	".mdl.rb",
	".mdl_style.rb",
	".mdlstyle.rb",
}

// markdownlintConfigFiles are the markdownlint config files we detect for conversion.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintConfigFiles = []string{
	".markdownlint.json",
	".markdownlint.jsonc",
	".markdownlint.yaml",
	".markdownlint.yml",
	".markdownlint.cjs",
	".markdownlint.mjs",
}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds settings and style files in standard locations.
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	paths := &ConfigPaths{
		User: findUserSettings(),
	}

	project, projectStyle, err := FindProjectFiles(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = project
	paths.ProjectStyle = projectStyle
	paths.Markdownlint = FindMarkdownlintConfig(workDir)

	return paths, nil
}

// findUserSettings returns the user-level settings file, if it exists.
func findUserSettings() string {
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, SettingsFileName)
		if fileExists(path) {
			return path
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	path := filepath.Join(configHome, "mdlstyle", "mdlrc")
	if fileExists(path) {
		return path
	}
	return ""
}

// FindProjectFiles searches upward from startDir for an .mdlrc and a style
// file. The search ends at the first directory holding either one, at a VCS
// root, at the home directory, or at the filesystem root.
func FindProjectFiles(ctx context.Context, startDir string) (settings, styleFile string, err error) {
	if startDir == "" {
		startDir, err = os.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		homeDir = ""
	}

	currentDir := absDir
	for {
		if err := ctx.Err(); err != nil {
			return "", "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := filepath.Join(currentDir, SettingsFileName); fileExists(path) {
			settings = path
		}
		for _, name := range styleFileNames {
			if path := filepath.Join(currentDir, name); fileExists(path) {
				styleFile = path
				break
			}
		}
		if settings != "" || styleFile != "" {
			return settings, styleFile, nil
		}

		if isVCSRoot(currentDir) {
			return "", "", nil
		}

		// The home directory's .mdlrc is the user settings file.
		if homeDir != "" && currentDir == homeDir {
			return "", "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", "", nil
		}
		currentDir = parentDir
	}
}

// FindMarkdownlintConfig looks for a markdownlint config file in dir.
// Returns the path to the first found file, or empty string if none.
func FindMarkdownlintConfig(dir string) string {
	for _, name := range markdownlintConfigFiles {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsJavaScriptConfig returns true if the path is a JavaScript config file.
// These cannot be converted and require user action.
func IsJavaScriptConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".cjs" || ext == ".mjs" || ext == ".js"
}

// IsJSONConfig returns true if the path is a JSON config file.
func IsJSONConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".json" || ext == ".jsonc"
}

// IsYAMLConfig returns true if the path is a YAML config file.
func IsYAMLConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

// IsStyleFile returns true if the path looks like a style file.
func IsStyleFile(path string) bool {
	return filepath.Ext(path) == ".rb"
}
