package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// userConfigNames are tried in order inside UserConfigDir.
var userConfigNames = []string{"config.toml", "config.yml", "config.yaml", "config.json"}

// UserConfigDir returns the path to the user-level config directory.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/changelog
// - macOS: ~/Library/Application Support/changelog
// - Windows: %LOCALAPPDATA%\changelog
func UserConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "changelog")
}

// UserConfigPath returns the first existing user-level config file, or the
// TOML location when none exists yet.
func UserConfigPath() string {
	dir := UserConfigDir()
	for _, name := range userConfigNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return filepath.Join(dir, userConfigNames[0])
}

// ProjectConfigPath returns the default project-level config file,
// relative to the current directory.
func ProjectConfigPath() string {
	return "changelog.toml"
}
