// Package config provides hierarchical configuration management for changelog using koanf.
// Configuration is loaded with priority: environment variables > project config (changelog.toml)
// > user config (~/.config/changelog/config.toml) > defaults. The project config may be
// written in TOML, YAML or JSON; the parser is selected by file extension.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Delimiter separates nested koanf keys. Kind tokens may contain dots
// (e.g. "build.ci"), so the usual "." cannot be used.
const Delimiter = "::"

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "CHANGELOG_"

// ErrConfigNotFound is returned when the project config file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// ScopePolicy decides what happens to a commit whose scope is not allowed.
type ScopePolicy string

const (
	// ScopePolicyReject drops commits with a sub-scope outside the allow-list.
	ScopePolicyReject ScopePolicy = "reject"
	// ScopePolicyWarn keeps such commits and only emits a diagnostic.
	ScopePolicyWarn ScopePolicy = "warn"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatYAML     = "yaml"
	FormatJSON     = "json"
)

// Configuration represents the changelog generator configuration
type Configuration struct {
	// Output is the file the rendered changelog is written to.
	// Empty means CHANGELOG plus the extension of Format.
	Output string `koanf:"output"`
	Format string `koanf:"format" validate:"oneof=markdown html yaml json"`
	// Template optionally points at a custom Go template used instead of the
	// embedded one. Only meaningful for markdown and html.
	Template string `koanf:"template"`

	ScopePolicy     ScopePolicy `koanf:"scope_policy" validate:"oneof=reject warn"`
	UnreleasedLabel string      `koanf:"unreleased_label" validate:"required"`

	// Kinds maps a raw kind token to its display label.
	Kinds        map[string]string `koanf:"kinds" validate:"required,min=1,dive,required"`
	Repositories []Repository      `koanf:"repositories" validate:"required,min=1,dive"`

	// Path is the project config file this configuration was loaded from.
	Path string `koanf:"-"`
}

// Repository is one repository to build a changelog section for.
type Repository struct {
	Name   string   `koanf:"name" validate:"required"`
	Path   string   `koanf:"path" validate:"required"`
	Scopes []string `koanf:"scopes"`
	// Range is a revision range ("A..B", "A..", "..B"). Empty walks from HEAD.
	Range string `koanf:"range"`
	// Link is a URL template with a {hash} placeholder.
	Link string `koanf:"link"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: changelog.toml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config lookup. Only used when non-empty.
	UserConfigPath string
	// SkipUserConfig disables the user config layer entirely.
	SkipUserConfig bool
}

// LoadWithOptions loads configuration from defaults, user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(Delimiter)

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
			return nil, err
		}
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
	}
	if err := loadProjectConfig(k, projectPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k, projectPath)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the optional user-level config. A missing file is not an error.
func loadUserConfig(k *koanf.Koanf, override string) error {
	path := override
	if path == "" {
		path = UserConfigPath()
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadFile(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the required project-level config.
func loadProjectConfig(k *koanf.Koanf, path string) error {
	if !fileExists(path) {
		return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err := loadFile(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadFile selects a parser by extension and merges path into k.
func loadFile(k *koanf.Koanf, path, configType string) error {
	parser, err := parserFor(path)
	if err != nil {
		return err
	}
	if isYAML(path) {
		if err := ValidateYAMLSyntax(path); err != nil {
			return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
		}
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// parserFor returns the koanf parser matching the file extension of path.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, &ValidationError{
			FilePath: path,
			Message:  "unsupported config format, expected .toml, .yml, .yaml or .json",
		}
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// envKeys lists the top-level keys that may be overridden from the environment.
var envKeys = map[string]bool{
	"output":           true,
	"format":           true,
	"template":         true,
	"scope_policy":     true,
	"unreleased_label": true,
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, Delimiter, envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: CHANGELOG_SCOPE_POLICY -> scope_policy. Unknown variables are ignored.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if !envKeys[key] {
		return ""
	}
	return key
}

// finalizeConfig unmarshals, validates, and resolves repository paths
func finalizeConfig(k *koanf.Koanf, path string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Path = path

	if err := ValidateConfigValues(&cfg, path); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	base := filepath.Dir(path)
	for i := range cfg.Repositories {
		cfg.Repositories[i].Path = resolvePath(base, cfg.Repositories[i].Path)
	}

	return &cfg, nil
}

// OutputPath returns the configured output file, or CHANGELOG with the
// extension of the configured format.
func (c *Configuration) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return "CHANGELOG" + Extension(c.Format)
}

// Repository returns the configured repository with the given name.
func (c *Configuration) Repository(name string) (Repository, bool) {
	for _, r := range c.Repositories {
		if r.Name == name {
			return r, true
		}
	}
	return Repository{}, false
}

// Extension returns the conventional file extension for format.
func Extension(format string) string {
	switch format {
	case FormatHTML:
		return ".html"
	case FormatYAML:
		return ".yaml"
	case FormatJSON:
		return ".json"
	default:
		return ".md"
	}
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// resolvePath expands ~ and anchors relative paths at base.
func resolvePath(base, path string) string {
	path = expandHomePath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
