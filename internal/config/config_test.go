// Package config_test tests layered configuration loading and validation.
// Related: internal/config/config.go, internal/config/validate.go, internal/config/defaults.go
// Tags: config, koanf, validation, toml, yaml, json, env

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalTOML = `
[kinds]
feat = "Features"
fix = "Bug Fixes"

[[repositories]]
name = "api"
path = "api"
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func load(t *testing.T, path string) (*Configuration, error) {
	t.Helper()
	return LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true})
}

func TestLoad_TOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, "changelog.toml", `
output = "docs/CHANGES.md"
scope_policy = "warn"

[kinds]
feat = "Features"
"build.ci" = "Continuous Integration"

[[repositories]]
name = "api"
path = "services/api"
scopes = ["auth", "db"]
range = "v1.0.0..HEAD"
link = "https://example.com/commit/{hash}"

[[repositories]]
name = "web"
path = "/srv/web"
`)

	cfg, err := load(t, path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "docs/CHANGES.md", cfg.Output)
	assert.Equal(t, FormatMarkdown, cfg.Format, "default format")
	assert.Equal(t, ScopePolicyWarn, cfg.ScopePolicy)
	assert.Equal(t, "Technical preview", cfg.UnreleasedLabel, "default label")
	assert.Equal(t, map[string]string{
		"feat":     "Features",
		"build.ci": "Continuous Integration",
	}, cfg.Kinds)

	require.Len(t, cfg.Repositories, 2)
	api := cfg.Repositories[0]
	assert.Equal(t, "api", api.Name)
	assert.Equal(t, filepath.Join(dir, "services", "api"), api.Path, "relative to the config file")
	assert.Equal(t, []string{"auth", "db"}, api.Scopes)
	assert.Equal(t, "v1.0.0..HEAD", api.Range)
	assert.Equal(t, "https://example.com/commit/{hash}", api.Link)

	assert.Equal(t, "/srv/web", cfg.Repositories[1].Path)
	assert.Empty(t, cfg.Repositories[1].Scopes)
}

func TestLoad_Formats(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name    string
		content string
	}{
		"yaml": {
			name: "changelog.yml",
			content: `
format: html
kinds:
  feat: Features
repositories:
  - name: api
    path: api
`,
		},
		"yaml long extension": {
			name: "changelog.yaml",
			content: `
format: html
kinds:
  feat: Features
repositories:
  - name: api
    path: api
`,
		},
		"json": {
			name: "changelog.json",
			content: `{
  "format": "html",
  "kinds": {"feat": "Features"},
  "repositories": [{"name": "api", "path": "api"}]
}`,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			cfg, err := load(t, writeConfig(t, dir, tt.name, tt.content))
			require.NoError(t, err)

			assert.Equal(t, FormatHTML, cfg.Format)
			assert.Equal(t, map[string]string{"feat": "Features"}, cfg.Kinds)
			require.Len(t, cfg.Repositories, 1)
			assert.Equal(t, filepath.Join(dir, "api"), cfg.Repositories[0].Path)
			assert.Equal(t, "CHANGELOG.html", cfg.OutputPath())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing project config", func(t *testing.T) {
		t.Parallel()

		_, err := load(t, filepath.Join(t.TempDir(), "changelog.toml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfigNotFound))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		_, err := load(t, writeConfig(t, t.TempDir(), "changelog.ini", "kinds=1"))
		require.Error(t, err)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Message, "unsupported config format")
	})

	t.Run("yaml syntax error reports line", func(t *testing.T) {
		t.Parallel()

		_, err := load(t, writeConfig(t, t.TempDir(), "changelog.yml", "kinds:\n  feat: [unclosed\n"))
		require.Error(t, err)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Greater(t, ve.Line, 0)
	})

	t.Run("broken toml", func(t *testing.T) {
		t.Parallel()

		_, err := load(t, writeConfig(t, t.TempDir(), "changelog.toml", "[kinds\nfeat ="))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load project config")
	})
}

func TestLoad_Validation(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content   string
		wantField string
		wantMsg   string
	}{
		"no kinds": {
			content: `
[[repositories]]
name = "api"
path = "."
`,
			wantField: "kinds",
			wantMsg:   "is required",
		},
		"no repositories": {
			content: `
[kinds]
feat = "Features"
`,
			wantField: "repositories",
			wantMsg:   "is required",
		},
		"repository without path": {
			content: `
[kinds]
feat = "Features"

[[repositories]]
name = "api"
`,
			wantField: "repositories[0].path",
			wantMsg:   "is required",
		},
		"empty kind label": {
			content: `
[kinds]
feat = ""

[[repositories]]
name = "api"
path = "."
`,
			wantField: "kinds[feat]",
			wantMsg:   "is required",
		},
		"unknown format": {
			content: `format = "pdf"` + minimalTOML,
			wantField: "format",
			wantMsg:   "must be one of: markdown, html, yaml, json",
		},
		"unknown scope policy": {
			content: `scope_policy = "ignore"` + minimalTOML,
			wantField: "scope_policy",
			wantMsg:   "must be one of: reject, warn",
		},
		"duplicate repository names": {
			content: minimalTOML + `
[[repositories]]
name = "api"
path = "other"
`,
			wantField: "repositories[1].name",
			wantMsg:   `duplicates repositories[0].name "api"`,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := load(t, writeConfig(t, t.TempDir(), "changelog.toml", tt.content))
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestLoad_UserConfigLayer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	user := writeConfig(t, dir, "config.yml", `
unreleased_label: Unreleased
kinds:
  chore: Chores
  feat: New Stuff
`)
	project := writeConfig(t, dir, "changelog.toml", minimalTOML)

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: project, UserConfigPath: user})
	require.NoError(t, err)

	assert.Equal(t, "Unreleased", cfg.UnreleasedLabel)
	assert.Equal(t, map[string]string{
		"chore": "Chores",
		"feat":  "Features",
		"fix":   "Bug Fixes",
	}, cfg.Kinds, "project kinds override user kinds key by key")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CHANGELOG_FORMAT", "json")
	t.Setenv("CHANGELOG_UNRELEASED_LABEL", "Next")
	t.Setenv("CHANGELOG_KINDS", "ignored")

	path := writeConfig(t, t.TempDir(), "changelog.toml", `format = "html"`+minimalTOML)

	cfg, err := load(t, path)
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "Next", cfg.UnreleasedLabel)
	assert.Len(t, cfg.Kinds, 2)
	assert.Equal(t, "CHANGELOG.json", cfg.OutputPath())
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want string
	}{
		"scope policy":     {in: "CHANGELOG_SCOPE_POLICY", want: "scope_policy"},
		"output":           {in: "CHANGELOG_OUTPUT", want: "output"},
		"unknown variable": {in: "CHANGELOG_REPOSITORIES", want: ""},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, envTransform(tt.in))
		})
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg  Configuration
		want string
	}{
		"explicit output wins": {cfg: Configuration{Output: "NEWS.md", Format: FormatHTML}, want: "NEWS.md"},
		"markdown":             {cfg: Configuration{Format: FormatMarkdown}, want: "CHANGELOG.md"},
		"html":                 {cfg: Configuration{Format: FormatHTML}, want: "CHANGELOG.html"},
		"yaml":                 {cfg: Configuration{Format: FormatYAML}, want: "CHANGELOG.yaml"},
		"json":                 {cfg: Configuration{Format: FormatJSON}, want: "CHANGELOG.json"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.OutputPath())
		})
	}
}

func TestDefaultConfigTemplate_Loads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := load(t, writeConfig(t, dir, "changelog.toml", GetDefaultConfigTemplate()))
	require.NoError(t, err)

	assert.Equal(t, FormatMarkdown, cfg.Format)
	assert.Equal(t, ScopePolicyReject, cfg.ScopePolicy)
	assert.Equal(t, "Features", cfg.Kinds["feat"])
	require.Len(t, cfg.Repositories, 1)
	assert.Equal(t, dir, cfg.Repositories[0].Path)

	repo, ok := cfg.Repository("changelog")
	assert.True(t, ok)
	assert.Equal(t, dir, repo.Path)
}
