// Package render turns an assembled changelog into a document.
//
// Markdown and HTML are produced from Go templates: an embedded default per
// format, or a user supplied file. YAML and JSON export the tree as data.
// The terminal preview lives in terminal.go.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/ariel-frischer/changelog/internal/changelog"
	"github.com/ariel-frischer/changelog/internal/config"
)

// TemplateFS embeds the default document templates.
//
//go:embed templates/*.tmpl
var TemplateFS embed.FS

// ErrUnknownFormat is returned for a format without a renderer.
var ErrUnknownFormat = errors.New("unknown output format")

// ErrTemplateUnsupported is returned when a custom template is combined with a data format.
var ErrTemplateUnsupported = errors.New("custom templates are only supported for markdown and html")

// ErrTemplate is returned when a template cannot be read, parsed or executed.
var ErrTemplate = errors.New("invalid template")

// ErrWrite is returned when the rendered document cannot be written to disk.
var ErrWrite = errors.New("cannot write output")

// Options selects how a changelog is rendered.
type Options struct {
	// Format is one of config.FormatMarkdown, FormatHTML, FormatYAML or FormatJSON.
	Format string
	// Template is the path of a custom template. Empty uses the embedded one.
	Template string
}

// OptionsFrom returns the render options stored in cfg.
func OptionsFrom(cfg *config.Configuration) Options {
	return Options{Format: cfg.Format, Template: cfg.Template}
}

// Render writes c to w in the selected format.
func Render(w io.Writer, c *changelog.Changelog, opts Options) error {
	switch opts.Format {
	case config.FormatMarkdown, "":
		return renderText(w, c, opts.Template)
	case config.FormatHTML:
		return renderHTML(w, c, opts.Template)
	case config.FormatYAML, config.FormatJSON:
		if opts.Template != "" {
			return ErrTemplateUnsupported
		}
		if opts.Format == config.FormatYAML {
			return RenderYAML(w, c)
		}
		return RenderJSON(w, c)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, opts.Format)
	}
}

// RenderString is a convenience function that renders to a string.
func RenderString(c *changelog.Changelog, opts Options) (string, error) {
	var b strings.Builder
	if err := Render(&b, c, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteFile renders c completely before touching path, then replaces path
// using a temp file + rename, so a failed run never leaves partial output.
func WriteFile(path string, c *changelog.Changelog, opts Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, c, opts); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating directory: %w", ErrWrite, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: writing temp file: %w", ErrWrite, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("%w: renaming temp file: %w", ErrWrite, err)
	}

	return nil
}

// funcs are available to every template.
var funcs = map[string]any{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"trim":  strings.TrimSpace,
}

func renderText(w io.Writer, c *changelog.Changelog, custom string) error {
	name, content, err := templateSource("changelog.md.tmpl", custom)
	if err != nil {
		return err
	}

	tmpl, err := texttemplate.New(name).Funcs(funcs).Parse(content)
	if err != nil {
		return fmt.Errorf("%w: parsing template %s: %w", ErrTemplate, name, err)
	}
	if err := tmpl.Execute(w, c); err != nil {
		return fmt.Errorf("%w: executing template %s: %w", ErrTemplate, name, err)
	}
	return nil
}

func renderHTML(w io.Writer, c *changelog.Changelog, custom string) error {
	name, content, err := templateSource("changelog.html.tmpl", custom)
	if err != nil {
		return err
	}

	tmpl, err := htmltemplate.New(name).Funcs(funcs).Parse(content)
	if err != nil {
		return fmt.Errorf("%w: parsing template %s: %w", ErrTemplate, name, err)
	}
	if err := tmpl.Execute(w, c); err != nil {
		return fmt.Errorf("%w: executing template %s: %w", ErrTemplate, name, err)
	}
	return nil
}

// templateSource returns the custom template at path, or the embedded one.
func templateSource(embedded, path string) (name, content string, err error) {
	if path == "" {
		data, err := TemplateFS.ReadFile("templates/" + embedded)
		if err != nil {
			return "", "", fmt.Errorf("reading embedded template %s: %w", embedded, err)
		}
		return embedded, string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("%w: reading template: %w", ErrTemplate, err)
	}
	return filepath.Base(path), string(data), nil
}
