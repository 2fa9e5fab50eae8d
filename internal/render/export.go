package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/changelog/internal/changelog"
)

// RenderYAML writes c as a YAML document.
func RenderYAML(w io.Writer, c *changelog.Changelog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return nil
}

// RenderJSON writes c as indented JSON.
func RenderJSON(w io.Writer, c *changelog.Changelog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
