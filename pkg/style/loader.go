// ABOUTME: YAML theme file loading with validation and default fallback
// ABOUTME: Unset palette fields inherit from DefaultPalette to ensure completeness

package style

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlPalette is the YAML-friendly representation of a Palette. Each field
// holds a color spec string: a palette name or a hex value.
type yamlPalette struct {
	Primary   string `yaml:"primary"`
	Muted     string `yaml:"muted"`
	Accent    string `yaml:"accent"`
	Success   string `yaml:"success"`
	Warning   string `yaml:"warning"`
	Error     string `yaml:"error"`
	Info      string `yaml:"info"`
	Border    string `yaml:"border"`
	Selection string `yaml:"selection"`
}

type yamlTheme struct {
	Name    string      `yaml:"name"`
	Palette yamlPalette `yaml:"palette"`
}

// LoadTheme reads a YAML theme file and returns a Theme. Missing palette
// fields fall back to DefaultPalette values; malformed color specs are
// reported as errors rather than silently dropped.
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return parseTheme(data)
}

func parseTheme(data []byte) (*Theme, error) {
	var yt yamlTheme
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if yt.Name == "" {
		return nil, fmt.Errorf("theme file missing name")
	}

	p := DefaultPalette()
	fields := []struct {
		spec string
		dst  *Color
		role string
	}{
		{yt.Palette.Primary, &p.Primary, "primary"},
		{yt.Palette.Muted, &p.Muted, "muted"},
		{yt.Palette.Accent, &p.Accent, "accent"},
		{yt.Palette.Success, &p.Success, "success"},
		{yt.Palette.Warning, &p.Warning, "warning"},
		{yt.Palette.Error, &p.Error, "error"},
		{yt.Palette.Info, &p.Info, "info"},
		{yt.Palette.Border, &p.Border, "border"},
		{yt.Palette.Selection, &p.Selection, "selection"},
	}
	for _, f := range fields {
		if f.spec == "" {
			continue
		}
		c, err := Parse(f.spec)
		if err != nil {
			return nil, fmt.Errorf("theme %q field %s: %w", yt.Name, f.role, err)
		}
		*f.dst = c
	}

	return &Theme{Name: yt.Name, Palette: p}, nil
}
