// ABOUTME: YAML theme file loading with default fallback
// ABOUTME: Unset palette fields inherit from DefaultPalette to ensure completeness

package theme

import (
	"fmt"
	"os"
	"reflect"

	"gopkg.in/yaml.v3"
)

// yamlPalette mirrors Palette with snake_case keys.
type yamlPalette struct {
	Text       string `yaml:"text"`
	Background string `yaml:"background"`
	Separator  string `yaml:"separator"`
	Success    string `yaml:"success"`
	Warn       string `yaml:"warn"`
	Error      string `yaml:"error"`

	Input       string `yaml:"input"`
	Hint        string `yaml:"hint"`
	Placeholder string `yaml:"placeholder"`
	Cursor      string `yaml:"cursor"`
	InputBg     string `yaml:"input_bg"`

	KeyFill  string `yaml:"key_fill"`
	KeyText  string `yaml:"key_text"`
	KeyHover string `yaml:"key_hover"`
	KeyShift string `yaml:"key_shift"`
	KeyCaps  string `yaml:"key_caps"`
}

type yamlTheme struct {
	Name    string      `yaml:"name"`
	Base    string      `yaml:"base"`
	Palette yamlPalette `yaml:"palette"`
}

// LoadFile reads a YAML theme file. Missing palette fields fall back to the
// named base theme, or to DefaultPalette when no base is given.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML theme document.
func Parse(data []byte) (*Theme, error) {
	var yt yamlTheme
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	base := DefaultPalette()
	if yt.Base != "" {
		b := Builtin(yt.Base)
		if b == nil {
			return nil, fmt.Errorf("unknown base theme %q", yt.Base)
		}
		base = b.Palette
	}
	return &Theme{Name: yt.Name, Palette: overlay(yt.Palette, base)}, nil
}

// overlay copies every non-empty field of yp onto base by field name.
func overlay(yp yamlPalette, base Palette) Palette {
	p := base
	src := reflect.ValueOf(yp)
	dst := reflect.ValueOf(&p).Elem()
	st := src.Type()
	for i := range st.NumField() {
		v := src.Field(i).String()
		if v == "" {
			continue
		}
		f := dst.FieldByName(st.Field(i).Name)
		if f.IsValid() && f.CanSet() {
			f.SetString(v)
		}
	}
	return p
}
