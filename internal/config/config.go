// ABOUTME: Console settings loaded from YAML or TOML with a default for every field
// ABOUTME: Unknown keys are errors; non-positive numbers fall back to defaults

package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Settings holds the console configuration.
type Settings struct {
	Theme          string `yaml:"theme" toml:"theme"`
	ThemeFile      string `yaml:"theme_file" toml:"theme_file"`
	KeyboardLayout string `yaml:"keyboard_layout" toml:"keyboard_layout"`
	LogLevel       string `yaml:"log_level" toml:"log_level"`
	Placeholder    string `yaml:"placeholder" toml:"placeholder"`
	FrameRate      int    `yaml:"frame_rate" toml:"frame_rate"`
	OutputSlots    int    `yaml:"output_slots" toml:"output_slots"`
	HistorySize    int    `yaml:"history_size" toml:"history_size"`

	Scrollback ScrollbackSettings `yaml:"scrollback" toml:"scrollback"`
	Gesture    GestureSettings    `yaml:"gesture" toml:"gesture"`
}

// ScrollbackSettings sizes the output panel, in pixels.
type ScrollbackSettings struct {
	Width          int     `yaml:"width" toml:"width"`
	ViewportHeight int     `yaml:"viewport_height" toml:"viewport_height"`
	MaxHeight      int     `yaml:"max_height" toml:"max_height"`
	FontSize       int     `yaml:"font_size" toml:"font_size"`
	ScrollGain     float64 `yaml:"scroll_gain" toml:"scroll_gain"`
	Drag           float64 `yaml:"drag" toml:"drag"`
	Bounce         float64 `yaml:"bounce" toml:"bounce"`
}

// GestureSettings tunes the shake-to-open detector.
type GestureSettings struct {
	Enabled     bool    `yaml:"enabled" toml:"enabled"`
	Threshold   float64 `yaml:"threshold" toml:"threshold"`
	Tolerance   float64 `yaml:"tolerance" toml:"tolerance"`
	Shakes      int     `yaml:"shakes" toml:"shakes"`
	ResetMillis int     `yaml:"reset_ms" toml:"reset_ms"`
}

// Defaults returns settings with every field populated.
func Defaults() *Settings {
	return &Settings{
		Theme:       "default",
		LogLevel:    "info",
		Placeholder: "Enter console message here...",
		FrameRate:   60,
		OutputSlots: 20,
		HistorySize: 50,
		Scrollback: ScrollbackSettings{
			Width:          512,
			ViewportHeight: 512,
			MaxHeight:      8192,
			FontSize:       14,
			ScrollGain:     50,
			Drag:           0.9,
			Bounce:         0.1,
		},
		Gesture: GestureSettings{
			Enabled:     true,
			Threshold:   0.03,
			Tolerance:   1.0,
			Shakes:      10,
			ResetMillis: 200,
		},
	}
}

// Load reads the first settings file that exists under GlobalDir. A missing
// file yields defaults.
func Load() (*Settings, error) {
	for _, path := range SettingsFiles() {
		s, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return Defaults(), nil
}

// LoadFile reads settings from path; the extension picks the format.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, Format(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// Format names the settings format implied by a file name.
func Format(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// Parse decodes data in the given format ("yaml" or "toml") over defaults.
func Parse(data []byte, format string) (*Settings, error) {
	s := Defaults()
	switch format {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil {
			return nil, err
		}
	case "yaml":
		if len(bytes.TrimSpace(data)) == 0 {
			break
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown settings format %q", format)
	}
	ResolveEnvVars(s)
	s.fill(Defaults())
	return s, nil
}

// fill replaces unusable values with those from d.
func (s *Settings) fill(d *Settings) {
	if s.Theme == "" {
		s.Theme = d.Theme
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		s.LogLevel = d.LogLevel
	}
	if s.FrameRate <= 0 {
		s.FrameRate = d.FrameRate
	}
	if s.OutputSlots <= 0 {
		s.OutputSlots = d.OutputSlots
	}
	if s.HistorySize <= 0 {
		s.HistorySize = d.HistorySize
	}

	sb, dsb := &s.Scrollback, d.Scrollback
	if sb.Width <= 0 {
		sb.Width = dsb.Width
	}
	if sb.ViewportHeight <= 0 {
		sb.ViewportHeight = dsb.ViewportHeight
	}
	if sb.MaxHeight <= 0 {
		sb.MaxHeight = dsb.MaxHeight
	}
	if sb.FontSize <= 0 {
		sb.FontSize = dsb.FontSize
	}
	if sb.ScrollGain <= 0 {
		sb.ScrollGain = dsb.ScrollGain
	}
	if sb.Drag <= 0 || sb.Drag > 1 {
		sb.Drag = dsb.Drag
	}
	if sb.Bounce < 0 || sb.Bounce > 1 {
		sb.Bounce = dsb.Bounce
	}

	g, dg := &s.Gesture, d.Gesture
	if g.Threshold <= 0 {
		g.Threshold = dg.Threshold
	}
	if g.Tolerance <= 0 {
		g.Tolerance = dg.Tolerance
	}
	if g.Shakes <= 0 {
		g.Shakes = dg.Shakes
	}
	if g.ResetMillis <= 0 {
		g.ResetMillis = dg.ResetMillis
	}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", name, err)
	}
	return l, nil
}
