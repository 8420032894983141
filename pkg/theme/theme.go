// ABOUTME: Console palette types: Style, Weight, Palette, Theme
// ABOUTME: Style resolves hex colours to RGBA for rasters and to lipgloss styles for terminal hosts

package theme

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Weight is the font weight of a log entry.
type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
	WeightOblique
)

// String returns the CSS-like weight name.
func (w Weight) String() string {
	switch w {
	case WeightBold:
		return "bold"
	case WeightOblique:
		return "oblique"
	default:
		return "normal"
	}
}

// ParseWeight maps a weight name to a Weight; unknown names are normal.
func ParseWeight(s string) Weight {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bold":
		return WeightBold
	case "oblique", "italic":
		return WeightOblique
	default:
		return WeightNormal
	}
}

// Style is the colour and weight of a piece of console text.
// The zero Style renders in the palette's text colour.
type Style struct {
	Color  string `yaml:"color" json:"color"`
	Weight Weight `yaml:"weight" json:"weight"`
}

// IsZero reports whether the style carries no colour and normal weight.
func (s Style) IsZero() bool {
	return s.Color == "" && s.Weight == WeightNormal
}

var named = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
}

// RGBA resolves the style colour. Empty or unparseable colours yield fallback.
func (s Style) RGBA(fallback color.RGBA) color.RGBA {
	return ParseColor(s.Color, fallback)
}

// ParseColor parses "#rrggbb", "#rgb" or a basic colour name.
func ParseColor(s string, fallback color.RGBA) color.RGBA {
	c, ok := parse(s)
	if !ok {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func parse(s string) (colorful.Color, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return colorful.Color{}, false
	}
	if hex, ok := named[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// Lipgloss converts the style for terminal rendering.
func (s Style) Lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle()
	if c, ok := parse(s.Color); ok {
		st = st.Foreground(lipgloss.Color(c.Hex()))
	}
	switch s.Weight {
	case WeightBold:
		st = st.Bold(true)
	case WeightOblique:
		st = st.Italic(true)
	}
	return st
}

// Palette holds every colour the console draws with, as hex strings.
type Palette struct {
	// Scrollback
	Text       string
	Background string
	Separator  string
	Success    string
	Warn       string
	Error      string

	// Command line
	Input       string
	Hint        string
	Placeholder string
	Cursor      string
	InputBg     string

	// Keyboard
	KeyFill  string
	KeyText  string
	KeyHover string
	KeyShift string
	KeyCaps  string
}

// Log is the style of plain mirrored log output.
func (p Palette) Log() Style { return Style{Color: p.Text} }

// Succeeded is the style of a successful evaluation result.
func (p Palette) Succeeded() Style { return Style{Color: p.Success} }

// Warning is the style of mirrored warnings.
func (p Palette) Warning() Style { return Style{Color: p.Warn, Weight: WeightOblique} }

// Failed is the style of errors and failed evaluations.
func (p Palette) Failed() Style { return Style{Color: p.Error, Weight: WeightBold} }

// Theme holds a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// DefaultPalette returns the light panel palette.
func DefaultPalette() Palette {
	return Palette{
		Text:       "#000000",
		Background: "#ffffff",
		Separator:  "#cccccc",
		Success:    "#000000",
		Warn:       "#c88d0d",
		Error:      "#ff0000",

		Input:       "#000000",
		Hint:        "#8a8a8a",
		Placeholder: "#a0a0a0",
		Cursor:      "#000000",
		InputBg:     "#ffffff",

		KeyFill:  "#ffffff",
		KeyText:  "#000000",
		KeyHover: "#dddddd",
		KeyShift: "#6af66a",
		KeyCaps:  "#f6c36a",
	}
}
