// ABOUTME: Tests for theme types: colour parsing, weights, palette completeness
// ABOUTME: Verifies hex and named colours, fallbacks, lipgloss conversion, and YAML overlay

package theme

import (
	"image/color"
	"reflect"
	"testing"
)

func TestParseColor(t *testing.T) {
	t.Parallel()
	fallback := color.RGBA{R: 1, G: 2, B: 3, A: 4}

	tests := []struct {
		name string
		in   string
		want color.RGBA
	}{
		{"hex", "#c88d0d", color.RGBA{R: 0xc8, G: 0x8d, B: 0x0d, A: 0xff}},
		{"short hex", "#f00", color.RGBA{R: 0xff, A: 0xff}},
		{"named", "red", color.RGBA{R: 0xff, A: 0xff}},
		{"named upper", " White ", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"empty", "", fallback},
		{"garbage", "not-a-colour", fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseColor(tt.in, fallback); got != tt.want {
				t.Errorf("ParseColor(%q) = %v; want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseWeight(t *testing.T) {
	t.Parallel()
	tests := map[string]Weight{
		"bold":    WeightBold,
		"oblique": WeightOblique,
		"italic":  WeightOblique,
		"normal":  WeightNormal,
		"":        WeightNormal,
	}
	for in, want := range tests {
		if got := ParseWeight(in); got != want {
			t.Errorf("ParseWeight(%q) = %v; want %v", in, got, want)
		}
	}
	if WeightBold.String() != "bold" || WeightNormal.String() != "normal" {
		t.Error("Weight.String mismatch")
	}
}

func TestPaletteStyles(t *testing.T) {
	t.Parallel()
	p := DefaultPalette()
	if got := p.Warning(); got.Color != "#c88d0d" || got.Weight != WeightOblique {
		t.Errorf("Warning() = %+v", got)
	}
	if got := p.Failed(); got.Weight != WeightBold {
		t.Errorf("Failed() weight = %v; want bold", got.Weight)
	}
	if !(Style{}).IsZero() {
		t.Error("zero Style should report IsZero")
	}
}

func TestLipgloss(t *testing.T) {
	t.Parallel()
	st := Style{Color: "#ff0000", Weight: WeightBold}.Lipgloss()
	if !st.GetBold() {
		t.Error("expected bold lipgloss style")
	}
	it := Style{Weight: WeightOblique}.Lipgloss()
	if !it.GetItalic() {
		t.Error("expected italic lipgloss style")
	}
}

func TestPaletteComplete(t *testing.T) {
	t.Parallel()
	for _, name := range BuiltinNames() {
		th := Builtin(name)
		v := reflect.ValueOf(th.Palette)
		for i := range v.NumField() {
			if v.Field(i).String() == "" {
				t.Errorf("%s: palette field %s is empty", name, v.Type().Field(i).Name)
			}
		}
	}
}

func TestBuiltinUnknown(t *testing.T) {
	t.Parallel()
	if Builtin("nope") != nil {
		t.Error("expected nil for unknown theme")
	}
}

func TestParseOverlay(t *testing.T) {
	t.Parallel()
	doc := []byte("name: mine\nbase: dark\npalette:\n  warn: \"#123456\"\n")
	th, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "mine" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Palette.Warn != "#123456" {
		t.Errorf("Warn = %q; want override", th.Palette.Warn)
	}
	if th.Palette.Text != Builtin("dark").Palette.Text {
		t.Errorf("Text = %q; want inherited from dark", th.Palette.Text)
	}
}

func TestParseUnknownBase(t *testing.T) {
	t.Parallel()
	if _, err := Parse([]byte("base: neon\n")); err == nil {
		t.Error("expected error for unknown base")
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()
	if _, err := LoadFile(t.TempDir() + "/missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
