// ABOUTME: Key grid definitions: the default six-row console layout and YAML layout loading
// ABOUTME: A key spans W×H grid cells; a key without characters is a spacer

package keyboard

import (
	"fmt"
	"image"
	"os"

	"gopkg.in/yaml.v3"
)

// KeyDef is one key of the grid. Chars holds the unshifted label and, for
// two-symbol keys, the shifted one.
type KeyDef struct {
	Chars []string `yaml:"c,omitempty"`
	W     int      `yaml:"w,omitempty"`
	H     int      `yaml:"h,omitempty"`

	// Bounds is derived by Layout in texture pixels.
	Bounds image.Rectangle `yaml:"-"`
	// Highlight is set while a pointer hovers the key.
	Highlight bool `yaml:"-"`
}

// Spacer reports whether the key only occupies grid space.
func (k *KeyDef) Spacer() bool { return len(k.Chars) == 0 }

// Label returns the symbol for the given shift state.
func (k *KeyDef) Label(shift bool) string {
	switch {
	case len(k.Chars) == 0:
		return ""
	case len(k.Chars) > 1 && shift:
		return k.Chars[1]
	default:
		return k.Chars[0]
	}
}

func (k *KeyDef) width() int  { return max(1, k.W) }
func (k *KeyDef) height() int { return max(1, k.H) }

func keys(labels ...string) []KeyDef {
	out := make([]KeyDef, len(labels))
	for i, l := range labels {
		out[i] = KeyDef{Chars: []string{l}}
	}
	return out
}

func pair(unshifted, shifted string) KeyDef {
	return KeyDef{Chars: []string{unshifted, shifted}}
}

// DefaultLayout returns a fresh copy of the built-in layout.
func DefaultLayout() [][]KeyDef {
	fn := append([]KeyDef{{W: 2}}, keys("F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11")...)

	digits := []KeyDef{
		pair("§", "±"), pair("1", "!"), pair("2", "@"), pair("3", "#"), pair("4", "$"),
		pair("5", "%"), pair("6", "^"), pair("7", "&"), pair("8", "*"), pair("9", "("),
		pair("0", ")"), pair("-", "_"), pair("=", "+"), {Chars: []string{"ⓧ"}, W: 2},
	}

	top := append([]KeyDef{{}}, keys("Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P")...)
	top = append(top, pair("[", "{"), pair("]", "}"), KeyDef{Chars: []string{"ENTER"}, W: 2, H: 2})

	home := append(keys("⇪", "A", "S", "D", "F", "G", "H", "J", "K", "L"),
		pair(";", ":"), pair("'", "\""), pair("\\", "|"))

	bottom := []KeyDef{{Chars: []string{"SHIFT"}, W: 2}, pair("`", "~")}
	bottom = append(bottom, keys("Z", "X", "C", "V", "B", "N", "M")...)
	bottom = append(bottom, pair(",", "<"), pair(".", ">"), pair("/", "?"), KeyDef{Chars: []string{"SHIFT"}, W: 2})

	space := append([]KeyDef{{W: 4}, {Chars: []string{"SPACE"}, W: 7}}, keys("◀", "▶", "▲", "▼")...)

	return [][]KeyDef{fn, digits, top, home, bottom, space}
}

type layoutFile struct {
	Rows [][]KeyDef `yaml:"rows"`
}

// ParseLayout decodes a YAML layout document of the form
//
//	rows:
//	  - [{w: 2}, {c: [F1]}, ...]
func ParseLayout(data []byte) ([][]KeyDef, error) {
	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing keyboard layout: %w", err)
	}
	if len(lf.Rows) == 0 {
		return nil, fmt.Errorf("parsing keyboard layout: no rows")
	}
	for i, row := range lf.Rows {
		for j, k := range row {
			if len(k.Chars) > 2 {
				return nil, fmt.Errorf("parsing keyboard layout: row %d key %d has %d symbols", i, j, len(k.Chars))
			}
		}
	}
	return lf.Rows, nil
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) ([][]KeyDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyboard layout: %w", err)
	}
	return ParseLayout(data)
}
