// ABOUTME: Logical key events emitted by the virtual keyboard and consumed by the console
// ABOUTME: Maps keycap labels (◀ ▶ ▲ ▼ ⓧ ENTER SPACE) to named controls or printable runes

package key

import "fmt"

// Key is a resolved keyboard input, independent of where it came from.
type Key struct {
	Type KeyType
	Rune rune // for KeyRune
}

// KeyType enumerates the logical keys the console understands.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character
	KeyEnter                    // Submit
	KeyBackspace                // Delete before cursor
	KeyUp                       // History older
	KeyDown                     // History newer
	KeyLeft                     // Cursor left
	KeyRight                    // Cursor right / accept hint
	KeyShift                    // Transient shift (modifier)
	KeyCaps                     // Persistent caps (modifier)
	KeyFunction                 // F1..F11; Rune carries the index
	KeyUnknown                  // Unrecognized label
)

// Rune builds a printable key event.
func Rune(r rune) Key { return Key{Type: KeyRune, Rune: r} }

// Named builds a control key event.
func Named(t KeyType) Key { return Key{Type: t} }

// labels maps keycap labels to their logical keys.
var labels = map[string]Key{
	"ENTER": {Type: KeyEnter},
	"SPACE": {Type: KeyRune, Rune: ' '},
	"SHIFT": {Type: KeyShift},
	"⇪":     {Type: KeyCaps},
	"ⓧ":     {Type: KeyBackspace},
	"◀":     {Type: KeyLeft},
	"▶":     {Type: KeyRight},
	"▲":     {Type: KeyUp},
	"▼":     {Type: KeyDown},
}

// FromLabel resolves a keycap label. Single-rune labels become printable
// keys; "F1".."F11" become function keys; anything else is KeyUnknown.
func FromLabel(label string) Key {
	if k, ok := labels[label]; ok {
		return k
	}
	if n, ok := functionIndex(label); ok {
		return Key{Type: KeyFunction, Rune: rune(n)}
	}
	runes := []rune(label)
	if len(runes) == 1 {
		return Rune(runes[0])
	}
	return Key{Type: KeyUnknown}
}

// functionIndex parses "F<n>" labels.
func functionIndex(label string) (int, bool) {
	if len(label) < 2 || label[0] != 'F' {
		return 0, false
	}
	n := 0
	for _, c := range label[1:] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, n > 0
}

// IsModifier reports whether k only changes keyboard state.
func (k Key) IsModifier() bool {
	return k.Type == KeyShift || k.Type == KeyCaps
}

var keyTypeNames = map[KeyType]string{
	KeyEnter:     "ENTER",
	KeyBackspace: "BACKSPACE",
	KeyUp:        "ARROW_UP",
	KeyDown:      "ARROW_DOWN",
	KeyLeft:      "ARROW_LEFT",
	KeyRight:     "ARROW_RIGHT",
	KeyShift:     "SHIFT",
	KeyCaps:      "CAPS",
	KeyUnknown:   "UNKNOWN",
}

// String returns a readable name for debug display.
func (k Key) String() string {
	switch k.Type {
	case KeyRune:
		if k.Rune == ' ' {
			return "SPACE"
		}
		return string(k.Rune)
	case KeyFunction:
		return fmt.Sprintf("F%d", k.Rune)
	}
	if name, ok := keyTypeNames[k.Type]; ok {
		return name
	}
	return "UNKNOWN"
}
