// ABOUTME: Tests for keycap label resolution
// ABOUTME: Covers named controls, function keys, printable runes, and String()

package key

import "testing"

func TestFromLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  Key
	}{
		{label: "ENTER", want: Key{Type: KeyEnter}},
		{label: "SPACE", want: Rune(' ')},
		{label: "ⓧ", want: Key{Type: KeyBackspace}},
		{label: "◀", want: Key{Type: KeyLeft}},
		{label: "▲", want: Key{Type: KeyUp}},
		{label: "⇪", want: Key{Type: KeyCaps}},
		{label: "F1", want: Key{Type: KeyFunction, Rune: 1}},
		{label: "F11", want: Key{Type: KeyFunction, Rune: 11}},
		{label: "F", want: Rune('F')},
		{label: "§", want: Rune('§')},
		{label: "Fx", want: Key{Type: KeyUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			if got := FromLabel(tt.label); got != tt.want {
				t.Errorf("FromLabel(%q) = %+v, want %+v", tt.label, got, tt.want)
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		k    Key
		want string
	}{
		{k: Rune('a'), want: "a"},
		{k: Rune(' '), want: "SPACE"},
		{k: Named(KeyUp), want: "ARROW_UP"},
		{k: Key{Type: KeyFunction, Rune: 3}, want: "F3"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsModifier(t *testing.T) {
	t.Parallel()

	if !Named(KeyShift).IsModifier() || !Named(KeyCaps).IsModifier() {
		t.Error("shift and caps must be modifiers")
	}
	if Rune('a').IsModifier() {
		t.Error("printable key must not be a modifier")
	}
}
