// ABOUTME: Process-wide active theme using atomic.Pointer
// ABOUTME: Current() returns the active theme; Set() swaps it atomically

package theme

import "sync/atomic"

var current atomic.Pointer[Theme]

func init() {
	current.Store(&Theme{Name: "default", Palette: DefaultPalette()})
}

// Current returns the active theme. Never returns nil.
func Current() *Theme {
	return current.Load()
}

// Set replaces the active theme. A nil theme is ignored.
func Set(t *Theme) {
	if t == nil {
		return
	}
	current.Store(t)
}
