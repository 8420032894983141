// ABOUTME: Fixes lipgloss to a dark background before BubbleTea initializes
// ABOUTME: Blank-import it ahead of bubbletea so no OSC colour query is sent to the terminal

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// With an explicit background, lipgloss skips its terminal query; the
	// reply would otherwise arrive as keystrokes on the console's input.
	// This package must not import bubbletea, directly or transitively.
	lipgloss.SetHasDarkBackground(true)
}
