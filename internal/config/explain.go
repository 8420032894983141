// ABOUTME: Human-readable rendering of effective configuration
// ABOUTME: Used by the --explain flag to show settings after defaults are applied

package config

import (
	"fmt"
	"strings"
)

// Explain renders a human-readable summary of the effective settings.
// Shows non-zero values grouped by section.
func Explain(s *Settings) string {
	if s == nil {
		s = &Settings{}
	}

	var b strings.Builder

	b.WriteString("=== General ===\n")
	if s.Theme != "" {
		fmt.Fprintf(&b, "  Theme:          %s\n", s.Theme)
	}
	if s.ThemeFile != "" {
		fmt.Fprintf(&b, "  ThemeFile:      %s\n", s.ThemeFile)
	}
	if s.KeyboardLayout != "" {
		fmt.Fprintf(&b, "  KeyboardLayout: %s\n", s.KeyboardLayout)
	}
	if s.LogLevel != "" {
		fmt.Fprintf(&b, "  LogLevel:       %s\n", s.LogLevel)
	}
	if s.Placeholder != "" {
		fmt.Fprintf(&b, "  Placeholder:    %q\n", s.Placeholder)
	}
	if s.FrameRate != 0 {
		fmt.Fprintf(&b, "  FrameRate:      %d Hz\n", s.FrameRate)
	}
	if s.OutputSlots != 0 {
		fmt.Fprintf(&b, "  OutputSlots:    %d\n", s.OutputSlots)
	}
	if s.HistorySize != 0 {
		fmt.Fprintf(&b, "  HistorySize:    %d\n", s.HistorySize)
	}
	b.WriteString("\n")

	b.WriteString("=== Scrollback ===\n")
	sb := s.Scrollback
	if sb.Width != 0 || sb.ViewportHeight != 0 {
		fmt.Fprintf(&b, "  Panel:     %dx%d px\n", sb.Width, sb.ViewportHeight)
	}
	if sb.MaxHeight != 0 {
		fmt.Fprintf(&b, "  MaxHeight: %d px\n", sb.MaxHeight)
	}
	if sb.FontSize != 0 {
		fmt.Fprintf(&b, "  FontSize:  %d px\n", sb.FontSize)
	}
	if sb.ScrollGain != 0 {
		fmt.Fprintf(&b, "  Gain:      %.2f\n", sb.ScrollGain)
	}
	if sb.Drag != 0 || sb.Bounce != 0 {
		fmt.Fprintf(&b, "  Drag:      %.2f bounce=%.2f\n", sb.Drag, sb.Bounce)
	}
	b.WriteString("\n")

	b.WriteString("=== Gesture ===\n")
	g := s.Gesture
	fmt.Fprintf(&b, "  Enabled:   %v\n", g.Enabled)
	if g.Enabled {
		if g.Threshold != 0 {
			fmt.Fprintf(&b, "  Threshold: %.3f\n", g.Threshold)
		}
		if g.Tolerance != 0 {
			fmt.Fprintf(&b, "  Tolerance: %.2f rad\n", g.Tolerance)
		}
		if g.Shakes != 0 {
			fmt.Fprintf(&b, "  Shakes:    %d\n", g.Shakes)
		}
		if g.ResetMillis != 0 {
			fmt.Fprintf(&b, "  Reset:     %dms\n", g.ResetMillis)
		}
	}
	b.WriteString("\n")

	return b.String()
}
