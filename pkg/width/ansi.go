// ABOUTME: ANSI escape sequence stripping for text mirrored from host loggers
// ABOUTME: Handles CSI, OSC, charset designation, and APC/DCS/PM sequences

package width

import "strings"

// StripANSI removes all ANSI escape sequences from s. Host log lines often
// arrive colourised; the console rasterizes plain glyphs only.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			i = skipANSISequence(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// skipANSISequence returns the index of the first byte after the escape
// sequence starting at s[i].
func skipANSISequence(s string, i int) int {
	i++ // ESC
	if i >= len(s) {
		return i
	}
	switch s[i] {
	case '[':
		for i++; i < len(s); i++ {
			if b := s[i]; b >= 0x40 && b <= 0x7E {
				return i + 1
			}
		}
		return i
	case ']':
		for i++; i < len(s); i++ {
			if s[i] == '\x07' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case '(':
		return min(i+2, len(s))
	case '_', 'P', '^':
		for i++; i < len(s); i++ {
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	default:
		return i + 1
	}
}
