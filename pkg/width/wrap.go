// ABOUTME: Word wrapping at glyph-cell column boundaries using Unicode line breaking
// ABOUTME: Over-long words fall back to grapheme-level hard breaks; Truncate caps rune count

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Wrap breaks s into lines of at most cols glyph cells. Break opportunities
// follow UAX #14 (uniseg line segments); a word wider than cols is split
// between grapheme clusters. Explicit newlines always break. Trailing
// spaces are trimmed from each produced line.
func Wrap(s string, cols int) []string {
	if cols <= 0 {
		return nil
	}
	s = StripANSI(s)
	if s == "" {
		return []string{""}
	}

	var (
		lines []string
		line  strings.Builder
		used  int
		state = -1
	)
	flush := func() {
		lines = append(lines, strings.TrimRight(line.String(), " "))
		line.Reset()
		used = 0
	}

	for len(s) > 0 {
		var seg string
		var mustBreak bool
		seg, s, mustBreak, state = uniseg.FirstLineSegmentInString(s, state)
		seg = strings.TrimRight(seg, "\r\n")

		word := strings.TrimRight(seg, " ")
		wordW := Of(word)
		if used > 0 && used+wordW > cols {
			flush()
		}
		if wordW > cols {
			for _, cluster := range Clusters(seg) {
				cw := Cluster(cluster)
				if used > 0 && used+cw > cols {
					flush()
				}
				line.WriteString(cluster)
				used += cw
			}
		} else {
			line.WriteString(seg)
			used += Of(seg)
		}
		if mustBreak && len(s) > 0 {
			flush()
		}
	}
	flush()
	return lines
}

// Truncate returns s cut to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
