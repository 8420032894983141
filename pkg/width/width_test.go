// ABOUTME: Tests for glyph-cell width measurement
// ABOUTME: Covers ASCII fast path, wide characters, ANSI stripping, and clusters

package width

import "testing"

func TestOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "ascii", input: "window", want: 6},
		{name: "wide cjk", input: "日本", want: 4},
		{name: "ansi colour", input: "\x1b[31mred\x1b[0m", want: 3},
		{name: "combining accent", input: "é", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Of(tt.input); got != tt.want {
				t.Errorf("Of(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestOf_CachedValueStable(t *testing.T) {
	t.Parallel()

	first := Of("héllo")
	second := Of("héllo")
	if first != second || first != 5 {
		t.Errorf("Of(héllo) = %d then %d, want 5 both times", first, second)
	}
}

func TestStripANSI(t *testing.T) {
	t.Parallel()

	in := "\x1b[1m\x1b[33mwarn\x1b[0m: \x1b]0;title\x07done"
	if got := StripANSI(in); got != "warn: done" {
		t.Errorf("StripANSI = %q, want %q", got, "warn: done")
	}
}

func TestClusters(t *testing.T) {
	t.Parallel()

	got := Clusters("aéb")
	if len(got) != 3 {
		t.Fatalf("Clusters len = %d, want 3 (%q)", len(got), got)
	}
	if got[1] != "é" {
		t.Errorf("Clusters[1] = %q, want combined e-acute", got[1])
	}
}
