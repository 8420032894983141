// ABOUTME: Tests for word wrapping and rune truncation
// ABOUTME: Covers word boundaries, hard breaks, explicit newlines, and limits

package width

import (
	"reflect"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		cols int
		want []string
	}{
		{name: "empty", in: "", cols: 10, want: []string{""}},
		{name: "fits", in: "hello", cols: 10, want: []string{"hello"}},
		{name: "exact fit", in: "hello", cols: 5, want: []string{"hello"}},
		{name: "word boundary", in: "hello world", cols: 5, want: []string{"hello", "world"}},
		{name: "hard break", in: "abcdef", cols: 3, want: []string{"abc", "def"}},
		{name: "newline", in: "ab\ncd", cols: 10, want: []string{"ab", "cd"}},
		{name: "zero cols", in: "x", cols: 0, want: nil},
		{name: "several words", in: "one two three", cols: 8, want: []string{"one two", "three"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Wrap(tt.in, tt.cols); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.in, tt.cols, got, tt.want)
			}
		})
	}
}

func TestWrap_NoLineExceedsColumns(t *testing.T) {
	t.Parallel()

	in := strings.Repeat("lorem ipsum dolor_sit_amet_consectetur ", 8)
	for _, line := range Wrap(in, 12) {
		if w := Of(line); w > 12 {
			t.Errorf("line %q has width %d > 12", line, w)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "hello", n: 10, want: "hello"},
		{in: "hello", n: 3, want: "hel"},
		{in: "héllo", n: 2, want: "hé"},
		{in: "hello", n: 0, want: ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
