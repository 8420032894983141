// ABOUTME: Tests for completion ranking
// ABOUTME: Prefix matches must precede fuzzy matches; empty pattern keeps order

package fuzzy

import (
	"reflect"
	"testing"
)

func TestRank_PrefixFirst(t *testing.T) {
	t.Parallel()

	names := []string{"sweep", "scroll", "scale", "visible"}
	got := Strings(Rank("sc", names))
	if len(got) < 2 {
		t.Fatalf("Rank returned %v, want at least 2 matches", got)
	}
	if got[0] != "scroll" || got[1] != "scale" {
		t.Errorf("Rank(sc) = %v, want scroll, scale first", got)
	}
}

func TestRank_EmptyPattern(t *testing.T) {
	t.Parallel()

	names := []string{"b", "a"}
	if got := Strings(Rank("", names)); !reflect.DeepEqual(got, names) {
		t.Errorf("Rank(\"\") = %v, want %v", got, names)
	}
}

func TestRank_NoMatch(t *testing.T) {
	t.Parallel()

	if got := Rank("zzz", []string{"window", "console"}); len(got) != 0 {
		t.Errorf("Rank(zzz) = %v, want none", got)
	}
}
