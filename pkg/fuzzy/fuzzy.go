// ABOUTME: Completion ranking over sahilm/fuzzy for console member suggestions
// ABOUTME: Prefix matches rank ahead of scattered subsequence matches

package fuzzy

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match is a ranked candidate.
type Match struct {
	Str            string
	Index          int
	MatchedIndexes []int
	Score          int
	Prefix         bool
}

// Rank orders names by how well they match pattern. Exact-prefix matches
// come first (in the order given), followed by fuzzy subsequence matches by
// descending score. An empty pattern returns every name in order.
func Rank(pattern string, names []string) []Match {
	if pattern == "" {
		out := make([]Match, len(names))
		for i, n := range names {
			out[i] = Match{Str: n, Index: i, Prefix: true}
		}
		return out
	}

	results := fuzzy.Find(pattern, names)
	out := make([]Match, 0, len(results))
	for _, r := range results {
		out = append(out, Match{
			Str:            r.Str,
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
			Prefix:         strings.HasPrefix(r.Str, pattern),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Prefix != out[j].Prefix {
			return out[i].Prefix
		}
		if out[i].Prefix {
			return out[i].Index < out[j].Index
		}
		return out[i].Score > out[j].Score
	})
	return out
}

// Strings returns just the candidate names of matches.
func Strings(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
