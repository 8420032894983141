// ABOUTME: Autocomplete for the command line: the hint shown after the cursor and ranked candidates
// ABOUTME: Paths are evaluated only when they cannot call host code, so typing never has side effects

package console

import (
	"strings"

	"github.com/mauromedda/vrconsole/pkg/eval"
	"github.com/mauromedda/vrconsole/pkg/fuzzy"
)

// completion splits input into the evaluated path, the partial member name
// and the names available at that point.
func (c *Console) completion(input string) (path, partial string, names []string, ok bool) {
	dot := strings.LastIndex(input, ".")
	switch {
	case dot < 0:
		return "", input, c.scope.Names(), true
	case dot == 0:
		return "", "", nil, false
	}

	path, partial = input[:dot], input[dot+1:]
	n, err := eval.Parse(path)
	if err != nil || eval.HasCall(n) {
		return "", "", nil, false
	}
	v, err := eval.EvalNode(n, c.env())
	if err != nil {
		return "", "", nil, false
	}
	return path, partial, eval.Members(v), true
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// Autocomplete returns input extended to the first (sorted) name that
// starts with the text after the last dot, or input unchanged.
func (c *Console) Autocomplete(input string) string {
	if input == "" {
		return ""
	}
	path, partial, names, ok := c.completion(input)
	if !ok {
		return input
	}
	for _, name := range names {
		if strings.HasPrefix(name, partial) {
			return join(path, name)
		}
	}
	return input
}

// Candidates returns every completion of input, best first: prefix
// matches, then fuzzy subsequence matches.
func (c *Console) Candidates(input string) []string {
	path, partial, names, ok := c.completion(input)
	if !ok {
		return nil
	}
	matches := fuzzy.Strings(fuzzy.Rank(partial, names))
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = join(path, m)
	}
	return out
}
