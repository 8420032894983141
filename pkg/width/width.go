// ABOUTME: Glyph-unit width measurement for console text layout
// ABOUTME: Grapheme-aware via uniseg + runewidth; LRU cache for non-ASCII strings

package width

import (
	"container/list"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const cacheSize = 512

type lruEntry struct {
	key   string
	value int
}

// cache is an O(1) LRU of measured widths. The console runs on a single
// logical thread, so no locking is done here.
type cache struct {
	items map[string]*list.Element
	order *list.List
	size  int
}

func newCache(size int) *cache {
	return &cache{
		items: make(map[string]*list.Element, size),
		order: list.New(),
		size:  size,
	}
}

func (c *cache) get(key string) (int, bool) {
	elem, ok := c.items[key]
	if !ok {
		return 0, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(lruEntry).value, true
}

func (c *cache) put(key string, value int) {
	if _, ok := c.items[key]; ok {
		return
	}
	if c.order.Len() >= c.size {
		if back := c.order.Back(); back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(lruEntry).key)
		}
	}
	c.items[key] = c.order.PushFront(lruEntry{key: key, value: value})
}

var widthCache = newCache(cacheSize)

// Of returns the width of s in glyph cells. East Asian wide characters and
// emoji count as two cells; ANSI escape sequences count as zero.
func Of(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	if w, ok := widthCache.get(s); ok {
		return w
	}
	w := computeWidth(StripANSI(s))
	widthCache.put(s, w)
	return w
}

// isPlainASCII reports whether s holds only printable ASCII.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if b := s[i]; b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

func computeWidth(s string) int {
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += Cluster(cluster)
	}
	return w
}

// Cluster returns the cell width of a single grapheme cluster.
func Cluster(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	if r < 0x20 {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// Clusters splits s into grapheme clusters.
func Clusters(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}
