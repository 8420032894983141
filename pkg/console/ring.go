// ABOUTME: Output and history rings owned by the console
// ABOUTME: OutputRing addresses slots absolutely and overwrites on wrap; HistoryRing drops oldest and skips repeats

package console

import (
	"sort"
	"strconv"
)

// Ring capacities used when Options leaves them zero.
const (
	DefaultOutputCapacity  = 20
	DefaultHistoryCapacity = 50
)

// OutputRing stores recent results for back-references. Slot indices wrap
// modulo the capacity.
type OutputRing struct {
	slots   []any
	filled  []bool
	written int
}

// NewOutputRing returns an empty ring.
func NewOutputRing(capacity int) *OutputRing {
	if capacity <= 0 {
		capacity = DefaultOutputCapacity
	}
	return &OutputRing{
		slots:  make([]any, capacity),
		filled: make([]bool, capacity),
	}
}

// Push stores v in the next slot and returns that slot's index.
func (r *OutputRing) Push(v any) int {
	slot := r.written % len(r.slots)
	r.slots[slot] = v
	r.filled[slot] = true
	r.written++
	return slot
}

// Get returns the value in slot.
func (r *OutputRing) Get(slot int) (any, bool) {
	if slot < 0 || slot >= len(r.slots) || !r.filled[slot] {
		return nil, false
	}
	return r.slots[slot], true
}

// Last returns the most recently written slot and its value.
func (r *OutputRing) Last() (v any, slot int, ok bool) {
	if r.written == 0 {
		return nil, -1, false
	}
	slot = (r.written - 1) % len(r.slots)
	return r.slots[slot], slot, true
}

// Cap returns the number of slots.
func (r *OutputRing) Cap() int { return len(r.slots) }

// Len returns the number of filled slots.
func (r *OutputRing) Len() int { return min(r.written, len(r.slots)) }

// Written returns how many values were ever pushed.
func (r *OutputRing) Written() int { return r.written }

// Members lists the filled slots plus the ring's own properties.
func (r *OutputRing) Members() []string {
	out := []string{"capacity", "last", "length"}
	for i, ok := range r.filled {
		if ok {
			out = append(out, strconv.Itoa(i))
		}
	}
	sort.Strings(out)
	return out
}

// Member resolves a slot number or a ring property.
func (r *OutputRing) Member(name string) (any, bool) {
	switch name {
	case "capacity":
		return float64(r.Cap()), true
	case "length":
		return float64(r.Len()), true
	case "last":
		v, _, ok := r.Last()
		return v, ok
	}
	slot, err := strconv.Atoi(name)
	if err != nil {
		return nil, false
	}
	return r.Get(slot)
}

// HistoryRing keeps accepted commands, oldest first.
type HistoryRing struct {
	entries  []string
	capacity int
}

// NewHistoryRing returns a ring seeded with the newest entries of initial.
func NewHistoryRing(capacity int, initial []string) *HistoryRing {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	h := &HistoryRing{capacity: capacity}
	for _, s := range initial {
		h.Push(s)
	}
	return h
}

// Push appends s unless it is empty or repeats the newest entry. It reports
// whether s was added.
func (h *HistoryRing) Push(s string) bool {
	if s == "" {
		return false
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == s {
		return false
	}
	h.entries = append(h.entries, s)
	if over := len(h.entries) - h.capacity; over > 0 {
		h.entries = append(h.entries[:0:0], h.entries[over:]...)
	}
	return true
}

// Len returns the number of entries.
func (h *HistoryRing) Len() int { return len(h.entries) }

// Cap returns the capacity.
func (h *HistoryRing) Cap() int { return h.capacity }

// Recent returns the n-th entry counting back from the newest (0 = newest).
func (h *HistoryRing) Recent(n int) (string, bool) {
	i := len(h.entries) - 1 - n
	if n < 0 || i < 0 {
		return "", false
	}
	return h.entries[i], true
}

// Entries returns a copy, oldest first.
func (h *HistoryRing) Entries() []string {
	return append([]string(nil), h.entries...)
}
