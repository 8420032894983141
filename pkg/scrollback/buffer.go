// ABOUTME: Bounded scrollback: appended entries are wrapped, rasterized and evicted from the top
// ABOUTME: Content height never exceeds MaxHeight after an append; a pinned view follows new output

package scrollback

import (
	"image"
	"math"

	"github.com/mauromedda/vrconsole/pkg/geom"
	"github.com/mauromedda/vrconsole/pkg/theme"
	"github.com/mauromedda/vrconsole/pkg/width"
)

// Layout defaults, in raster pixels.
const (
	DefaultWidth          = 512
	DefaultViewportHeight = 512
	DefaultMaxHeight      = 8192
	DefaultFontSize       = 14
	DefaultMargin         = 10
	DefaultRowMargin      = 16

	// MaxEntryLength caps the runes kept from a single entry.
	MaxEntryLength = 250

	// evictFraction of MaxHeight is dropped per eviction step.
	evictFraction = 0.1
)

// Entry is one logical line of console output. Prefix, when set, names the
// output slot the entry refers to and renders as "Prefix: Text".
type Entry struct {
	Prefix string
	Text   string
	Style  theme.Style
}

// String returns the text as displayed.
func (e Entry) String() string {
	if e.Prefix == "" {
		return e.Text
	}
	return e.Prefix + ": " + e.Text
}

// Row is one wrapped line in raster coordinates. Y is the top of the line box.
type Row struct {
	Text  string
	Style theme.Style
	Y     int
}

// Options configures a Buffer. Zero fields take the defaults.
type Options struct {
	Width          int
	ViewportHeight int
	MaxHeight      int
	FontSize       int
	Margin         int
	RowMargin      int

	ScrollGain float64
	Drag       float64
	Bounce     float64

	Palette theme.Palette
	// Panel places the buffer in world space for ray hit-testing.
	Panel geom.Panel
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.ViewportHeight <= 0 {
		o.ViewportHeight = DefaultViewportHeight
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = DefaultMaxHeight
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	if o.RowMargin <= 0 {
		o.RowMargin = DefaultRowMargin
	}
	if o.ScrollGain == 0 {
		o.ScrollGain = DefaultScrollGain
	}
	if o.Drag == 0 {
		o.Drag = DefaultDrag
	}
	if o.Bounce == 0 {
		o.Bounce = DefaultBounce
	}
	if o.Palette == (theme.Palette{}) {
		o.Palette = theme.Current().Palette
	}
	// The raster holds at least one single-line entry.
	o.MaxHeight = max(o.MaxHeight, o.Margin+o.RowMargin+o.FontSize)
	return o
}

// Buffer is the scrollback surface. It is not safe for concurrent use.
type Buffer struct {
	opts Options
	cols int

	raster  *image.RGBA
	rows    []Row
	pending []Entry
	entries int

	// height is the raster y where the next entry starts; it doubles as the
	// tracked content height.
	height int

	scroll  ScrollState
	grabbed bool

	view      *image.RGBA
	viewDirty bool
}

// New allocates a buffer with its raster cleared to the background colour.
func New(opts Options) *Buffer {
	opts = opts.withDefaults()
	b := &Buffer{
		opts:   opts,
		cols:   max(1, (opts.Width-2*opts.Margin)/glyphAdvance),
		raster: image.NewRGBA(image.Rect(0, 0, opts.Width, opts.MaxHeight)),
		view:   image.NewRGBA(image.Rect(0, 0, opts.Width, opts.ViewportHeight)),
		scroll: ScrollState{Drag: opts.Drag, Bounce: opts.Bounce},
	}
	b.Clear()
	return b
}

// Clear drops every entry and resets scrolling.
func (b *Buffer) Clear() {
	b.fill(b.raster.Bounds())
	b.rows = nil
	b.pending = nil
	b.entries = 0
	b.height = b.opts.Margin
	b.scroll.Offset = 0
	b.scroll.Velocity = 0
	b.viewDirty = true
}

// Append truncates text, queues it and lays it out.
func (b *Buffer) Append(text string, style theme.Style) {
	b.AppendEntry(Entry{Text: text, Style: style})
}

// AppendEntry queues e and lays it out.
func (b *Buffer) AppendEntry(e Entry) {
	b.Enqueue(e)
	b.Reflow()
}

// Enqueue queues e without laying it out; Reflow draws the queue.
func (b *Buffer) Enqueue(e Entry) {
	b.pending = append(b.pending, e)
}

// Reflow wraps and draws every pending entry, evicting old rows as needed,
// then re-pins the view to the bottom if it was pinned before growth.
func (b *Buffer) Reflow() {
	if len(b.pending) == 0 {
		return
	}
	pinned := b.pinned()
	for _, e := range b.pending {
		b.layout(e, pinned)
	}
	b.pending = nil
	if pinned {
		b.scroll.Offset = b.minOffset()
	}
	b.viewDirty = true
}

func (b *Buffer) lineHeight() int { return b.opts.FontSize }

// layout wraps one entry and draws it at the current content height.
func (b *Buffer) layout(e Entry, pinned bool) {
	text := width.Truncate(e.String(), MaxEntryLength)
	lines := width.Wrap(text, b.cols)
	if len(lines) == 0 {
		lines = []string{""}
	}

	// An entry taller than the whole raster keeps only its head.
	room := (b.opts.MaxHeight - b.opts.Margin - b.opts.RowMargin) / b.lineHeight()
	if room < 1 {
		room = 1
	}
	if len(lines) > room {
		lines = lines[:room]
	}

	need := len(lines)*b.lineHeight() + b.opts.RowMargin
	for b.height+need > b.opts.MaxHeight && b.height > 0 {
		b.evict(int(math.Ceil(evictFraction*float64(b.opts.MaxHeight))), pinned)
	}

	for i, line := range lines {
		y := b.height + i*b.lineHeight()
		b.rows = append(b.rows, Row{Text: line, Style: e.Style, Y: y})
		b.drawText(line, e.Style, b.opts.Margin, y)
	}
	sepY := b.height + len(lines)*b.lineHeight() + b.opts.RowMargin/2
	b.drawSeparator(sepY)

	b.height += need
	b.entries++
}

// evict drops n pixel rows from the top of the raster and shifts the rest up.
// An unpinned view moves with the content so it keeps showing the same rows.
func (b *Buffer) evict(n int, pinned bool) {
	n = min(n, b.height)
	if n <= 0 {
		return
	}
	b.shiftUp(n)
	b.height -= n

	// A row cut by the eviction keeps its visible part.
	kept := b.rows[:0]
	for _, r := range b.rows {
		if r.Y+b.lineHeight() <= n {
			continue
		}
		r.Y -= n
		kept = append(kept, r)
	}
	b.rows = kept

	if !pinned {
		b.scroll.Offset = min(0, b.scroll.Offset+float64(n))
	}
	b.clampOffset()
}

// Len returns the number of entries laid out since the last Clear,
// including ones whose rows have since been evicted.
func (b *Buffer) Len() int { return b.entries }

// Height returns the tracked content height in pixels.
func (b *Buffer) Height() int { return b.height }

// MaxHeight returns the raster cap.
func (b *Buffer) MaxHeight() int { return b.opts.MaxHeight }

// ViewportHeight returns the visible window height in pixels.
func (b *Buffer) ViewportHeight() int { return b.opts.ViewportHeight }

// Columns returns the wrap width in glyph cells.
func (b *Buffer) Columns() int { return b.cols }

// Rows returns every wrapped line still held in the raster, oldest first.
// The first row has a negative Y when eviction cut through it.
func (b *Buffer) Rows() []Row {
	out := make([]Row, len(b.rows))
	copy(out, b.rows)
	return out
}

// VisibleRows returns the rows intersecting the viewport with Y translated
// to viewport coordinates.
func (b *Buffer) VisibleRows() []Row {
	off := int(math.Round(b.scroll.Offset))
	var out []Row
	for _, r := range b.rows {
		y := r.Y + off
		if y+b.lineHeight() <= 0 || y >= b.opts.ViewportHeight {
			continue
		}
		r.Y = y
		out = append(out, r)
	}
	return out
}
