// ABOUTME: Single-line editable text surface with cursor, selection and an RGBA texture
// ABOUTME: Indices are in runes; values are NFC-normalised so cursor arithmetic matches what is drawn

package cmdline

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/vrconsole/pkg/theme"
)

const (
	DefaultWidth       = 512
	DefaultHeight      = 32
	DefaultPlaceholder = "Enter console message here..."

	padding = 7
)

var face = basicfont.Face7x13

// Options configures a Line. Zero fields take the defaults.
type Options struct {
	Width, Height int
	Placeholder   string
	Palette       theme.Palette
}

// Line holds the command-line value. The selection marks the autocomplete
// suggestion appended after the typed prefix.
type Line struct {
	opts     Options
	value    []rune
	cursor   int
	selStart int
	selEnd   int

	scrollX int
	tex     *image.RGBA
	dirty   bool
}

// New returns an empty line.
func New(opts Options) *Line {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.Palette == (theme.Palette{}) {
		opts.Palette = theme.Current().Palette
	}
	return &Line{
		opts:  opts,
		tex:   image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
		dirty: true,
	}
}

// SetValue replaces the text. Cursor and selection are clamped to the new length.
func (l *Line) SetValue(s string) {
	l.value = []rune(norm.NFC.String(s))
	l.cursor = l.clamp(l.cursor)
	l.selStart = l.clamp(l.selStart)
	l.selEnd = l.clamp(l.selEnd)
	l.dirty = true
}

// Value returns the full text, including any suggestion.
func (l *Line) Value() string { return string(l.value) }

// Len returns the length in runes.
func (l *Line) Len() int { return len(l.value) }

func (l *Line) clamp(i int) int {
	return max(0, min(i, len(l.value)))
}

// CursorIndex returns the cursor position in runes.
func (l *Line) CursorIndex() int { return l.cursor }

// SetCursorIndex moves the cursor, clamped to [0, Len()].
func (l *Line) SetCursorIndex(i int) {
	l.cursor = l.clamp(i)
	l.dirty = true
}

// SetSelection highlights [start, end). Bounds are clamped and ordered.
func (l *Line) SetSelection(start, end int) {
	start, end = l.clamp(start), l.clamp(end)
	if start > end {
		start, end = end, start
	}
	l.selStart, l.selEnd = start, end
	l.dirty = true
}

// Selection returns the highlighted range.
func (l *Line) Selection() (start, end int) { return l.selStart, l.selEnd }

// Typed returns the text before the selection, or the whole value when
// nothing is selected.
func (l *Line) Typed() string {
	if l.selStart == l.selEnd {
		return string(l.value)
	}
	return string(l.value[:l.selStart])
}

// Hint returns the selected suggestion text.
func (l *Line) Hint() string {
	return string(l.value[l.selStart:l.selEnd])
}

// Placeholder returns the text drawn when the line is empty.
func (l *Line) Placeholder() string { return l.opts.Placeholder }

// ScrollX returns the horizontal scroll of the texture in pixels.
func (l *Line) ScrollX() int { return l.scrollX }

// Render redraws the texture if anything changed and returns it. The view
// scrolls horizontally to keep the cursor inside the padded area.
func (l *Line) Render() *image.RGBA {
	if !l.dirty {
		return l.tex
	}
	l.dirty = false
	p := l.opts.Palette
	bounds := l.tex.Bounds()
	draw.Draw(l.tex, bounds, image.NewUniform(theme.ParseColor(p.InputBg, color.RGBA{0xff, 0xff, 0xff, 0xff})), image.Point{}, draw.Src)

	adv := face.Advance
	cursorX := l.cursor * adv
	visible := bounds.Dx() - 2*padding
	if cursorX-l.scrollX > visible {
		l.scrollX = cursorX - visible
	}
	if cursorX < l.scrollX {
		l.scrollX = cursorX
	}
	baseline := (bounds.Dy() + face.Ascent - face.Descent) / 2

	if len(l.value) == 0 {
		l.scrollX = 0
		l.text(l.opts.Placeholder, theme.ParseColor(p.Placeholder, color.RGBA{0xa0, 0xa0, 0xa0, 0xff}), padding, baseline)
	} else {
		x := padding - l.scrollX
		typed := string(l.value[:l.selStart])
		hint := string(l.value[l.selStart:l.selEnd])
		rest := string(l.value[l.selEnd:])
		if l.selStart == l.selEnd {
			typed, hint, rest = string(l.value), "", ""
		}
		fg := theme.ParseColor(p.Input, color.RGBA{A: 0xff})
		x = l.text(typed, fg, x, baseline)
		if hint != "" {
			hl := theme.ParseColor(p.Hint, color.RGBA{0x8a, 0x8a, 0x8a, 0xff})
			x = l.text(hint, hl, x, baseline)
		}
		l.text(rest, fg, x, baseline)
	}

	cx := padding + cursorX - l.scrollX
	cur := theme.ParseColor(p.Cursor, color.RGBA{A: 0xff})
	top := baseline - face.Ascent
	draw.Draw(l.tex, image.Rect(cx, top, cx+1, baseline+face.Descent), image.NewUniform(cur), image.Point{}, draw.Src)
	return l.tex
}

// text draws s starting at x and returns the pen position after it.
func (l *Line) text(s string, c color.RGBA, x, baseline int) int {
	d := font.Drawer{
		Dst:  l.tex,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
	return d.Dot.X.Round()
}
