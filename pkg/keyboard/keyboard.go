// ABOUTME: Virtual keyboard: grid hit-testing, shift/caps state machine and function-key callbacks
// ABOUTME: Resolved keys are published on an event bus; F1-F11 run host callbacks instead

package keyboard

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"unicode"

	"github.com/mauromedda/vrconsole/internal/eventbus"
	"github.com/mauromedda/vrconsole/pkg/geom"
	"github.com/mauromedda/vrconsole/pkg/key"
	"github.com/mauromedda/vrconsole/pkg/theme"
)

const (
	DefaultWidth      = 819
	DefaultHeight     = 512
	DefaultKeysPerRow = 15
	DefaultKeyMargin  = 10

	// FunctionKeys is the number of assignable function keys.
	FunctionKeys = 11
)

// ErrFunctionKey is returned for function-key numbers outside [1, FunctionKeys].
var ErrFunctionKey = errors.New("function keys are numbered 1 to 11")

// Options configures a Keyboard. Zero fields take the defaults.
type Options struct {
	Width, Height int
	KeysPerRow    int
	KeyMargin     int
	Layout        [][]KeyDef
	Palette       theme.Palette
	Panel         geom.Panel
}

// Keyboard is a hoverable, selectable key grid. It is not safe for
// concurrent use.
type Keyboard struct {
	opts    Options
	rows    [][]KeyDef
	placed  []*KeyDef
	keySize float64

	shift bool
	caps  bool
	fn    [FunctionKeys]func()

	hovered *KeyDef
	bus     *eventbus.Bus[key.Key]

	tex   *image.RGBA
	dirty bool
}

// New builds a keyboard and lays out its keys.
func New(opts Options) *Keyboard {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.KeysPerRow <= 0 {
		opts.KeysPerRow = DefaultKeysPerRow
	}
	if opts.KeyMargin <= 0 {
		opts.KeyMargin = DefaultKeyMargin
	}
	if len(opts.Layout) == 0 {
		opts.Layout = DefaultLayout()
	}
	if opts.Palette == (theme.Palette{}) {
		opts.Palette = theme.Current().Palette
	}
	kb := &Keyboard{
		opts: opts,
		rows: opts.Layout,
		bus:  eventbus.New[key.Key](),
		tex:  image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
	}
	kb.Layout()
	return kb
}

// Layout derives every key's pixel bounds from the grid. A key taller than
// one row covers the rows below it.
func (kb *Keyboard) Layout() {
	m := float64(kb.opts.KeyMargin)
	kb.keySize = float64(kb.opts.Width)/float64(kb.opts.KeysPerRow) - m
	step := kb.keySize + m

	kb.placed = kb.placed[:0]
	for i := range kb.rows {
		y := float64(i) * step
		xp := 0
		for j := range kb.rows[i] {
			k := &kb.rows[i][j]
			x := float64(xp) * step
			xp += k.width()
			if k.Spacer() {
				continue
			}
			x0, y0 := x+m/2, y+m/2
			k.Bounds = image.Rect(
				int(math.Round(x0)), int(math.Round(y0)),
				int(math.Round(x0+kb.keySize*float64(k.width()))),
				int(math.Round(y0+kb.keySize*float64(k.height()))),
			)
			kb.placed = append(kb.placed, k)
		}
	}
	kb.dirty = true
}

// Keys returns the non-spacer keys in layout order.
func (kb *Keyboard) Keys() []*KeyDef {
	out := make([]*KeyDef, len(kb.placed))
	copy(out, kb.placed)
	return out
}

// KeySize returns the edge of a one-cell key in pixels.
func (kb *Keyboard) KeySize() float64 { return kb.keySize }

// KeyAt returns the key under pt in texture pixels.
func (kb *Keyboard) KeyAt(pt image.Point) (*KeyDef, bool) {
	for _, k := range kb.placed {
		if pt.In(k.Bounds) {
			return k, true
		}
	}
	return nil, false
}

// Find returns the first key whose unshifted label is label.
func (kb *Keyboard) Find(label string) (*KeyDef, bool) {
	for _, k := range kb.placed {
		if k.Chars[0] == label {
			return k, true
		}
	}
	return nil, false
}

// Shift reports the transient shift state.
func (kb *Keyboard) Shift() bool { return kb.shift }

// Caps reports the persistent caps state.
func (kb *Keyboard) Caps() bool { return kb.caps }

// Subscribe registers h for emitted keys and returns an unsubscribe func.
func (kb *Keyboard) Subscribe(h func(key.Key)) func() {
	return kb.bus.Subscribe(h)
}

// AssignFunctionKey binds F<n> to fn. A nil fn clears the binding.
func (kb *Keyboard) AssignFunctionKey(n int, fn func()) error {
	if n < 1 || n > FunctionKeys {
		return fmt.Errorf("assign F%d: %w", n, ErrFunctionKey)
	}
	kb.fn[n-1] = fn
	return nil
}

// Press activates k as if it had been selected.
func (kb *Keyboard) Press(k *KeyDef) {
	if k == nil || k.Spacer() {
		return
	}
	label := k.Label(kb.shift)
	ev := key.FromLabel(label)

	switch ev.Type {
	case key.KeyFunction:
		if n := int(ev.Rune); n >= 1 && n <= FunctionKeys && kb.fn[n-1] != nil {
			kb.fn[n-1]()
		}
		return
	case key.KeyShift:
		kb.shift = !kb.shift
		if !kb.shift {
			kb.caps = false
		}
		kb.dirty = true
	case key.KeyCaps:
		kb.caps = !kb.caps
		kb.shift = kb.caps
		kb.dirty = true
	case key.KeyRune:
		ev.Rune = kb.applyCase(label, ev.Rune)
	case key.KeyUnknown:
		return
	}

	kb.bus.Publish(ev)

	if !ev.IsModifier() && kb.shift && !kb.caps {
		kb.shift = false
		kb.dirty = true
	}
}

// applyCase lower-cases single-letter keycaps unless shift is engaged.
func (kb *Keyboard) applyCase(label string, r rune) rune {
	if !unicode.IsLetter(r) || len([]rune(label)) != 1 {
		return r
	}
	if kb.shift {
		return unicode.ToUpper(r)
	}
	return unicode.ToLower(r)
}

// pixel maps a panel UV to texture pixels.
func (kb *Keyboard) pixel(uv geom.Point) image.Point {
	return image.Pt(int(uv.X*float64(kb.opts.Width)), int(uv.Y*float64(kb.opts.Height)))
}

// Select presses the key under hit. Misses are ignored.
func (kb *Keyboard) Select(hit geom.Hit) {
	if k, ok := kb.KeyAt(kb.pixel(hit.UV)); ok {
		kb.Press(k)
	}
}

// Hover highlights the key under hit.
func (kb *Keyboard) Hover(hit geom.Hit) {
	k, _ := kb.KeyAt(kb.pixel(hit.UV))
	kb.setHovered(k)
}

// Leave clears the hover highlight.
func (kb *Keyboard) Leave() { kb.setHovered(nil) }

func (kb *Keyboard) setHovered(k *KeyDef) {
	if k == kb.hovered {
		return
	}
	if kb.hovered != nil {
		kb.hovered.Highlight = false
	}
	if k != nil {
		k.Highlight = true
	}
	kb.hovered = k
	kb.dirty = true
}

// Intersect hit-tests the keyboard's world panel.
func (kb *Keyboard) Intersect(r geom.Ray) (geom.Hit, bool) {
	p := kb.opts.Panel
	if p.Width <= 0 || p.Height <= 0 {
		return geom.Hit{}, false
	}
	return p.Intersect(r)
}

// SetPanel moves the keyboard in world space.
func (kb *Keyboard) SetPanel(p geom.Panel) { kb.opts.Panel = p }

// Legend renders the grid as text rows, for hosts without textures.
func (kb *Keyboard) Legend() []string {
	out := make([]string, 0, len(kb.rows))
	for _, row := range kb.rows {
		var parts []string
		for i := range row {
			if row[i].Spacer() {
				continue
			}
			parts = append(parts, row[i].Label(kb.shift))
		}
		out = append(out, strings.Join(parts, " "))
	}
	return out
}
