// ABOUTME: Scroll physics for the scrollback viewport: velocity, drag and bounce
// ABOUTME: Offset stays within [min(0, viewport-content), 0]; grabbing suspends auto-follow

package scrollback

import (
	"image"

	"github.com/mauromedda/vrconsole/pkg/geom"
)

// Scroll defaults.
const (
	DefaultScrollGain = 50
	DefaultDrag       = 0.9
	DefaultBounce     = 0.1
)

// ScrollState is the viewport position and momentum. Offset is the raster
// y shown at the top of the viewport, negated.
type ScrollState struct {
	Offset   float64
	Velocity float64
	Drag     float64
	Bounce   float64
}

// minOffset is the lowest legal offset: the bottom of the content aligned
// with the bottom of the viewport, or 0 when the content fits.
func (b *Buffer) minOffset() float64 {
	return float64(min(0, b.opts.ViewportHeight-b.height))
}

func (b *Buffer) clampOffset() {
	b.scroll.Offset = max(b.minOffset(), min(0, b.scroll.Offset))
}

// pinned reports whether the view sits near the bottom and no pointer holds it.
func (b *Buffer) pinned() bool {
	if b.grabbed {
		return false
	}
	d := b.scroll.Offset - b.minOffset()
	if d < 0 {
		d = -d
	}
	return d <= float64(4*b.opts.FontSize)
}

// State returns a copy of the scroll state.
func (b *Buffer) State() ScrollState { return b.scroll }

// Offset returns the current scroll offset.
func (b *Buffer) Offset() float64 { return b.scroll.Offset }

// SetOffset jumps the view, clamped to the legal range, and stops momentum.
func (b *Buffer) SetOffset(off float64) {
	b.scroll.Offset = off
	b.scroll.Velocity = 0
	b.clampOffset()
	b.viewDirty = true
}

// Scroll adds a drag delta (panel units) to the scroll velocity.
func (b *Buffer) Scroll(delta float64) {
	b.scroll.Velocity += delta * b.opts.ScrollGain
}

// SetGrabbed marks the buffer as held by a pointer.
func (b *Buffer) SetGrabbed(grabbed bool) { b.grabbed = grabbed }

// Grabbed reports whether a pointer holds the buffer.
func (b *Buffer) Grabbed() bool { return b.grabbed }

// Tick runs one physics step. It reports whether the offset moved.
func (b *Buffer) Tick() bool {
	old := b.scroll.Offset
	if b.height < b.opts.ViewportHeight {
		b.scroll.Offset = 0
	} else {
		b.scroll.Offset -= b.scroll.Velocity
		lo := b.minOffset()
		if b.scroll.Offset <= lo || b.scroll.Offset >= 0 {
			b.scroll.Velocity *= -b.scroll.Bounce
		}
		b.clampOffset()
	}
	b.scroll.Velocity *= b.scroll.Drag
	if b.scroll.Offset != old {
		b.viewDirty = true
		return true
	}
	return false
}

// Intersect hit-tests the buffer's world panel.
func (b *Buffer) Intersect(r geom.Ray) (geom.Hit, bool) {
	if b.opts.Panel.Width <= 0 || b.opts.Panel.Height <= 0 {
		return geom.Hit{}, false
	}
	return b.opts.Panel.Intersect(r)
}

// SetPanel moves the buffer in world space.
func (b *Buffer) SetPanel(p geom.Panel) { b.opts.Panel = p }

// RowAt maps a UV on the panel to the row under it, if any.
func (b *Buffer) RowAt(uv geom.Point) (Row, bool) {
	pt := image.Pt(int(uv.X*float64(b.opts.Width)), int(uv.Y*float64(b.opts.ViewportHeight)))
	y := pt.Y - int(b.scroll.Offset)
	for _, r := range b.rows {
		if y >= r.Y && y < r.Y+b.lineHeight() {
			return r, true
		}
	}
	return Row{}, false
}
