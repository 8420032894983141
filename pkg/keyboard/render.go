// ABOUTME: Keyboard texture drawing: rounded key caps with one or two stacked labels
// ABOUTME: Shift and caps keys take their state colours; the hovered key is tinted

package keyboard

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mauromedda/vrconsole/pkg/key"
	"github.com/mauromedda/vrconsole/pkg/theme"
)

const (
	cornerRadius = 10
	labelGap     = 5
)

var face = basicfont.Face7x13

// roundRect is an alpha mask for a rectangle with rounded corners.
type roundRect struct {
	r      image.Rectangle
	radius int
}

func (rr roundRect) ColorModel() color.Model { return color.AlphaModel }
func (rr roundRect) Bounds() image.Rectangle { return rr.r }

func (rr roundRect) At(x, y int) color.Color {
	if !image.Pt(x, y).In(rr.r) {
		return color.Alpha{}
	}
	rad := min(rr.radius, rr.r.Dx()/2, rr.r.Dy()/2)
	cx, cy := x, y
	switch {
	case x < rr.r.Min.X+rad:
		cx = rr.r.Min.X + rad
	case x >= rr.r.Max.X-rad:
		cx = rr.r.Max.X - rad - 1
	}
	switch {
	case y < rr.r.Min.Y+rad:
		cy = rr.r.Min.Y + rad
	case y >= rr.r.Max.Y-rad:
		cy = rr.r.Max.Y - rad - 1
	}
	dx, dy := x-cx, y-cy
	if dx*dx+dy*dy > rad*rad {
		return color.Alpha{}
	}
	return color.Alpha{A: 0xff}
}

// fill picks the cap colour for k.
func (kb *Keyboard) fill(k *KeyDef) color.RGBA {
	p := kb.opts.Palette
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	switch key.FromLabel(k.Chars[0]).Type {
	case key.KeyShift:
		if kb.shift {
			return theme.ParseColor(p.KeyShift, white)
		}
	case key.KeyCaps:
		if kb.caps {
			return theme.ParseColor(p.KeyCaps, white)
		}
	}
	if k.Highlight {
		return theme.ParseColor(p.KeyHover, white)
	}
	return theme.ParseColor(p.KeyFill, white)
}

// Dirty reports whether the next Render call will redraw.
func (kb *Keyboard) Dirty() bool { return kb.dirty }

// Render redraws the texture if the state changed and returns it.
func (kb *Keyboard) Render() *image.RGBA {
	if !kb.dirty {
		return kb.tex
	}
	kb.dirty = false
	draw.Draw(kb.tex, kb.tex.Bounds(), image.Transparent, image.Point{}, draw.Src)

	fg := theme.ParseColor(kb.opts.Palette.KeyText, color.RGBA{A: 0xff})
	for _, k := range kb.placed {
		mask := roundRect{r: k.Bounds, radius: cornerRadius}
		draw.DrawMask(kb.tex, k.Bounds, image.NewUniform(kb.fill(k)), image.Point{}, mask, k.Bounds.Min, draw.Over)
		kb.labels(k, fg)
	}
	return kb.tex
}

// labels centres the key's symbols, stacking a shifted symbol above the
// unshifted one.
func (kb *Keyboard) labels(k *KeyDef, fg color.RGBA) {
	n := len(k.Chars)
	lineH := face.Ascent + labelGap
	top := k.Bounds.Min.Y + (k.Bounds.Dy()-n*lineH+labelGap)/2 + face.Ascent
	for i := range n {
		txt := k.Chars[n-1-i]
		w := font.MeasureString(face, txt).Round()
		d := font.Drawer{
			Dst:  kb.tex,
			Src:  image.NewUniform(fg),
			Face: face,
			Dot:  fixed.P(k.Bounds.Min.X+(k.Bounds.Dx()-w)/2, top+i*lineH),
		}
		d.DrawString(txt)
	}
}
