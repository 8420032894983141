// ABOUTME: Raster drawing for the scrollback: glyphs, separators, eviction shifts
// ABOUTME: View composites the viewport texture from the raster at the current offset

package scrollback

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mauromedda/vrconsole/pkg/theme"
)

var face = basicfont.Face7x13

// glyphAdvance is the fixed cell width of the raster font.
var glyphAdvance = face.Advance

var (
	black = color.RGBA{A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func (b *Buffer) background() color.RGBA {
	return theme.ParseColor(b.opts.Palette.Background, white)
}

func (b *Buffer) fill(r image.Rectangle) {
	draw.Draw(b.raster, r, image.NewUniform(b.background()), image.Point{}, draw.Src)
}

// shiftUp moves raster rows [n, height) to [0, height-n) and clears the rest.
func (b *Buffer) shiftUp(n int) {
	w, h := b.raster.Bounds().Dx(), min(b.height, b.raster.Bounds().Dy())
	n = min(n, h)
	stride := b.raster.Stride
	copy(b.raster.Pix, b.raster.Pix[n*stride:h*stride])
	b.fill(image.Rect(0, h-n, w, b.raster.Bounds().Dy()))
}

// drawText renders one line with its top at y. Bold strikes twice; oblique
// has no glyph variant in the raster font and only takes the colour.
func (b *Buffer) drawText(s string, st theme.Style, x, y int) {
	fg := st.RGBA(theme.ParseColor(b.opts.Palette.Text, black))
	baseline := y + (b.lineHeight()+face.Ascent-face.Descent)/2
	d := font.Drawer{
		Dst:  b.raster,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
	if st.Weight == theme.WeightBold {
		d.Dot = fixed.P(x+1, baseline)
		d.DrawString(s)
	}
}

func (b *Buffer) drawSeparator(y int) {
	if y < 0 || y >= b.raster.Bounds().Dy() {
		return
	}
	c := theme.ParseColor(b.opts.Palette.Separator, color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff})
	draw.Draw(b.raster, image.Rect(0, y, b.raster.Bounds().Dx(), y+1), image.NewUniform(c), image.Point{}, draw.Src)
}

// Raster exposes the full backing raster. Callers must not retain it across
// appends.
func (b *Buffer) Raster() *image.RGBA { return b.raster }

// View returns the viewport texture, recompositing it when the content or
// offset changed since the last call.
func (b *Buffer) View() *image.RGBA {
	if !b.viewDirty {
		return b.view
	}
	b.viewDirty = false
	vb := b.view.Bounds()
	draw.Draw(b.view, vb, image.NewUniform(b.background()), image.Point{}, draw.Src)
	top := int(math.Round(-b.scroll.Offset))
	visible := image.Rect(0, 0, vb.Dx(), min(vb.Dy(), b.height-top))
	if !visible.Empty() {
		draw.Draw(b.view, visible, b.raster, image.Pt(0, top), draw.Src)
	}
	return b.view
}

// Dirty reports whether the next View call will recomposite.
func (b *Buffer) Dirty() bool { return b.viewDirty }
