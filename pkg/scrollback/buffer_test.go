// ABOUTME: Tests for scrollback layout, eviction, auto-scroll and scroll physics
// ABOUTME: Uses a small raster so eviction and viewport bounds are reached quickly

package scrollback

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/mauromedda/vrconsole/pkg/geom"
	"github.com/mauromedda/vrconsole/pkg/theme"
)

// small: 25 columns, 100px viewport, 400px raster, 30px per single-line entry.
func small() *Buffer {
	return New(Options{Width: 200, ViewportHeight: 100, MaxHeight: 400, Palette: theme.DefaultPalette()})
}

func appendN(b *Buffer, from, n int) {
	for i := from; i < from+n; i++ {
		b.Append(fmt.Sprintf("entry %03d", i), theme.Style{})
	}
}

func TestLayoutWrapsAndPrefixes(t *testing.T) {
	t.Parallel()
	b := small()
	if b.Columns() != 25 {
		t.Fatalf("Columns() = %d; want 25", b.Columns())
	}

	b.AppendEntry(Entry{Prefix: "§0", Text: "2"})
	b.Append(strings.Repeat("word ", 10), theme.Style{})

	rows := b.Rows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d; want 3 (%+v)", len(rows), rows)
	}
	if rows[0].Text != "§0: 2" {
		t.Errorf("rows[0] = %q; want %q", rows[0].Text, "§0: 2")
	}
	if rows[0].Y != DefaultMargin {
		t.Errorf("rows[0].Y = %d; want %d", rows[0].Y, DefaultMargin)
	}
	if rows[1].Y != DefaultMargin+DefaultFontSize+DefaultRowMargin {
		t.Errorf("rows[1].Y = %d", rows[1].Y)
	}
	if rows[2].Y-rows[1].Y != DefaultFontSize {
		t.Errorf("wrapped line spacing = %d; want %d", rows[2].Y-rows[1].Y, DefaultFontSize)
	}
	want := DefaultMargin + 30 + 2*DefaultFontSize + DefaultRowMargin
	if b.Height() != want {
		t.Errorf("Height() = %d; want %d", b.Height(), want)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d; want 2", b.Len())
	}
}

func TestAppendTruncates(t *testing.T) {
	t.Parallel()
	b := New(Options{Width: 2000, ViewportHeight: 100, MaxHeight: 200, Palette: theme.DefaultPalette()})
	b.Append(strings.Repeat("x", 400), theme.Style{})
	var total int
	for _, r := range b.Rows() {
		total += len([]rune(r.Text))
	}
	if total != MaxEntryLength {
		t.Errorf("kept %d runes; want %d", total, MaxEntryLength)
	}
}

func TestEnqueueDefersLayout(t *testing.T) {
	t.Parallel()
	b := small()
	b.Enqueue(Entry{Text: "a"})
	b.Enqueue(Entry{Text: "b"})
	if len(b.Rows()) != 0 {
		t.Fatal("Enqueue should not lay out")
	}
	b.Reflow()
	if len(b.Rows()) != 2 {
		t.Errorf("rows after Reflow = %d; want 2", len(b.Rows()))
	}
}

func TestHeightNeverExceedsMax(t *testing.T) {
	t.Parallel()
	b := small()
	rng := rand.New(rand.NewSource(7))
	for i := range 500 {
		b.Append(strings.Repeat("z", rng.Intn(300)), theme.Style{})
		if b.Height() > b.MaxHeight() {
			t.Fatalf("append %d: Height() = %d > %d", i, b.Height(), b.MaxHeight())
		}
	}
}

func TestEvictionDropsTopRows(t *testing.T) {
	t.Parallel()
	b := small()
	appendN(b, 0, 13)
	if b.Height() != 400 {
		t.Fatalf("Height() = %d; want 400 before eviction", b.Height())
	}
	appendN(b, 13, 1)

	// ceil(0.1*400) = 40 pixels dropped, then 30 added.
	if b.Height() != 390 {
		t.Errorf("Height() = %d; want 390", b.Height())
	}
	rows := b.Rows()
	if rows[0].Text != "entry 001" || rows[0].Y != 0 {
		t.Errorf("first row = %+v; want entry 001 at 0", rows[0])
	}
	if last := rows[len(rows)-1]; last.Text != "entry 013" {
		t.Errorf("last row = %q", last.Text)
	}
	if b.Len() != 14 {
		t.Errorf("Len() = %d; want 14", b.Len())
	}
}

func TestOversizedEntryFits(t *testing.T) {
	t.Parallel()
	b := New(Options{Width: 40, ViewportHeight: 50, MaxHeight: 100, Palette: theme.DefaultPalette()})
	b.Append(strings.Repeat("y", 250), theme.Style{})
	if b.Height() > 100 {
		t.Errorf("Height() = %d > 100", b.Height())
	}
}

func TestAutoScrollFollowsBottom(t *testing.T) {
	t.Parallel()
	b := small()
	for i := range 40 {
		appendN(b, i, 1)
		want := math.Min(0, float64(b.ViewportHeight()-b.Height()))
		if b.Offset() != want {
			t.Fatalf("append %d: Offset() = %v; want %v", i, b.Offset(), want)
		}
	}
}

func TestGrabbedViewIsPreserved(t *testing.T) {
	t.Parallel()
	b := New(Options{Width: 200, ViewportHeight: 100, MaxHeight: 4000, Palette: theme.DefaultPalette()})
	appendN(b, 0, 10)
	b.SetGrabbed(true)
	off := b.Offset()
	appendN(b, 10, 5)
	if b.Offset() != off {
		t.Errorf("Offset() = %v; grabbed view moved from %v", b.Offset(), off)
	}
	b.SetGrabbed(false)
	if b.Grabbed() {
		t.Error("Grabbed() after release")
	}
}

func TestScrolledUpViewIsPreserved(t *testing.T) {
	t.Parallel()
	b := New(Options{Width: 200, ViewportHeight: 100, MaxHeight: 4000, Palette: theme.DefaultPalette()})
	appendN(b, 0, 20)
	b.SetOffset(-100)
	appendN(b, 20, 3)
	if b.Offset() != -100 {
		t.Errorf("Offset() = %v; want -100", b.Offset())
	}
}

func TestEvictionKeepsUnpinnedViewSteady(t *testing.T) {
	t.Parallel()
	b := small()
	appendN(b, 0, 13)
	b.SetOffset(-150)
	before := b.VisibleRows()
	if len(before) == 0 || before[0].Text != "entry 005" {
		t.Fatalf("visible before = %+v", before)
	}
	appendN(b, 13, 1)
	after := b.VisibleRows()
	if after[0].Text != before[0].Text || after[0].Y != before[0].Y {
		t.Errorf("view moved: before %+v after %+v", before[0], after[0])
	}
	if b.Offset() != -110 {
		t.Errorf("Offset() = %v; want -110", b.Offset())
	}
}

func TestOffsetStaysInBounds(t *testing.T) {
	t.Parallel()
	b := small()
	rng := rand.New(rand.NewSource(42))
	for i := range 2000 {
		switch rng.Intn(4) {
		case 0:
			appendN(b, i, 1)
		case 1:
			b.Scroll(rng.Float64()*4 - 2)
		default:
			b.Tick()
		}
		lo := math.Min(0, float64(b.ViewportHeight()-b.Height()))
		if off := b.Offset(); off < lo || off > 0 {
			t.Fatalf("step %d: Offset() = %v outside [%v, 0]", i, off, lo)
		}
	}
}

func TestTickContentFits(t *testing.T) {
	t.Parallel()
	b := small()
	appendN(b, 0, 1)
	b.Scroll(3)
	b.Tick()
	if b.Offset() != 0 {
		t.Errorf("Offset() = %v; want 0 while content fits", b.Offset())
	}
	if v := b.State().Velocity; math.Abs(v-150*DefaultDrag) > 1e-9 {
		t.Errorf("Velocity = %v; want drag applied", v)
	}
}

func TestTickBounces(t *testing.T) {
	t.Parallel()
	b := small()
	appendN(b, 0, 10)
	b.SetOffset(0)
	b.Scroll(-1)
	moved := b.Tick()
	if b.Offset() != 0 {
		t.Errorf("Offset() = %v; want clamped to 0", b.Offset())
	}
	if moved {
		t.Error("Tick reported movement at the bound")
	}
	want := 50 * DefaultBounce * DefaultDrag
	if v := b.State().Velocity; math.Abs(v-want) > 1e-9 {
		t.Errorf("Velocity = %v; want %v", v, want)
	}

	b.Scroll(0.5)
	if !b.Tick() {
		t.Error("Tick should report movement")
	}
	if b.Offset() >= 0 {
		t.Errorf("Offset() = %v; want scrolled down", b.Offset())
	}
}

func TestViewComposites(t *testing.T) {
	t.Parallel()
	b := small()
	bg := b.View().RGBAAt(5, 5)
	b.Append("HELLO", theme.Style{})
	if !b.Dirty() {
		t.Fatal("append should dirty the view")
	}
	v := b.View()
	if v.Bounds() != image.Rect(0, 0, 200, 100) {
		t.Fatalf("View bounds = %v", v.Bounds())
	}
	inked := false
	for y := 10; y < 24 && !inked; y++ {
		for x := 10; x < 50; x++ {
			if v.RGBAAt(x, y) != bg {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("no glyph pixels in the first line")
	}
	if b.Dirty() {
		t.Error("View should clear the dirty flag")
	}
}

func TestClear(t *testing.T) {
	t.Parallel()
	b := small()
	appendN(b, 0, 20)
	b.Clear()
	if b.Len() != 0 || len(b.Rows()) != 0 || b.Height() != DefaultMargin || b.Offset() != 0 {
		t.Errorf("Clear left state: len=%d rows=%d height=%d off=%v", b.Len(), len(b.Rows()), b.Height(), b.Offset())
	}
}

func TestIntersectAndRowAt(t *testing.T) {
	t.Parallel()
	b := small()
	ray := geom.Ray{Origin: geom.V(0, 0, 0), Dir: geom.V(0, 0, -1)}
	if _, ok := b.Intersect(ray); ok {
		t.Error("unplaced buffer should not be hit")
	}
	b.SetPanel(geom.Panel{Center: geom.V(0, 0, -1), Right: geom.V(1, 0, 0), Up: geom.V(0, 1, 0), Width: 1, Height: 1})
	if _, ok := b.Intersect(ray); !ok {
		t.Error("placed buffer should be hit")
	}

	appendN(b, 0, 2)
	row, ok := b.RowAt(geom.Point{X: 0.5, Y: 0.12})
	if !ok || row.Text != "entry 000" {
		t.Errorf("RowAt = %+v, %v; want entry 000", row, ok)
	}
	if _, ok := b.RowAt(geom.Point{X: 0.5, Y: 0.99}); ok {
		t.Error("RowAt below content should miss")
	}
}

func TestTinyRasterIsRaised(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
	}{
		{"max below one entry", Options{Width: 200, MaxHeight: 20}},
		{"font taller than max", Options{Width: 200, MaxHeight: 100, FontSize: 500}},
		{"row margin fills max", Options{Width: 200, MaxHeight: 30, RowMargin: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.opts.Palette = theme.DefaultPalette()
			b := New(tt.opts)
			o := b.opts
			if floor := o.Margin + o.RowMargin + o.FontSize; b.MaxHeight() < floor {
				t.Fatalf("MaxHeight() = %d; want at least %d", b.MaxHeight(), floor)
			}
			for i := range 5 {
				b.Append(fmt.Sprintf("line %d", i), theme.Style{})
				if b.Height() > b.MaxHeight() {
					t.Fatalf("append %d: Height() = %d > %d", i, b.Height(), b.MaxHeight())
				}
			}
			if rows := b.Rows(); len(rows) == 0 || rows[len(rows)-1].Text != "line 4" {
				t.Errorf("rows = %+v", rows)
			}
		})
	}
}

func TestEvictionKeepsPartlyDrawnRow(t *testing.T) {
	t.Parallel()
	// Entries start at 10, 40, 70...; ceil(0.1*200) = 20 cuts entry 000 mid-line.
	b := New(Options{Width: 200, ViewportHeight: 100, MaxHeight: 200, Palette: theme.DefaultPalette()})
	appendN(b, 0, 7)

	rows := b.Rows()
	if rows[0].Text != "entry 000" || rows[0].Y != -10 {
		t.Fatalf("first row = %+v; want entry 000 at -10", rows[0])
	}
	b.SetOffset(0)
	r, ok := b.RowAt(geom.Point{X: 0.5, Y: 0})
	if !ok || r.Text != "entry 000" {
		t.Errorf("RowAt(top) = %+v, %v; want entry 000", r, ok)
	}
	if vis := b.VisibleRows(); len(vis) == 0 || vis[0].Text != "entry 000" {
		t.Errorf("VisibleRows()[0] = %+v", vis)
	}

	// Two more 20px steps drop entries 000 and 001 in full.
	appendN(b, 7, 1)
	if r := b.Rows()[0]; r.Text != "entry 002" || r.Y != 10 {
		t.Errorf("first row after next eviction = %+v; want entry 002 at 10", r)
	}
}
