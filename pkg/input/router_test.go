// ABOUTME: Tests for the input router using fake panel surfaces
// ABOUTME: Covers ordering, press claim/select, drag scrolling, hover and pointer removal

package input

import (
	"testing"

	"github.com/mauromedda/vrconsole/pkg/geom"
)

type panel struct {
	geom.Panel
	hovers  []geom.Hit
	selects []geom.Hit
	leaves  int
}

func (p *panel) Intersect(r geom.Ray) (geom.Hit, bool) { return p.Panel.Intersect(r) }

type hoverSelect struct{ panel }

func (h *hoverSelect) Hover(hit geom.Hit)  { h.hovers = append(h.hovers, hit) }
func (h *hoverSelect) Select(hit geom.Hit) { h.selects = append(h.selects, hit) }
func (h *hoverSelect) Leave()              { h.leaves++ }

type scroller struct {
	panel
	grabbed bool
	deltas  []float64
}

func (s *scroller) Scroll(d float64)  { s.deltas = append(s.deltas, d) }
func (s *scroller) SetGrabbed(g bool) { s.grabbed = g }

func at(z float64) geom.Panel {
	return geom.Panel{
		Center: geom.V(0, 0, z),
		Right:  geom.V(1, 0, 0),
		Up:     geom.V(0, 1, 0),
		Width:  2,
		Height: 2,
	}
}

func forward(x, y float64) geom.Ray {
	return geom.Ray{Origin: geom.V(x, y, 0), Dir: geom.V(0, 0, -1)}
}

func TestResolveNearestFirst(t *testing.T) {
	t.Parallel()
	r := NewRouter()
	far := &hoverSelect{panel{Panel: at(-3)}}
	near := &hoverSelect{panel{Panel: at(-1)}}
	r.Register(far)
	r.Register(near)
	r.Register(near)

	if got := len(r.Surfaces()); got != 2 {
		t.Fatalf("Surfaces() = %d; duplicate registration should be ignored", got)
	}
	hits := r.Resolve(forward(0, 0))
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d; want 2", len(hits))
	}
	if hits[0].Surface != near || hits[1].Surface != far {
		t.Error("hits not ordered nearest first")
	}
	if len(r.Resolve(forward(5, 5))) != 0 {
		t.Error("expected no hits off-panel")
	}
}

func TestPressStartSelects(t *testing.T) {
	t.Parallel()
	r := NewRouter()
	kb := &hoverSelect{panel{Panel: at(-1)}}
	r.Register(kb)

	r.SetPointer(0, forward(0.5, 0.5))
	r.PressStart(0)
	if len(kb.selects) != 1 {
		t.Fatalf("selects = %d; want 1", len(kb.selects))
	}
	if got := kb.selects[0].UV; got.X != 0.75 || got.Y != 0.25 {
		t.Errorf("select UV = %+v", got)
	}

	r.SetPointer(0, forward(9, 9))
	r.PressStart(0)
	if len(kb.selects) != 1 {
		t.Error("miss should not select")
	}
}

func TestPressStartPrefersNearestCapability(t *testing.T) {
	t.Parallel()
	r := NewRouter()
	sc := &scroller{panel: panel{Panel: at(-2)}}
	kb := &hoverSelect{panel{Panel: at(-1)}}
	r.Register(sc)
	r.Register(kb)

	r.SetPointer(0, forward(0, 0))
	r.PressStart(0)
	if len(kb.selects) != 1 || sc.grabbed {
		t.Errorf("nearest selectable should win: selects=%d grabbed=%v", len(kb.selects), sc.grabbed)
	}
}

func TestDragScroll(t *testing.T) {
	t.Parallel()
	r := NewRouter()
	sc := &scroller{panel: panel{Panel: at(-1)}}
	r.Register(sc)

	r.SetPointer(1, forward(0, 0))
	r.PressStart(1)
	if !sc.grabbed || r.Claimed(1) != sc {
		t.Fatal("scrollable not claimed on press")
	}

	r.SetPointer(1, forward(0, 0.25))
	r.Tick()
	r.Tick() // no movement, no delta
	r.SetPointer(1, forward(0, 0.125))
	r.Tick()

	want := []float64{0.25, -0.125}
	if len(sc.deltas) != len(want) {
		t.Fatalf("deltas = %v; want %v", sc.deltas, want)
	}
	for i := range want {
		if sc.deltas[i] != want[i] {
			t.Errorf("delta[%d] = %v; want %v", i, sc.deltas[i], want[i])
		}
	}

	r.PressEnd(1)
	if sc.grabbed || r.Claimed(1) != nil {
		t.Error("claim not released on press end")
	}
	r.SetPointer(1, forward(0, 0.5))
	r.Tick()
	if len(sc.deltas) != 2 {
		t.Error("released surface should not scroll")
	}
}

func TestClaimIsPerPointer(t *testing.T) {
	t.Parallel()
	r := NewRouter()
	sc := &scroller{panel: panel{Panel: at(-1)}}
	kb := &hoverSelect{panel{Panel: at(-2)}}
	r.Register(sc)
	r.Register(kb)

	r.SetPointer(0, forward(0, 0))
	r.SetPointer(1, forward(0, 0))
	r.PressStart(0)
	r.PressStart(1)
	if r.Claimed(0) != sc || r.Claimed(1) != nil {
		t.Fatalf("claims = %v, %v", r.Claimed(0), r.Claimed(1))
	}
	if len(kb.selects) != 1 {
		t.Error("second pointer should fall through to the selectable behind")
	}

	r.PressEnd(1)
	if !sc.grabbed {
		t.Error("other pointer's release must not drop the claim")
	}
}

func TestHoverAndLeave(t *testing.T) {
	t.Parallel()
	r := NewRouter()
	kb := &hoverSelect{panel{Panel: at(-1)}}
	r.Register(kb)

	r.SetPointer(0, forward(0, 0))
	r.Tick()
	r.Tick()
	if len(kb.hovers) != 2 {
		t.Errorf("hovers = %d; want 2", len(kb.hovers))
	}

	r.SetPointer(0, forward(5, 0))
	r.Tick()
	if kb.leaves != 1 {
		t.Errorf("leaves = %d; want 1", kb.leaves)
	}

	r.SetPointer(0, forward(0, 0))
	r.Tick()
	r.RemovePointer(0)
	if kb.leaves != 2 {
		t.Errorf("leaves after removal = %d; want 2", kb.leaves)
	}
}

func TestUnregisterReleases(t *testing.T) {
	t.Parallel()
	r := NewRouter()
	sc := &scroller{panel: panel{Panel: at(-1)}}
	r.Register(sc)
	r.SetPointer(0, forward(0, 0))
	r.PressStart(0)
	r.Unregister(sc)
	if sc.grabbed || r.Claimed(0) != nil {
		t.Error("unregister should release claims")
	}
	if len(r.Resolve(forward(0, 0))) != 0 {
		t.Error("unregistered surface still resolves")
	}
}
