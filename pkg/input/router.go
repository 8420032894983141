// ABOUTME: Ray-based input router dispatching hover, select and drag-scroll to surfaces
// ABOUTME: Surfaces opt into capabilities by implementing Hoverable, Selectable or Scrollable

package input

import (
	"slices"
	"sort"

	"github.com/mauromedda/vrconsole/pkg/geom"
)

// Surface is anything a pointer ray can hit.
type Surface interface {
	Intersect(r geom.Ray) (geom.Hit, bool)
}

// Hoverable surfaces are told every tick where the frontmost pointer hit lands.
type Hoverable interface {
	Hover(h geom.Hit)
}

// Leaver is notified when a pointer stops hovering a surface.
type Leaver interface {
	Leave()
}

// Selectable surfaces react to a press.
type Selectable interface {
	Select(h geom.Hit)
}

// Scrollable surfaces can be grabbed and dragged.
type Scrollable interface {
	Scroll(delta float64)
	SetGrabbed(grabbed bool)
}

// Hit pairs a geometric intersection with the surface it belongs to.
type Hit struct {
	geom.Hit
	Surface Surface
}

type pointer struct {
	id      int
	ray     geom.Ray
	claim   Surface
	last    geom.Point
	hovered Surface
}

// Router owns the registered surfaces and per-pointer claims.
// It is driven from the host's frame loop and is not safe for concurrent use.
type Router struct {
	surfaces []Surface
	pointers []*pointer
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{}
}

// Register adds a surface. Registering the same surface twice is a no-op.
func (r *Router) Register(s Surface) {
	if slices.Contains(r.surfaces, s) {
		return
	}
	r.surfaces = append(r.surfaces, s)
}

// Unregister removes a surface and releases any claim or hover on it.
func (r *Router) Unregister(s Surface) {
	i := slices.Index(r.surfaces, s)
	if i < 0 {
		return
	}
	r.surfaces = slices.Delete(r.surfaces, i, i+1)
	for _, p := range r.pointers {
		if p.claim == s {
			r.release(p)
		}
		if p.hovered == s {
			p.hovered = nil
		}
	}
}

// Surfaces returns the registered surfaces in registration order.
func (r *Router) Surfaces() []Surface {
	return slices.Clone(r.surfaces)
}

// Resolve casts ray against every surface and returns hits nearest first.
// Equal distances keep registration order.
func (r *Router) Resolve(ray geom.Ray) []Hit {
	var hits []Hit
	for _, s := range r.surfaces {
		if h, ok := s.Intersect(ray); ok {
			hits = append(hits, Hit{Hit: h, Surface: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func (r *Router) pointer(id int) *pointer {
	for _, p := range r.pointers {
		if p.id == id {
			return p
		}
	}
	p := &pointer{id: id}
	r.pointers = append(r.pointers, p)
	return p
}

// SetPointer updates the ray of pointer id, creating it on first use.
func (r *Router) SetPointer(id int, ray geom.Ray) {
	r.pointer(id).ray = ray
}

// RemovePointer forgets pointer id, releasing its claim and hover.
func (r *Router) RemovePointer(id int) {
	for i, p := range r.pointers {
		if p.id != id {
			continue
		}
		r.release(p)
		r.leave(p)
		r.pointers = slices.Delete(r.pointers, i, i+1)
		return
	}
}

// Claimed returns the surface pointer id is dragging, if any.
func (r *Router) Claimed(id int) Surface {
	for _, p := range r.pointers {
		if p.id == id {
			return p.claim
		}
	}
	return nil
}

func (r *Router) claimedByOther(s Surface, self *pointer) bool {
	for _, p := range r.pointers {
		if p != self && p.claim == s {
			return true
		}
	}
	return false
}

// PressStart handles a press on pointer id. Walking hits nearest first, the
// first unclaimed scrollable surface is grabbed, otherwise the first
// selectable surface is selected.
func (r *Router) PressStart(id int) {
	p := r.pointer(id)
	r.release(p)
	for _, h := range r.Resolve(p.ray) {
		if sc, ok := h.Surface.(Scrollable); ok && !r.claimedByOther(h.Surface, p) {
			p.claim = h.Surface
			p.last = h.Local
			sc.SetGrabbed(true)
			return
		}
		if sel, ok := h.Surface.(Selectable); ok {
			sel.Select(h.Hit)
			return
		}
	}
}

// PressEnd releases pointer id's claim.
func (r *Router) PressEnd(id int) {
	for _, p := range r.pointers {
		if p.id == id {
			r.release(p)
			return
		}
	}
}

func (r *Router) release(p *pointer) {
	if p.claim == nil {
		return
	}
	if sc, ok := p.claim.(Scrollable); ok && !r.claimedByOther(p.claim, p) {
		sc.SetGrabbed(false)
	}
	p.claim = nil
}

func (r *Router) leave(p *pointer) {
	if p.hovered == nil {
		return
	}
	if l, ok := p.hovered.(Leaver); ok {
		l.Leave()
	}
	p.hovered = nil
}

// Tick re-resolves every pointer: a claimed surface receives the vertical
// drag since the previous tick, and the frontmost hit is hovered.
func (r *Router) Tick() {
	for _, p := range r.pointers {
		hits := r.Resolve(p.ray)
		if p.claim != nil {
			for _, h := range hits {
				if h.Surface != p.claim {
					continue
				}
				dy := h.Local.Y - p.last.Y
				p.last = h.Local
				if dy != 0 {
					p.claim.(Scrollable).Scroll(dy)
				}
				break
			}
		}

		var front Surface
		if len(hits) > 0 {
			front = hits[0].Surface
		}
		if p.hovered != nil && p.hovered != front {
			r.leave(p)
		}
		if front == nil {
			continue
		}
		if hv, ok := front.(Hoverable); ok {
			hv.Hover(hits[0].Hit)
			p.hovered = front
		}
	}
}
