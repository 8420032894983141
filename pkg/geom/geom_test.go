// ABOUTME: Tests for vector math and ray/panel intersection
// ABOUTME: Covers front/back hits, misses, parallel rays, and UV orientation

package geom

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func facingPanel() Panel {
	return Panel{
		Center: V(0, 0, -2),
		Right:  V(1, 0, 0),
		Up:     V(0, 1, 0),
		Width:  1,
		Height: 1,
	}
}

func TestIntersect(t *testing.T) {
	t.Parallel()
	p := facingPanel()

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		dist  float64
		uv    Point
		local Point
	}{
		{"centre", Ray{V(0, 0, 0), V(0, 0, -1)}, true, 2, Point{0.5, 0.5}, Point{0, 0}},
		{"top left", Ray{V(-0.5, 0.5, 0), V(0, 0, -1)}, true, 2, Point{0, 0}, Point{-0.5, 0.5}},
		{"bottom right", Ray{V(0.25, -0.25, 0), V(0, 0, -4)}, true, 2, Point{0.75, 0.75}, Point{0.25, -0.25}},
		{"from behind", Ray{V(0, 0, -3), V(0, 0, 1)}, true, 1, Point{0.5, 0.5}, Point{0, 0}},
		{"outside", Ray{V(2, 0, 0), V(0, 0, -1)}, false, 0, Point{}, Point{}},
		{"pointing away", Ray{V(0, 0, 0), V(0, 0, 1)}, false, 0, Point{}, Point{}},
		{"parallel", Ray{V(0, 0, 0), V(1, 0, 0)}, false, 0, Point{}, Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, ok := p.Intersect(tt.ray)
			if ok != tt.hit {
				t.Fatalf("hit = %v; want %v", ok, tt.hit)
			}
			if !ok {
				return
			}
			if !approx(h.Distance, tt.dist) {
				t.Errorf("Distance = %v; want %v", h.Distance, tt.dist)
			}
			if !approx(h.UV.X, tt.uv.X) || !approx(h.UV.Y, tt.uv.Y) {
				t.Errorf("UV = %+v; want %+v", h.UV, tt.uv)
			}
			if !approx(h.Local.X, tt.local.X) || !approx(h.Local.Y, tt.local.Y) {
				t.Errorf("Local = %+v; want %+v", h.Local, tt.local)
			}
		})
	}
}

func TestVectorOps(t *testing.T) {
	t.Parallel()
	a, b := V(1, 0, 0), V(0, 1, 0)
	if c := a.Cross(b); c != V(0, 0, 1) {
		t.Errorf("Cross = %+v", c)
	}
	if !approx(a.Angle(b), math.Pi/2) {
		t.Errorf("Angle = %v", a.Angle(b))
	}
	if !approx(a.Angle(a.Scale(-1)), math.Pi) {
		t.Error("opposite vectors should be π apart")
	}
	if !approx(V(3, 4, 0).Len(), 5) {
		t.Error("Len mismatch")
	}
	if V(0, 0, 0).Norm() != V(0, 0, 0) {
		t.Error("zero Norm should stay zero")
	}
	if !approx(V(0, 0, 0).Dist(V(0, 3, 4)), 5) {
		t.Error("Dist mismatch")
	}
}
