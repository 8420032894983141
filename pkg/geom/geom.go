// ABOUTME: Minimal 3D vector math for pointer rays and flat console panels
// ABOUTME: Panel.Intersect yields distance, local panel coordinates and texture UV

package geom

import "math"

// Vec3 is a point or direction in world space (metres).
type Vec3 struct{ X, Y, Z float64 }

func V(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }
func (a Vec3) Dist(b Vec3) float64 { return a.Sub(b).Len() }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Norm returns the unit vector in the direction of a; the zero vector stays zero.
func (a Vec3) Norm() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Angle returns the angle between a and b in radians.
func (a Vec3) Angle(b Vec3) float64 {
	d := a.Len() * b.Len()
	if d == 0 {
		return 0
	}
	c := a.Dot(b) / d
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// Ray is a half-line from Origin along Dir.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Dir.Scale(t)) }

// Point is a 2D coordinate on a panel, in panel units with the origin at the
// panel centre and Y pointing up.
type Point struct{ X, Y float64 }

// Hit describes a ray/panel intersection.
type Hit struct {
	Distance float64
	World    Vec3
	Local    Point
	// UV is in [0,1]² with (0,0) at the top-left corner, matching raster rows.
	UV Point
}

// Panel is a flat oriented rectangle. Right and Up must be orthogonal.
type Panel struct {
	Center        Vec3
	Right, Up     Vec3
	Width, Height float64
}

// Normal is the panel's front-facing normal.
func (p Panel) Normal() Vec3 { return p.Right.Cross(p.Up).Norm() }

const epsilon = 1e-9

// Intersect casts r against the panel. Both faces are hit-testable.
func (p Panel) Intersect(r Ray) (Hit, bool) {
	dir := r.Dir.Norm()
	n := p.Normal()
	denom := n.Dot(dir)
	if math.Abs(denom) < epsilon {
		return Hit{}, false
	}
	t := p.Center.Sub(r.Origin).Dot(n) / denom
	if t < 0 {
		return Hit{}, false
	}
	world := r.Origin.Add(dir.Scale(t))
	rel := world.Sub(p.Center)
	local := Point{X: rel.Dot(p.Right.Norm()), Y: rel.Dot(p.Up.Norm())}
	if math.Abs(local.X) > p.Width/2 || math.Abs(local.Y) > p.Height/2 {
		return Hit{}, false
	}
	return Hit{
		Distance: t,
		World:    world,
		Local:    local,
		UV: Point{
			X: local.X/p.Width + 0.5,
			Y: 0.5 - local.Y/p.Height,
		},
	}, true
}
