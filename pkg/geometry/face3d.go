package geometry

import (
	"errors"
	"math"
)

// ErrTooFewVertices is returned when a face boundary has fewer than 3 vertices.
var ErrTooFewVertices = errors.New("geometry: face boundary must have at least 3 vertices")

// Face3D is a planar polygon in 3D space with an optional set of holes.
// Face3D values are immutable; transform methods return new faces.
type Face3D struct {
	boundary []Point3D
	holes    [][]Point3D
	plane    Plane
}

// NewFace3D creates a planar face from a boundary loop and optional hole
// loops. The face plane is derived from the boundary via the Newell method.
// Degenerate (near-zero-area) boundaries are constructible so that they can
// be flagged by validation later.
func NewFace3D(boundary []Point3D, holes ...[]Point3D) (*Face3D, error) {
	if len(boundary) < 3 {
		return nil, ErrTooFewVertices
	}
	for _, h := range holes {
		if len(h) < 3 {
			return nil, ErrTooFewVertices
		}
	}
	b := make([]Point3D, len(boundary))
	copy(b, boundary)
	hs := make([][]Point3D, len(holes))
	for i, h := range holes {
		hs[i] = make([]Point3D, len(h))
		copy(hs[i], h)
	}
	n := newellNormal(b)
	if n.Length() == 0 {
		n = ZAxis() // sliver face with no usable normal
	}
	return &Face3D{boundary: b, holes: hs, plane: NewPlane(n, b[0])}, nil
}

// newellNormal computes the (unnormalized) polygon normal via the Newell
// method. Its length is twice the polygon area for a planar loop.
func newellNormal(pts []Point3D) Vector3D {
	var n Vector3D
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

// Boundary returns the outer boundary vertices in order.
func (f *Face3D) Boundary() []Point3D { return f.boundary }

// Holes returns the hole loops, if any.
func (f *Face3D) Holes() [][]Point3D { return f.holes }

// HasHoles reports whether the face carries any hole loops.
func (f *Face3D) HasHoles() bool { return len(f.holes) > 0 }

// Plane returns the plane of the face.
func (f *Face3D) Plane() Plane { return f.plane }

// Normal returns the unit normal of the face plane.
func (f *Face3D) Normal() Vector3D { return f.plane.Normal() }

// Area returns the area of the face with hole areas subtracted.
func (f *Face3D) Area() float64 {
	area := loopArea(f.boundary)
	for _, h := range f.holes {
		area -= loopArea(h)
	}
	return area
}

func loopArea(pts []Point3D) float64 {
	return newellNormal(pts).Length() / 2
}

// Perimeter returns the total edge length of the face, including holes.
func (f *Face3D) Perimeter() float64 {
	p := loopPerimeter(f.boundary)
	for _, h := range f.holes {
		p += loopPerimeter(h)
	}
	return p
}

func loopPerimeter(pts []Point3D) float64 {
	var p float64
	for i := range pts {
		p += pts[(i+1)%len(pts)].Sub(pts[i]).Length()
	}
	return p
}

// MaxEdgeLength returns the length of the longest boundary edge.
func (f *Face3D) MaxEdgeLength() float64 {
	var m float64
	for i := range f.boundary {
		if l := f.boundary[(i+1)%len(f.boundary)].Sub(f.boundary[i]).Length(); l > m {
			m = l
		}
	}
	return m
}

// Min returns the minimum corner of the face bounding box.
func (f *Face3D) Min() Point3D {
	m := f.boundary[0]
	for _, p := range f.boundary[1:] {
		m = m.Min(p)
	}
	return m
}

// Max returns the maximum corner of the face bounding box.
func (f *Face3D) Max() Point3D {
	m := f.boundary[0]
	for _, p := range f.boundary[1:] {
		m = m.Max(p)
	}
	return m
}

// Center returns the center of the face bounding box. This is not the area
// centroid; see Centroid.
func (f *Face3D) Center() Point3D {
	return f.Min().Add(f.Max()).MulScalar(0.5)
}

// Centroid returns the area centroid of the face boundary.
func (f *Face3D) Centroid() Point3D {
	pts2 := f.project(f.boundary)
	a := signedArea2D(pts2)
	if math.Abs(a) < 1e-12 {
		return f.Center()
	}
	var cx, cy float64
	for i := range pts2 {
		p, q := pts2[i], pts2[(i+1)%len(pts2)]
		cross := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	return f.plane.XYToXYZ(Point2D{X: cx / (6 * a), Y: cy / (6 * a)})
}

// project maps a loop of world points into the face plane's 2D coordinates.
func (f *Face3D) project(pts []Point3D) []Point2D {
	out := make([]Point2D, len(pts))
	for i, p := range pts {
		out[i] = f.plane.XYZToXY(p)
	}
	return out
}

// IsPlanar reports whether every vertex lies within tolerance of the face
// plane.
func (f *Face3D) IsPlanar(tolerance float64) bool {
	return f.MaxPlanarityDeviation() <= tolerance
}

// MaxPlanarityDeviation returns the largest perpendicular distance of any
// vertex from the face plane.
func (f *Face3D) MaxPlanarityDeviation() float64 {
	var m float64
	check := func(pts []Point3D) {
		for _, p := range pts {
			if d := math.Abs(f.plane.DistanceToPoint(p)); d > m {
				m = d
			}
		}
	}
	check(f.boundary)
	for _, h := range f.holes {
		check(h)
	}
	return m
}

// IsSelfIntersecting reports whether any two non-adjacent edges of the face
// boundary (or of any hole loop) cross one another, like a bowtie.
func (f *Face3D) IsSelfIntersecting(tolerance float64) bool {
	if loopSelfIntersects(f.project(f.boundary), tolerance) {
		return true
	}
	for _, h := range f.holes {
		if loopSelfIntersects(f.project(h), tolerance) {
			return true
		}
	}
	return false
}

func loopSelfIntersects(pts []Point2D, tolerance float64) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		a1, a2 := pts[i], pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// skip edges sharing a vertex with edge i
			if j == i || (j+1)%n == i || j == (i+1)%n {
				continue
			}
			b1, b2 := pts[j], pts[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2, tolerance) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports whether two 2D segments properly intersect, with
// endpoint touches within tolerance not counted as crossings.
func segmentsCross(a1, a2, b1, b2 Point2D, tolerance float64) bool {
	d1 := orient2D(b1, b2, a1)
	d2 := orient2D(b1, b2, a2)
	d3 := orient2D(a1, a2, b1)
	d4 := orient2D(a1, a2, b2)
	eps := tolerance
	if eps <= 0 {
		eps = 1e-9
	}
	return ((d1 > eps && d2 < -eps) || (d1 < -eps && d2 > eps)) &&
		((d3 > eps && d4 < -eps) || (d3 < -eps && d4 > eps))
}

func orient2D(a, b, c Point2D) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Flip returns a face with the same geometry but the opposite normal.
func (f *Face3D) Flip() *Face3D {
	rev := make([]Point3D, len(f.boundary))
	for i, p := range f.boundary {
		rev[len(f.boundary)-1-i] = p
	}
	holes := make([][]Point3D, len(f.holes))
	for i, h := range f.holes {
		hr := make([]Point3D, len(h))
		for j, p := range h {
			hr[len(h)-1-j] = p
		}
		holes[i] = hr
	}
	nf, _ := NewFace3D(rev, holes...)
	return nf
}

// transformLoops applies fn to every vertex and returns the new face.
func (f *Face3D) transformLoops(fn func(Point3D) Point3D) *Face3D {
	b := make([]Point3D, len(f.boundary))
	for i, p := range f.boundary {
		b[i] = fn(p)
	}
	holes := make([][]Point3D, len(f.holes))
	for i, h := range f.holes {
		holes[i] = make([]Point3D, len(h))
		for j, p := range h {
			holes[i][j] = fn(p)
		}
	}
	nf, _ := NewFace3D(b, holes...)
	return nf
}

// Move returns the face translated along a vector.
func (f *Face3D) Move(v Vector3D) *Face3D {
	return f.transformLoops(func(p Point3D) Point3D { return p.Add(v) })
}

// Rotate returns the face rotated by an angle in radians around an arbitrary
// axis anchored at origin.
func (f *Face3D) Rotate(axis Vector3D, angle float64, origin Point3D) *Face3D {
	return f.transformLoops(func(p Point3D) Point3D {
		return RotatePoint(p, axis, angle, origin)
	})
}

// RotateXY returns the face rotated counterclockwise in the world XY plane.
// The angle is in radians.
func (f *Face3D) RotateXY(angle float64, origin Point3D) *Face3D {
	return f.Rotate(ZAxis(), angle, origin)
}

// Reflect returns the face reflected across a plane.
func (f *Face3D) Reflect(plane Plane) *Face3D {
	n, o := plane.Normal(), plane.Origin()
	return f.transformLoops(func(p Point3D) Point3D { return ReflectPoint(p, n, o) })
}

// Scale returns the face uniformly scaled by factor from an origin point.
func (f *Face3D) Scale(factor float64, origin Point3D) *Face3D {
	return f.transformLoops(func(p Point3D) Point3D {
		return ScalePoint(p, factor, origin)
	})
}

// IsCenteredAdjacent reports whether the bounding-box centers of two faces
// are within tolerance of one another. This is a cheap sufficient test for
// face adjacency between well-formed rooms.
func (f *Face3D) IsCenteredAdjacent(other *Face3D, tolerance float64) bool {
	return f.Center().Sub(other.Center()).Length() <= tolerance
}

// IsCoplanarWith reports whether every vertex of the other face lies within
// tolerance of this face's plane, regardless of normal direction.
func (f *Face3D) IsCoplanarWith(other *Face3D, tolerance float64) bool {
	for _, p := range other.boundary {
		if math.Abs(f.plane.DistanceToPoint(p)) > tolerance {
			return false
		}
	}
	return true
}

// OverlapArea returns the area of the projected overlap between this face
// and another face, computed in this face's plane. The other face should be
// coplanar with this one for the result to be meaningful.
func (f *Face3D) OverlapArea(other *Face3D) float64 {
	subject := ccw(f.project(other.boundary))
	clip := ccw(f.project(f.boundary))
	inter := clipPolygon(subject, clip)
	if len(inter) < 3 {
		return 0
	}
	return math.Abs(signedArea2D(inter))
}

// IsCoincident reports whether two faces occupy the same plane within
// tolerance with a projected overlap area above the minimal threshold of
// tolerance squared. This is the exact test used for adjacency solving.
func (f *Face3D) IsCoincident(other *Face3D, tolerance float64) bool {
	if !f.IsCoplanarWith(other, tolerance) {
		return false
	}
	if f.IsCenteredAdjacent(other, tolerance) {
		return true
	}
	return f.OverlapArea(other) > tolerance*tolerance
}

// IsSubFace reports whether another face is coplanar with this one within
// the distance and angle (radians) tolerances and lies entirely within this
// face's boundary.
func (f *Face3D) IsSubFace(other *Face3D, tolerance, angleTolerance float64) bool {
	if !f.plane.IsCoplanar(other.plane, tolerance, angleTolerance) {
		return false
	}
	poly := f.project(f.boundary)
	for _, p := range other.boundary {
		if !pointInPolygon(f.plane.XYZToXY(p), poly, tolerance) {
			return false
		}
	}
	return true
}

// pointInPolygon reports whether a 2D point lies inside a polygon, with
// points within tolerance of an edge counted as inside.
func pointInPolygon(pt Point2D, poly []Point2D, tolerance float64) bool {
	n := len(poly)
	inside := false
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		if distToSegment(pt, a, b) <= tolerance {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if x > pt.X {
				inside = !inside
			}
		}
	}
	return inside
}

func distToSegment(p, a, b Point2D) float64 {
	ab := Point2D{X: b.X - a.X, Y: b.Y - a.Y}
	ap := Point2D{X: p.X - a.X, Y: p.Y - a.Y}
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return math.Hypot(ap.X, ap.Y)
	}
	t := (ap.X*ab.X + ap.Y*ab.Y) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	dx := a.X + t*ab.X - p.X
	dy := a.Y + t*ab.Y - p.Y
	return math.Hypot(dx, dy)
}

func signedArea2D(pts []Point2D) float64 {
	var a float64
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// ccw returns the loop in counterclockwise order.
func ccw(pts []Point2D) []Point2D {
	if signedArea2D(pts) >= 0 {
		return pts
	}
	rev := make([]Point2D, len(pts))
	for i, p := range pts {
		rev[len(pts)-1-i] = p
	}
	return rev
}

// clipPolygon clips a subject polygon against a convex clip polygon using
// the Sutherland-Hodgman algorithm. Both loops must be counterclockwise.
func clipPolygon(subject, clip []Point2D) []Point2D {
	out := subject
	n := len(clip)
	for i := 0; i < n && len(out) > 0; i++ {
		a, b := clip[i], clip[(i+1)%n]
		in := out
		out = nil
		for j := range in {
			cur, next := in[j], in[(j+1)%len(in)]
			curIn := orient2D(a, b, cur) >= 0
			nextIn := orient2D(a, b, next) >= 0
			if curIn {
				out = append(out, cur)
			}
			if curIn != nextIn {
				if p, ok := lineIntersect(a, b, cur, next); ok {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// lineIntersect returns the intersection of line a1-a2 with segment b1-b2.
func lineIntersect(a1, a2, b1, b2 Point2D) (Point2D, bool) {
	r := Point2D{X: a2.X - a1.X, Y: a2.Y - a1.Y}
	s := Point2D{X: b2.X - b1.X, Y: b2.Y - b1.Y}
	denom := s.X*r.Y - s.Y*r.X
	if denom == 0 {
		return Point2D{}, false
	}
	t := ((a1.X-b1.X)*r.Y - (a1.Y-b1.Y)*r.X) / denom
	return Point2D{X: b1.X + t*s.X, Y: b1.Y + t*s.Y}, true
}
