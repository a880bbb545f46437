package geometry

import "math"

// Plane is an infinite plane defined by a unit normal and an origin point,
// with in-plane X and Y axes for mapping between world and plane coordinates.
type Plane struct {
	n Vector3D // unit normal
	o Point3D
	x Vector3D // in-plane unit X axis
	y Vector3D // in-plane unit Y axis
}

// NewPlane creates a plane from a normal vector and an origin point.
// The in-plane X axis is derived from the world X axis unless the normal is
// nearly parallel to it.
func NewPlane(normal Vector3D, origin Point3D) Plane {
	n := normal.Normalize()
	ref := XAxis()
	if math.Abs(n.Dot(ref)) > 0.99 {
		ref = YAxis()
	}
	x := ref.Sub(n.MulScalar(ref.Dot(n))).Normalize()
	return Plane{n: n, o: origin, x: x, y: n.Cross(x)}
}

// Normal returns the unit normal of the plane.
func (pl Plane) Normal() Vector3D { return pl.n }

// Origin returns the origin point of the plane.
func (pl Plane) Origin() Point3D { return pl.o }

// DistanceToPoint returns the signed perpendicular distance from a point to
// the plane. Positive values lie on the normal side.
func (pl Plane) DistanceToPoint(p Point3D) float64 {
	return p.Sub(pl.o).Dot(pl.n)
}

// XYZToXY projects a world point into plane coordinates.
func (pl Plane) XYZToXY(p Point3D) Point2D {
	v := p.Sub(pl.o)
	return Point2D{X: v.Dot(pl.x), Y: v.Dot(pl.y)}
}

// XYToXYZ maps a point in plane coordinates back to world space.
func (pl Plane) XYToXYZ(p Point2D) Point3D {
	return pl.o.Add(pl.x.MulScalar(p.X)).Add(pl.y.MulScalar(p.Y))
}

// IsCoplanar reports whether another plane matches this one within a distance
// tolerance and an angle tolerance in radians, ignoring normal direction.
func (pl Plane) IsCoplanar(other Plane, tolerance, angleTolerance float64) bool {
	ang := AngleBetween(pl.n, other.n)
	if ang > angleTolerance && math.Pi-ang > angleTolerance {
		return false
	}
	if math.Abs(pl.DistanceToPoint(other.o)) > tolerance {
		return false
	}
	return math.Abs(other.DistanceToPoint(pl.o)) <= tolerance
}
