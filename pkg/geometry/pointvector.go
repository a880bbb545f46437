package geometry

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point3D is a position in 3D space.
type Point3D = v3.Vec

// Vector3D is a direction and magnitude in 3D space.
type Vector3D = v3.Vec

// Point2D is a position in 2D space.
type Point2D = v2.Vec

// Vector2D is a direction and magnitude in 2D space.
type Vector2D = v2.Vec

// XAxis returns the world X axis.
func XAxis() Vector3D { return Vector3D{X: 1} }

// YAxis returns the world Y axis.
func YAxis() Vector3D { return Vector3D{Y: 1} }

// ZAxis returns the world Z axis.
func ZAxis() Vector3D { return Vector3D{Z: 1} }

// North returns the default north direction, the positive Y axis.
func North() Vector2D { return Vector2D{X: 0, Y: 1} }

// Cross2D returns the scalar cross product of two 2D vectors.
func Cross2D(a, b Vector2D) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Dot2D returns the dot product of two 2D vectors.
func Dot2D(a, b Vector2D) float64 {
	return a.X*b.X + a.Y*b.Y
}

// AngleClockwise returns the clockwise angle in radians from vector a to
// vector b, in the range [0, 2*pi).
func AngleClockwise(a, b Vector2D) float64 {
	ang := -math.Atan2(Cross2D(a, b), Dot2D(a, b))
	if ang < 0 {
		ang += 2 * math.Pi
	}
	return ang
}

// AngleBetween returns the angle in radians between two 3D vectors.
func AngleBetween(a, b Vector3D) float64 {
	la, lb := a.Length(), b.Length()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := a.Dot(b) / (la * lb)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// RotatePoint rotates point p around an arbitrary axis anchored at origin by
// the given angle in radians, using the Rodrigues rotation formula.
func RotatePoint(p Point3D, axis Vector3D, angle float64, origin Point3D) Point3D {
	k := axis.Normalize()
	v := p.Sub(origin)
	cos, sin := math.Cos(angle), math.Sin(angle)
	rot := v.MulScalar(cos).
		Add(k.Cross(v).MulScalar(sin)).
		Add(k.MulScalar(k.Dot(v) * (1 - cos)))
	return origin.Add(rot)
}

// ReflectPoint reflects point p across the plane defined by a unit normal n
// and an origin point o.
func ReflectPoint(p Point3D, n Vector3D, o Point3D) Point3D {
	d := p.Sub(o).Dot(n)
	return p.Sub(n.MulScalar(2 * d))
}

// ScalePoint scales point p by factor from an origin point.
func ScalePoint(p Point3D, factor float64, origin Point3D) Point3D {
	return origin.Add(p.Sub(origin).MulScalar(factor))
}

// HorizontalOrientation returns the compass angle in degrees (0 = north,
// 90 = east) of a normal vector projected into the horizontal plane, measured
// clockwise from the given north vector. The second return value is false
// when the normal has no horizontal component (a perfectly horizontal face).
func HorizontalOrientation(normal Vector3D, north Vector2D) (float64, bool) {
	horiz := Vector2D{X: normal.X, Y: normal.Y}
	if horiz.X == 0 && horiz.Y == 0 {
		return 0, false
	}
	return AngleClockwise(north, horiz) * 180 / math.Pi, true
}
