package geometry

import (
	"math"
	"sort"
)

// EdgeSegment is a portion of a polyface edge line together with the indexes
// of the faces whose boundaries run along it.
type EdgeSegment struct {
	A, B        Point3D
	FaceIndexes []int
}

// Length returns the length of the segment.
func (e EdgeSegment) Length() float64 {
	return e.B.Sub(e.A).Length()
}

// Polyface3D is a polyhedron assembled from planar faces. On construction the
// face boundaries are swept along shared edge lines to classify every edge
// segment as matched (two faces), naked (one face) or non-manifold (three or
// more faces). A polyface with no naked and no non-manifold segments is a
// closed solid.
type Polyface3D struct {
	faces       []*Face3D
	tolerance   float64
	naked       []EdgeSegment
	nonManifold []EdgeSegment
}

// NewPolyfaceFromFaces assembles a polyface from faces and classifies its
// edges. tolerance is the distance within which vertices and edge lines are
// considered coincident; angleTolerance (radians) is the maximum deviation
// between edge directions for them to be considered colinear, which lets
// edges split by T-junctions still close against the longer edge they abut.
func NewPolyfaceFromFaces(faces []*Face3D, tolerance, angleTolerance float64) *Polyface3D {
	p := &Polyface3D{faces: faces, tolerance: tolerance}
	p.classifyEdges(angleTolerance)
	return p
}

// Faces returns the faces of the polyface.
func (p *Polyface3D) Faces() []*Face3D { return p.faces }

// IsSolid reports whether the faces form a closed, manifold volume within
// the construction tolerances.
func (p *Polyface3D) IsSolid() bool {
	return len(p.naked) == 0 && len(p.nonManifold) == 0
}

// NakedEdges returns the edge segments bounded by exactly one face.
func (p *Polyface3D) NakedEdges() []EdgeSegment { return p.naked }

// NonManifoldEdges returns the edge segments shared by three or more faces.
func (p *Polyface3D) NonManifoldEdges() []EdgeSegment { return p.nonManifold }

// Area returns the combined area of all faces.
func (p *Polyface3D) Area() float64 {
	var a float64
	for _, f := range p.faces {
		a += f.Area()
	}
	return a
}

// Volume returns the enclosed volume. The value is only accurate when the
// faces form a closed solid with outward-facing normals.
func (p *Polyface3D) Volume() float64 {
	var v float64
	for _, f := range p.faces {
		b := f.Boundary()
		for i := 1; i < len(b)-1; i++ {
			v += b[0].Dot(b[i].Cross(b[i+1]))
		}
	}
	return math.Abs(v) / 6
}

// Min returns the minimum corner of the polyface bounding box.
func (p *Polyface3D) Min() Point3D {
	m := p.faces[0].Min()
	for _, f := range p.faces[1:] {
		m = m.Min(f.Min())
	}
	return m
}

// Max returns the maximum corner of the polyface bounding box.
func (p *Polyface3D) Max() Point3D {
	m := p.faces[0].Max()
	for _, f := range p.faces[1:] {
		m = m.Max(f.Max())
	}
	return m
}

// Center returns the center of the polyface bounding box.
func (p *Polyface3D) Center() Point3D {
	return p.Min().Add(p.Max()).MulScalar(0.5)
}

// ---------------------------------------------------------------------------
// Edge classification
// ---------------------------------------------------------------------------

// faceEdge is one directed boundary edge of one face.
type faceEdge struct {
	a, b Point3D
	face int
}

// edgeLine groups colinear edges: a reference point, a unit direction and
// the parameterized intervals of the member edges.
type edgeLine struct {
	origin Point3D
	dir    Vector3D
	edges  []lineInterval
}

type lineInterval struct {
	t1, t2 float64 // t1 < t2
	face   int
}

// classifyEdges sweeps all face boundary edges grouped by colinear line and
// records the naked and non-manifold segments.
func (p *Polyface3D) classifyEdges(angleTolerance float64) {
	var all []faceEdge
	for fi, f := range p.faces {
		loops := append([][]Point3D{f.Boundary()}, f.Holes()...)
		for _, loop := range loops {
			for i := range loop {
				a, b := loop[i], loop[(i+1)%len(loop)]
				if b.Sub(a).Length() <= p.tolerance {
					continue // degenerate edge
				}
				all = append(all, faceEdge{a: a, b: b, face: fi})
			}
		}
	}

	// group edges into colinear lines
	var lines []*edgeLine
	for _, e := range all {
		dir := e.b.Sub(e.a).Normalize()
		var host *edgeLine
		for _, ln := range lines {
			if ln.contains(e.a, dir, p.tolerance, angleTolerance) {
				host = ln
				break
			}
		}
		if host == nil {
			host = &edgeLine{origin: e.a, dir: dir}
			lines = append(lines, host)
		}
		t1 := e.a.Sub(host.origin).Dot(host.dir)
		t2 := e.b.Sub(host.origin).Dot(host.dir)
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		host.edges = append(host.edges, lineInterval{t1: t1, t2: t2, face: e.face})
	}

	for _, ln := range lines {
		p.sweepLine(ln)
	}
}

// contains reports whether an edge starting at point a with unit direction d
// lies on this line within the tolerances.
func (ln *edgeLine) contains(a Point3D, d Vector3D, tolerance, angleTolerance float64) bool {
	ang := AngleBetween(ln.dir, d)
	if ang > angleTolerance && math.Pi-ang > angleTolerance {
		return false
	}
	// perpendicular distance of a from the line
	v := a.Sub(ln.origin)
	perp := v.Sub(ln.dir.MulScalar(v.Dot(ln.dir)))
	return perp.Length() <= tolerance
}

// sweepLine walks the breakpoints of the intervals on one edge line and
// classifies each elementary segment by how many face edges cover it.
func (p *Polyface3D) sweepLine(ln *edgeLine) {
	breaks := make([]float64, 0, len(ln.edges)*2)
	for _, iv := range ln.edges {
		breaks = append(breaks, iv.t1, iv.t2)
	}
	sort.Float64s(breaks)

	for i := 0; i < len(breaks)-1; i++ {
		lo, hi := breaks[i], breaks[i+1]
		if hi-lo <= p.tolerance {
			continue // sub-tolerance sliver between breakpoints
		}
		mid := (lo + hi) / 2
		var faces []int
		for _, iv := range ln.edges {
			if iv.t1 <= mid && mid <= iv.t2 {
				faces = append(faces, iv.face)
			}
		}
		if len(faces) == 2 || len(faces) == 0 {
			continue
		}
		seg := EdgeSegment{
			A:           ln.origin.Add(ln.dir.MulScalar(lo)),
			B:           ln.origin.Add(ln.dir.MulScalar(hi)),
			FaceIndexes: faces,
		}
		if len(faces) == 1 {
			p.naked = append(p.naked, seg)
		} else {
			p.nonManifold = append(p.nonManifold, seg)
		}
	}
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewPolyfaceFromBox creates a closed box polyface with the given dimensions.
// The box sits on the base plane with its minimum corner at the plane origin
// and its width along the plane X axis. The resulting faces are ordered
// (Bottom, Front, Right, Back, Left, Top) with outward-facing normals.
func NewPolyfaceFromBox(width, depth, height float64, base Plane, tolerance float64) *Polyface3D {
	o := base.Origin()
	x := base.x.MulScalar(width)
	y := base.y.MulScalar(depth)
	z := base.n.MulScalar(height)

	corner := func(dx, dy, dz bool) Point3D {
		c := o
		if dx {
			c = c.Add(x)
		}
		if dy {
			c = c.Add(y)
		}
		if dz {
			c = c.Add(z)
		}
		return c
	}
	quads := [][4]Point3D{
		{corner(false, false, false), corner(false, true, false), corner(true, true, false), corner(true, false, false)},  // bottom
		{corner(false, false, false), corner(true, false, false), corner(true, false, true), corner(false, false, true)},  // front
		{corner(true, false, false), corner(true, true, false), corner(true, true, true), corner(true, false, true)},      // right
		{corner(true, true, false), corner(false, true, false), corner(false, true, true), corner(true, true, true)},      // back
		{corner(false, true, false), corner(false, false, false), corner(false, false, true), corner(false, true, true)},  // left
		{corner(false, false, true), corner(true, false, true), corner(true, true, true), corner(false, true, true)},      // top
	}
	faces := make([]*Face3D, len(quads))
	for i, q := range quads {
		faces[i], _ = NewFace3D(q[:])
	}
	return NewPolyfaceFromFaces(faces, tolerance, 0.01)
}
