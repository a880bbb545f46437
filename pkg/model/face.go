package model

import (
	"fmt"

	"github.com/envelopekit/envelope/pkg/boundary"
	"github.com/envelopekit/envelope/pkg/geometry"
)

// Face is a planar surface of a room enclosure. It carries a face type, a
// boundary condition and an optionally empty, homogeneous set of sub-faces:
// apertures or doors, never both.
type Face struct {
	base
	geo       *geometry.Face3D
	faceType  FaceType
	bc        boundary.Condition
	apertures []*Aperture
	doors     []*Door
	shades    []*Shade
	parent    *Room
}

// NewFace creates a face with its type derived from the geometry's normal
// and an Outdoors boundary condition.
func NewFace(identifier string, geo *geometry.Face3D) (*Face, error) {
	if geo == nil {
		return nil, fmt.Errorf("model: face %q requires geometry", identifier)
	}
	return NewFaceWith(identifier, geo, TypeFromNormal(geo.Normal()), boundary.NewOutdoors())
}

// NewFaceWith creates a face with an explicit type and boundary condition.
func NewFaceWith(identifier string, geo *geometry.Face3D, faceType FaceType, bc boundary.Condition) (*Face, error) {
	b, err := newBase(identifier)
	if err != nil {
		return nil, err
	}
	if geo == nil {
		return nil, fmt.Errorf("model: face %q requires geometry", identifier)
	}
	return &Face{base: b, geo: geo, faceType: faceType, bc: bc}, nil
}

// ConditionFromPosition picks Ground when every vertex of geo sits at or
// below the ground plane (z = 0) within tolerance, Outdoors otherwise.
func ConditionFromPosition(geo *geometry.Face3D, tolerance float64) boundary.Condition {
	for _, p := range geo.Boundary() {
		if p.Z > tolerance {
			return boundary.NewOutdoors()
		}
	}
	return boundary.NewGround()
}

// Geometry returns the face's planar geometry.
func (f *Face) Geometry() *geometry.Face3D { return f.geo }

// Type returns the face type.
func (f *Face) Type() FaceType { return f.faceType }

// SetType changes the face type. AirBoundary is rejected while sub-faces
// are present.
func (f *Face) SetType(t FaceType) error {
	if t == AirBoundary && (len(f.apertures) > 0 || len(f.doors) > 0) {
		return fmt.Errorf("model: face %q cannot become an air boundary while it has sub-faces", f.identifier)
	}
	f.faceType = t
	return nil
}

// BoundaryCondition returns the current boundary condition.
func (f *Face) BoundaryCondition() boundary.Condition { return f.bc }

// SetBoundaryCondition assigns bc without restriction. Face-level Surface
// conditions carry 2-tuple references.
func (f *Face) SetBoundaryCondition(bc boundary.Condition) error {
	if s, ok := bc.(*boundary.Surface); ok && s.IsSubFace() {
		return fmt.Errorf("model: face %q requires a face-level Surface condition", f.identifier)
	}
	f.bc = bc
	return nil
}

// IsExterior reports whether the face meets the outdoors.
func (f *Face) IsExterior() bool {
	_, ok := f.bc.(*boundary.Outdoors)
	return ok
}

// Parent returns the owning Room, or nil when unattached.
func (f *Face) Parent() *Room { return f.parent }

// HasParent reports whether the face is attached to a room.
func (f *Face) HasParent() bool { return f.parent != nil }

// ParentIdentifiers returns the identifier chain above this face, which is
// just the owning room when attached.
func (f *Face) ParentIdentifiers() []string {
	if f.parent == nil {
		return nil
	}
	return []string{f.parent.Identifier()}
}

// Apertures returns the face's apertures.
func (f *Face) Apertures() []*Aperture { return f.apertures }

// Doors returns the face's doors.
func (f *Face) Doors() []*Door { return f.doors }

// HasSubFaces reports whether any aperture or door is present.
func (f *Face) HasSubFaces() bool { return len(f.apertures) > 0 || len(f.doors) > 0 }

// Shades returns the shades attached to this face.
func (f *Face) Shades() []*Shade { return f.shades }

// AddShade attaches a shade to the face, such as an overhang or fin.
func (f *Face) AddShade(s *Shade) {
	s.parentID = f.identifier
	f.shades = append(f.shades, s)
}

// AddAperture attaches an aperture. The sub-face set stays homogeneous, so
// a face holding doors rejects apertures, and air boundaries reject both.
func (f *Face) AddAperture(a *Aperture) error {
	if f.faceType == AirBoundary {
		return fmt.Errorf("model: air boundary face %q cannot carry sub-faces", f.identifier)
	}
	if len(f.doors) > 0 {
		return fmt.Errorf("model: face %q holds doors and cannot also hold apertures", f.identifier)
	}
	a.parent = f
	f.apertures = append(f.apertures, a)
	return nil
}

// AddDoor attaches a door, subject to the same homogeneity rule.
func (f *Face) AddDoor(d *Door) error {
	if f.faceType == AirBoundary {
		return fmt.Errorf("model: air boundary face %q cannot carry sub-faces", f.identifier)
	}
	if len(f.apertures) > 0 {
		return fmt.Errorf("model: face %q holds apertures and cannot also hold doors", f.identifier)
	}
	d.parent = f
	f.doors = append(f.doors, d)
	return nil
}

// Area returns the face's gross area including sub-face area.
func (f *Face) Area() float64 { return f.geo.Area() }

// ApertureArea returns the summed area of the face's apertures.
func (f *Face) ApertureArea() float64 {
	total := 0.0
	for _, a := range f.apertures {
		total += a.Area()
	}
	return total
}

// HorizontalOrientation returns the face's clockwise compass angle from
// north in degrees. ok is false for horizontal faces, which have no
// horizontal orientation.
func (f *Face) HorizontalOrientation(north geometry.Vector2D) (float64, bool) {
	return geometry.HorizontalOrientation(f.geo.Normal(), north)
}

// AdjacencyInfo reports the sub-face pairs matched by SetAdjacency.
type AdjacencyInfo struct {
	Faces     [2]*Face
	Apertures [][2]*Aperture
	Doors     [][2]*Door
}

// SetAdjacency makes f and other interior partners: both faces get mutual
// Surface conditions and their coincident sub-faces are paired the same
// way. Both faces must be attached to rooms, since Surface references name
// the adjacent room.
func (f *Face) SetAdjacency(other *Face, tolerance float64) (*AdjacencyInfo, error) {
	if !f.HasParent() || !other.HasParent() {
		return nil, fmt.Errorf("model: faces %q and %q must both belong to rooms before adjacency can be set",
			f.identifier, other.identifier)
	}
	if !f.geo.IsCoincident(other.geo, tolerance) {
		return nil, fmt.Errorf("model: faces %q and %q are not coincident within %g",
			f.identifier, other.identifier, tolerance)
	}
	if err := setSurfacePair(f, other); err != nil {
		return nil, err
	}
	info := &AdjacencyInfo{Faces: [2]*Face{f, other}}

	for _, a := range f.apertures {
		for _, b := range other.apertures {
			if a.Geometry().IsCoincident(b.Geometry(), tolerance) {
				if err := setSurfacePair(a, b); err != nil {
					return nil, err
				}
				info.Apertures = append(info.Apertures, [2]*Aperture{a, b})
				break
			}
		}
	}
	for _, a := range f.doors {
		for _, b := range other.doors {
			if a.Geometry().IsCoincident(b.Geometry(), tolerance) {
				if err := setSurfacePair(a, b); err != nil {
					return nil, err
				}
				info.Doors = append(info.Doors, [2]*Door{a, b})
				break
			}
		}
	}
	return info, nil
}

// conditioned is satisfied by every entity that can hold a Surface boundary
// condition pointing at a partner.
type conditioned interface {
	boundary.AdjacentObject
	SetBoundaryCondition(boundary.Condition) error
}

func setSurfacePair(a, b conditioned) error {
	_, aSub := a.(*Face)
	subFace := !aSub
	sa, err := boundary.NewSurfaceFromObject(b, subFace)
	if err != nil {
		return err
	}
	sb, err := boundary.NewSurfaceFromObject(a, subFace)
	if err != nil {
		return err
	}
	if err := a.SetBoundaryCondition(sa); err != nil {
		return err
	}
	return b.SetBoundaryCondition(sb)
}

// Move translates the face and everything attached to it.
func (f *Face) Move(v geometry.Vector3D) {
	f.geo = f.geo.Move(v)
	for _, a := range f.apertures {
		a.Move(v)
	}
	for _, d := range f.doors {
		d.Move(v)
	}
	for _, s := range f.shades {
		s.Move(v)
	}
}

// Rotate rotates about an arbitrary axis through origin, angle in radians.
func (f *Face) Rotate(axis geometry.Vector3D, angle float64, origin geometry.Point3D) {
	f.geo = f.geo.Rotate(axis, angle, origin)
	for _, a := range f.apertures {
		a.Rotate(axis, angle, origin)
	}
	for _, d := range f.doors {
		d.Rotate(axis, angle, origin)
	}
	for _, s := range f.shades {
		s.Rotate(axis, angle, origin)
	}
}

// RotateXY rotates about the vertical axis through origin, angle in radians.
func (f *Face) RotateXY(angle float64, origin geometry.Point3D) {
	f.geo = f.geo.RotateXY(angle, origin)
	for _, a := range f.apertures {
		a.RotateXY(angle, origin)
	}
	for _, d := range f.doors {
		d.RotateXY(angle, origin)
	}
	for _, s := range f.shades {
		s.RotateXY(angle, origin)
	}
}

// Reflect mirrors the face and its sub-faces across a plane.
func (f *Face) Reflect(plane geometry.Plane) {
	f.geo = f.geo.Reflect(plane)
	for _, a := range f.apertures {
		a.Reflect(plane)
	}
	for _, d := range f.doors {
		d.Reflect(plane)
	}
	for _, s := range f.shades {
		s.Reflect(plane)
	}
}

// Scale scales uniformly about origin.
func (f *Face) Scale(factor float64, origin geometry.Point3D) {
	f.geo = f.geo.Scale(factor, origin)
	for _, a := range f.apertures {
		a.Scale(factor, origin)
	}
	for _, d := range f.doors {
		d.Scale(factor, origin)
	}
	for _, s := range f.shades {
		s.Scale(factor, origin)
	}
}

// Duplicate returns an unattached deep copy under a new identifier.
func (f *Face) Duplicate(identifier string) (*Face, error) {
	dup, err := NewFaceWith(identifier, f.geo, f.faceType, f.bc)
	if err != nil {
		return nil, err
	}
	for i, a := range f.apertures {
		ad, err := a.Duplicate(fmt.Sprintf("%s_Aperture_%d", dup.identifier, i))
		if err != nil {
			return nil, err
		}
		if err := dup.AddAperture(ad); err != nil {
			return nil, err
		}
	}
	for i, d := range f.doors {
		dd, err := d.Duplicate(fmt.Sprintf("%s_Door_%d", dup.identifier, i))
		if err != nil {
			return nil, err
		}
		if err := dup.AddDoor(dd); err != nil {
			return nil, err
		}
	}
	for i, s := range f.shades {
		sd, err := s.Duplicate(fmt.Sprintf("%s_Shade_%d", dup.identifier, i))
		if err != nil {
			return nil, err
		}
		dup.AddShade(sd)
	}
	return dup, nil
}
