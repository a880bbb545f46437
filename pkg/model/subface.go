package model

import (
	"fmt"

	"github.com/envelopekit/envelope/pkg/boundary"
	"github.com/envelopekit/envelope/pkg/geometry"
)

// Aperture is a transparent sub-face punched into a Face. Its boundary
// condition is Outdoors or Surface only.
type Aperture struct {
	base
	geo    *geometry.Face3D
	bc     boundary.Condition
	parent *Face
	shades []*Shade
}

// NewAperture creates an aperture with an Outdoors boundary condition.
func NewAperture(identifier string, geo *geometry.Face3D) (*Aperture, error) {
	b, err := newBase(identifier)
	if err != nil {
		return nil, err
	}
	if geo == nil {
		return nil, fmt.Errorf("model: aperture %q requires geometry", identifier)
	}
	return &Aperture{base: b, geo: geo, bc: boundary.NewOutdoors()}, nil
}

// Geometry returns the aperture's planar face geometry.
func (a *Aperture) Geometry() *geometry.Face3D { return a.geo }

// BoundaryCondition returns the current boundary condition.
func (a *Aperture) BoundaryCondition() boundary.Condition { return a.bc }

// SetBoundaryCondition assigns bc, which must be Outdoors or Surface.
func (a *Aperture) SetBoundaryCondition(bc boundary.Condition) error {
	if err := checkSubFaceCondition(bc, "aperture", a.identifier); err != nil {
		return err
	}
	a.bc = bc
	return nil
}

// Parent returns the owning Face, or nil when unattached.
func (a *Aperture) Parent() *Face { return a.parent }

// HasParent reports whether the aperture is attached to a face.
func (a *Aperture) HasParent() bool { return a.parent != nil }

// ParentIdentifiers returns the identifier chain above this aperture, face
// first then room, for Surface boundary-condition construction.
func (a *Aperture) ParentIdentifiers() []string {
	if a.parent == nil {
		return nil
	}
	return append([]string{a.parent.Identifier()}, a.parent.ParentIdentifiers()...)
}

// Shades returns the shades attached to this aperture.
func (a *Aperture) Shades() []*Shade { return a.shades }

// AddShade attaches a shade to the aperture, tagged outdoor.
func (a *Aperture) AddShade(s *Shade) {
	s.parentID = a.identifier
	a.shades = append(a.shades, s)
}

// Area returns the aperture's geometric area.
func (a *Aperture) Area() float64 { return a.geo.Area() }

// Move translates the aperture and its shades.
func (a *Aperture) Move(v geometry.Vector3D) {
	a.geo = a.geo.Move(v)
	for _, s := range a.shades {
		s.Move(v)
	}
}

// Rotate rotates about an arbitrary axis through origin, angle in radians.
func (a *Aperture) Rotate(axis geometry.Vector3D, angle float64, origin geometry.Point3D) {
	a.geo = a.geo.Rotate(axis, angle, origin)
	for _, s := range a.shades {
		s.Rotate(axis, angle, origin)
	}
}

// RotateXY rotates about the vertical axis through origin, angle in radians.
func (a *Aperture) RotateXY(angle float64, origin geometry.Point3D) {
	a.geo = a.geo.RotateXY(angle, origin)
	for _, s := range a.shades {
		s.RotateXY(angle, origin)
	}
}

// Reflect mirrors the aperture across a plane.
func (a *Aperture) Reflect(plane geometry.Plane) {
	a.geo = a.geo.Reflect(plane)
	for _, s := range a.shades {
		s.Reflect(plane)
	}
}

// Scale scales uniformly about origin.
func (a *Aperture) Scale(factor float64, origin geometry.Point3D) {
	a.geo = a.geo.Scale(factor, origin)
	for _, s := range a.shades {
		s.Scale(factor, origin)
	}
}

// Duplicate returns a deep copy under a new identifier. The copy is
// unattached and keeps the original's boundary condition.
func (a *Aperture) Duplicate(identifier string) (*Aperture, error) {
	dup, err := NewAperture(identifier, a.geo)
	if err != nil {
		return nil, err
	}
	dup.bc = a.bc
	for i, s := range a.shades {
		sd, err := s.Duplicate(fmt.Sprintf("%s_Shade_%d", dup.identifier, i))
		if err != nil {
			return nil, err
		}
		dup.AddShade(sd)
	}
	return dup, nil
}

// Door is an opaque operable sub-face punched into a Face. Its boundary
// condition is Outdoors or Surface only.
type Door struct {
	base
	geo    *geometry.Face3D
	bc     boundary.Condition
	parent *Face
}

// NewDoor creates a door with an Outdoors boundary condition.
func NewDoor(identifier string, geo *geometry.Face3D) (*Door, error) {
	b, err := newBase(identifier)
	if err != nil {
		return nil, err
	}
	if geo == nil {
		return nil, fmt.Errorf("model: door %q requires geometry", identifier)
	}
	return &Door{base: b, geo: geo, bc: boundary.NewOutdoors()}, nil
}

// Geometry returns the door's planar face geometry.
func (d *Door) Geometry() *geometry.Face3D { return d.geo }

// BoundaryCondition returns the current boundary condition.
func (d *Door) BoundaryCondition() boundary.Condition { return d.bc }

// SetBoundaryCondition assigns bc, which must be Outdoors or Surface.
func (d *Door) SetBoundaryCondition(bc boundary.Condition) error {
	if err := checkSubFaceCondition(bc, "door", d.identifier); err != nil {
		return err
	}
	d.bc = bc
	return nil
}

// Parent returns the owning Face, or nil when unattached.
func (d *Door) Parent() *Face { return d.parent }

// HasParent reports whether the door is attached to a face.
func (d *Door) HasParent() bool { return d.parent != nil }

// ParentIdentifiers returns the identifier chain above this door.
func (d *Door) ParentIdentifiers() []string {
	if d.parent == nil {
		return nil
	}
	return append([]string{d.parent.Identifier()}, d.parent.ParentIdentifiers()...)
}

// Area returns the door's geometric area.
func (d *Door) Area() float64 { return d.geo.Area() }

// Move translates the door.
func (d *Door) Move(v geometry.Vector3D) { d.geo = d.geo.Move(v) }

// Rotate rotates about an arbitrary axis through origin, angle in radians.
func (d *Door) Rotate(axis geometry.Vector3D, angle float64, origin geometry.Point3D) {
	d.geo = d.geo.Rotate(axis, angle, origin)
}

// RotateXY rotates about the vertical axis through origin, angle in radians.
func (d *Door) RotateXY(angle float64, origin geometry.Point3D) {
	d.geo = d.geo.RotateXY(angle, origin)
}

// Reflect mirrors the door across a plane.
func (d *Door) Reflect(plane geometry.Plane) { d.geo = d.geo.Reflect(plane) }

// Scale scales uniformly about origin.
func (d *Door) Scale(factor float64, origin geometry.Point3D) {
	d.geo = d.geo.Scale(factor, origin)
}

// Duplicate returns an unattached deep copy under a new identifier.
func (d *Door) Duplicate(identifier string) (*Door, error) {
	dup, err := NewDoor(identifier, d.geo)
	if err != nil {
		return nil, err
	}
	dup.bc = d.bc
	return dup, nil
}

func checkSubFaceCondition(bc boundary.Condition, kind, id string) error {
	switch v := bc.(type) {
	case *boundary.Outdoors:
		return nil
	case *boundary.Surface:
		if !v.IsSubFace() {
			return fmt.Errorf("model: %s %q requires a sub-face Surface condition", kind, id)
		}
		return nil
	}
	return fmt.Errorf("model: %s %q boundary condition must be Outdoors or Surface, got %s",
		kind, id, bc.Name())
}
