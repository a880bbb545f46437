package model

import (
	"fmt"

	"github.com/envelopekit/envelope/pkg/geometry"
)

// Shade is a decorative planar surface attached to a room, face or aperture.
// It casts shadow but carries no boundary condition.
type Shade struct {
	base
	geo      *geometry.Face3D
	indoor   bool
	parentID string
}

// NewShade creates an outdoor shade.
func NewShade(identifier string, geo *geometry.Face3D) (*Shade, error) {
	b, err := newBase(identifier)
	if err != nil {
		return nil, err
	}
	if geo == nil {
		return nil, fmt.Errorf("model: shade %q requires geometry", identifier)
	}
	return &Shade{base: b, geo: geo}, nil
}

// NewIndoorShade creates a shade tagged as interior.
func NewIndoorShade(identifier string, geo *geometry.Face3D) (*Shade, error) {
	s, err := NewShade(identifier, geo)
	if err != nil {
		return nil, err
	}
	s.indoor = true
	return s, nil
}

// Geometry returns the shade's planar geometry.
func (s *Shade) Geometry() *geometry.Face3D { return s.geo }

// IsIndoor reports whether the shade sits inside the enclosure.
func (s *Shade) IsIndoor() bool { return s.indoor }

// ParentIdentifier returns the identifier of the entity the shade is
// attached to, or the empty string when orphaned.
func (s *Shade) ParentIdentifier() string { return s.parentID }

// HasParent reports whether the shade is attached to another entity.
func (s *Shade) HasParent() bool { return s.parentID != "" }

// Area returns the shade's geometric area.
func (s *Shade) Area() float64 { return s.geo.Area() }

// Move translates the shade.
func (s *Shade) Move(v geometry.Vector3D) { s.geo = s.geo.Move(v) }

// Rotate rotates about an arbitrary axis through origin, angle in radians.
func (s *Shade) Rotate(axis geometry.Vector3D, angle float64, origin geometry.Point3D) {
	s.geo = s.geo.Rotate(axis, angle, origin)
}

// RotateXY rotates about the vertical axis through origin, angle in radians.
func (s *Shade) RotateXY(angle float64, origin geometry.Point3D) {
	s.geo = s.geo.RotateXY(angle, origin)
}

// Reflect mirrors the shade across a plane.
func (s *Shade) Reflect(plane geometry.Plane) { s.geo = s.geo.Reflect(plane) }

// Scale scales uniformly about origin.
func (s *Shade) Scale(factor float64, origin geometry.Point3D) {
	s.geo = s.geo.Scale(factor, origin)
}

// Duplicate returns an unattached copy under a new identifier.
func (s *Shade) Duplicate(identifier string) (*Shade, error) {
	dup, err := NewShade(identifier, s.geo)
	if err != nil {
		return nil, err
	}
	dup.indoor = s.indoor
	return dup, nil
}
