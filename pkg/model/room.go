package model

import (
	"fmt"
	"math"

	"github.com/envelopekit/envelope/pkg/boundary"
	"github.com/envelopekit/envelope/pkg/geometry"
)

// Room is an enclosed volume bounded by an ordered, non-empty face list.
// Derived properties are recomputed from current geometry on every call so
// they stay correct across transforms.
type Room struct {
	base
	faces      []*Face
	shades     []*Shade
	multiplier int
}

// NewRoom creates a room from at least one face, attaching each face's
// parent back-reference. The face list order is preserved.
func NewRoom(identifier string, faces []*Face) (*Room, error) {
	b, err := newBase(identifier)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("model: room %q requires at least one face", identifier)
	}
	r := &Room{base: b, faces: faces, multiplier: 1}
	for _, f := range faces {
		f.parent = r
	}
	return r, nil
}

// Names for the six faces of a box room, in construction order.
var boxFaceNames = [6]string{"Bottom", "Front", "Right", "Back", "Left", "Top"}

// NewRoomFromBox creates a box-shaped room with the lower-left corner at
// origin. angle is the compass orientation in clockwise degrees from north
// applied about the origin. Faces are named {id}_Bottom through {id}_Top
// and grounded faces get a Ground boundary condition.
func NewRoomFromBox(identifier string, width, depth, height, angle float64, origin geometry.Point3D) (*Room, error) {
	if width <= 0 || depth <= 0 || height <= 0 {
		return nil, fmt.Errorf("model: room %q box dimensions must be positive", identifier)
	}
	basePlane := geometry.NewPlane(geometry.ZAxis(), origin)
	pf := geometry.NewPolyfaceFromBox(width, depth, height, basePlane, 0)
	faces := make([]*Face, 0, 6)
	for i, geo := range pf.Faces() {
		if angle != 0 {
			geo = geo.RotateXY(-angle*math.Pi/180, origin)
		}
		f, err := NewFaceWith(fmt.Sprintf("%s_%s", identifier, boxFaceNames[i]), geo,
			TypeFromNormal(geo.Normal()), ConditionFromPosition(geo, 1e-9))
		if err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}
	return NewRoom(identifier, faces)
}

// NewRoomFromPolyface creates a room from an existing polyface, naming the
// faces {id}_Face_{i} and assigning types and boundary conditions from each
// face's normal and position.
func NewRoomFromPolyface(identifier string, pf *geometry.Polyface3D) (*Room, error) {
	faces := make([]*Face, 0, len(pf.Faces()))
	for i, geo := range pf.Faces() {
		f, err := NewFaceWith(fmt.Sprintf("%s_Face_%d", identifier, i), geo,
			TypeFromNormal(geo.Normal()), ConditionFromPosition(geo, 1e-9))
		if err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}
	return NewRoom(identifier, faces)
}

// Faces returns the room's faces in construction order.
func (r *Room) Faces() []*Face { return r.faces }

// FaceByIdentifier returns the face with the given identifier, or nil.
func (r *Room) FaceByIdentifier(id string) *Face {
	for _, f := range r.faces {
		if f.Identifier() == id {
			return f
		}
	}
	return nil
}

// Shades returns the shades attached to the room.
func (r *Room) Shades() []*Shade { return r.shades }

// AddShade attaches a shade to the room.
func (r *Room) AddShade(s *Shade) {
	s.parentID = r.identifier
	r.shades = append(r.shades, s)
}

// Multiplier returns the count of thermally identical copies of this room.
func (r *Room) Multiplier() int { return r.multiplier }

// SetMultiplier sets the copy count, which must be at least 1.
func (r *Room) SetMultiplier(m int) error {
	if m < 1 {
		return fmt.Errorf("model: room %q multiplier must be at least 1, got %d", r.identifier, m)
	}
	r.multiplier = m
	return nil
}

// ParentIdentifiers returns nil, since rooms sit at the top of the
// hierarchy. Present so rooms satisfy boundary.AdjacentObject.
func (r *Room) ParentIdentifiers() []string { return nil }

// polyface assembles the room's current face geometries into a polyface.
// angleTolerance is in degrees and converted to the radians the geometry
// layer expects.
func (r *Room) polyface(tolerance, angleTolerance float64) *geometry.Polyface3D {
	geos := make([]*geometry.Face3D, len(r.faces))
	for i, f := range r.faces {
		geos[i] = f.Geometry()
	}
	return geometry.NewPolyfaceFromFaces(geos, tolerance, angleTolerance*math.Pi/180)
}

// Volume returns the enclosed volume, meaningful only when the faces form a
// closed solid.
func (r *Room) Volume() float64 {
	return r.polyface(1e-9, 1e-9).Volume()
}

// FloorArea returns the summed area of the room's floor faces, excluding
// air boundaries.
func (r *Room) FloorArea() float64 {
	total := 0.0
	for _, f := range r.faces {
		if f.Type() == Floor {
			total += f.Area()
		}
	}
	return total
}

// ExposedArea returns the summed area of faces that meet the outdoors.
func (r *Room) ExposedArea() float64 {
	total := 0.0
	for _, f := range r.faces {
		if f.IsExterior() {
			total += f.Area()
		}
	}
	return total
}

// ExteriorWallArea returns the summed area of outdoor-facing walls.
func (r *Room) ExteriorWallArea() float64 {
	total := 0.0
	for _, f := range r.faces {
		if f.IsExterior() && f.Type() == Wall {
			total += f.Area()
		}
	}
	return total
}

// ExteriorApertureArea returns the summed aperture area on outdoor faces.
func (r *Room) ExteriorApertureArea() float64 {
	total := 0.0
	for _, f := range r.faces {
		if f.IsExterior() {
			total += f.ApertureArea()
		}
	}
	return total
}

// Center returns the center of the room's bounding box.
func (r *Room) Center() geometry.Point3D {
	return r.polyface(1e-9, 1e-9).Center()
}

// AverageFloorHeight returns the area-weighted average height of the floor
// faces, or the bounding-box minimum when the room has no floors.
func (r *Room) AverageFloorHeight() float64 {
	total, weighted := 0.0, 0.0
	for _, f := range r.faces {
		if f.Type() == Floor {
			area := f.Area()
			total += area
			weighted += f.Geometry().Center().Z * area
		}
	}
	if total == 0 {
		return r.polyface(1e-9, 1e-9).Min().Z
	}
	return weighted / total
}

// AverageOrientation returns the area-weighted circular mean of the
// exterior walls' compass orientations in clockwise degrees from north.
// ok is false when the room has no oriented exterior walls.
func (r *Room) AverageOrientation(north geometry.Vector2D) (float64, bool) {
	sumX, sumY := 0.0, 0.0
	found := false
	for _, f := range r.faces {
		if !f.IsExterior() || f.Type() != Wall {
			continue
		}
		orient, ok := f.HorizontalOrientation(north)
		if !ok {
			continue
		}
		rad := orient * math.Pi / 180
		area := f.Area()
		sumX += math.Sin(rad) * area
		sumY += math.Cos(rad) * area
		found = true
	}
	if !found {
		return 0, false
	}
	deg := math.Atan2(sumX, sumY) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg, true
}

// ExteriorFaces returns the faces with an Outdoors boundary condition.
func (r *Room) ExteriorFaces() []*Face {
	var out []*Face
	for _, f := range r.faces {
		if f.IsExterior() {
			out = append(out, f)
		}
	}
	return out
}

// Move translates the room with everything attached to it.
func (r *Room) Move(v geometry.Vector3D) {
	for _, f := range r.faces {
		f.Move(v)
	}
	for _, s := range r.shades {
		s.Move(v)
	}
}

// Rotate rotates about an arbitrary axis through origin, angle in radians.
func (r *Room) Rotate(axis geometry.Vector3D, angle float64, origin geometry.Point3D) {
	for _, f := range r.faces {
		f.Rotate(axis, angle, origin)
	}
	for _, s := range r.shades {
		s.Rotate(axis, angle, origin)
	}
}

// RotateXY rotates about the vertical axis through origin, angle in radians.
func (r *Room) RotateXY(angle float64, origin geometry.Point3D) {
	for _, f := range r.faces {
		f.RotateXY(angle, origin)
	}
	for _, s := range r.shades {
		s.RotateXY(angle, origin)
	}
}

// Reflect mirrors the room across a plane.
func (r *Room) Reflect(plane geometry.Plane) {
	for _, f := range r.faces {
		f.Reflect(plane)
	}
	for _, s := range r.shades {
		s.Reflect(plane)
	}
}

// Scale scales uniformly about origin.
func (r *Room) Scale(factor float64, origin geometry.Point3D) {
	for _, f := range r.faces {
		f.Scale(factor, origin)
	}
	for _, s := range r.shades {
		s.Scale(factor, origin)
	}
}

// Duplicate returns a deep copy under a new identifier. Surface boundary
// conditions are kept as-is, so a duplicated room still references its
// original partners until adjacency is re-solved.
func (r *Room) Duplicate(identifier string) (*Room, error) {
	id, err := NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	faces := make([]*Face, len(r.faces))
	for i, f := range r.faces {
		fd, err := f.Duplicate(fmt.Sprintf("%s_Face_%d", id, i))
		if err != nil {
			return nil, err
		}
		faces[i] = fd
	}
	dup, err := NewRoom(identifier, faces)
	if err != nil {
		return nil, err
	}
	dup.multiplier = r.multiplier
	for i, s := range r.shades {
		sd, err := s.Duplicate(fmt.Sprintf("%s_Shade_%d", id, i))
		if err != nil {
			return nil, err
		}
		dup.AddShade(sd)
	}
	return dup, nil
}

var _ boundary.AdjacentObject = (*Room)(nil)
var _ boundary.AdjacentObject = (*Face)(nil)
var _ boundary.AdjacentObject = (*Aperture)(nil)
var _ boundary.AdjacentObject = (*Door)(nil)
