package model

import (
	"fmt"

	"github.com/envelopekit/envelope/pkg/boundary"
	"github.com/envelopekit/envelope/pkg/geometry"
)

// Dictionary forms for serialization. Geometry is flattened to coordinate
// triples so the JSON stays portable across hosts; reconstruction rebuilds
// planes and derived state from the coordinates alone.

// Face3DDict is the serialized form of a planar face geometry.
type Face3DDict struct {
	Boundary [][3]float64   `json:"boundary"`
	Holes    [][][3]float64 `json:"holes,omitempty"`
}

// ShadeDict is the serialized form of a Shade.
type ShadeDict struct {
	Type        string     `json:"type"`
	Identifier  string     `json:"identifier"`
	DisplayName string     `json:"display_name,omitempty"`
	Geometry    Face3DDict `json:"geometry"`
	IsIndoor    bool       `json:"is_indoor,omitempty"`
}

// ApertureDict is the serialized form of an Aperture.
type ApertureDict struct {
	Type              string        `json:"type"`
	Identifier        string        `json:"identifier"`
	DisplayName       string        `json:"display_name,omitempty"`
	Geometry          Face3DDict    `json:"geometry"`
	BoundaryCondition boundary.Dict `json:"boundary_condition"`
	Shades            []ShadeDict   `json:"shades,omitempty"`
}

// DoorDict is the serialized form of a Door.
type DoorDict struct {
	Type              string        `json:"type"`
	Identifier        string        `json:"identifier"`
	DisplayName       string        `json:"display_name,omitempty"`
	Geometry          Face3DDict    `json:"geometry"`
	BoundaryCondition boundary.Dict `json:"boundary_condition"`
}

// FaceDict is the serialized form of a Face.
type FaceDict struct {
	Type              string         `json:"type"`
	Identifier        string         `json:"identifier"`
	DisplayName       string         `json:"display_name,omitempty"`
	Geometry          Face3DDict     `json:"geometry"`
	FaceType          string         `json:"face_type"`
	BoundaryCondition boundary.Dict  `json:"boundary_condition"`
	Apertures         []ApertureDict `json:"apertures,omitempty"`
	Doors             []DoorDict     `json:"doors,omitempty"`
	Shades            []ShadeDict    `json:"shades,omitempty"`
}

// RoomDict is the serialized form of a Room.
type RoomDict struct {
	Type        string      `json:"type"`
	Identifier  string      `json:"identifier"`
	DisplayName string      `json:"display_name,omitempty"`
	Faces       []FaceDict  `json:"faces"`
	Shades      []ShadeDict `json:"shades,omitempty"`
	Multiplier  int         `json:"multiplier"`
}

func geoToDict(geo *geometry.Face3D) Face3DDict {
	d := Face3DDict{Boundary: make([][3]float64, len(geo.Boundary()))}
	for i, p := range geo.Boundary() {
		d.Boundary[i] = [3]float64{p.X, p.Y, p.Z}
	}
	for _, hole := range geo.Holes() {
		h := make([][3]float64, len(hole))
		for i, p := range hole {
			h[i] = [3]float64{p.X, p.Y, p.Z}
		}
		d.Holes = append(d.Holes, h)
	}
	return d
}

func geoFromDict(d Face3DDict) (*geometry.Face3D, error) {
	boundaryPts := make([]geometry.Point3D, len(d.Boundary))
	for i, c := range d.Boundary {
		boundaryPts[i] = geometry.Point3D{X: c[0], Y: c[1], Z: c[2]}
	}
	holes := make([][]geometry.Point3D, 0, len(d.Holes))
	for _, hole := range d.Holes {
		pts := make([]geometry.Point3D, len(hole))
		for i, c := range hole {
			pts[i] = geometry.Point3D{X: c[0], Y: c[1], Z: c[2]}
		}
		holes = append(holes, pts)
	}
	return geometry.NewFace3D(boundaryPts, holes...)
}

// displayName omits the name from the dict when it matches the identifier,
// keeping round-trips byte-identical for unnamed entities.
func displayName(b *base) string {
	if b.displayName == b.identifier {
		return ""
	}
	return b.displayName
}

func restoreDisplayName(b *base, name string) {
	if name != "" {
		b.displayName = name
	}
}

// ToDict serializes the shade.
func (s *Shade) ToDict() ShadeDict {
	return ShadeDict{
		Type:        "Shade",
		Identifier:  s.identifier,
		DisplayName: displayName(&s.base),
		Geometry:    geoToDict(s.geo),
		IsIndoor:    s.indoor,
	}
}

// ShadeFromDict reconstructs a shade. Attachment is restored by the parent
// entity's FromDict, not here.
func ShadeFromDict(d ShadeDict) (*Shade, error) {
	if d.Type != "Shade" {
		return nil, fmt.Errorf("model: expected type Shade, got %q", d.Type)
	}
	geo, err := geoFromDict(d.Geometry)
	if err != nil {
		return nil, err
	}
	s, err := NewShade(d.Identifier, geo)
	if err != nil {
		return nil, err
	}
	s.indoor = d.IsIndoor
	restoreDisplayName(&s.base, d.DisplayName)
	return s, nil
}

// ToDict serializes the aperture with a full boundary-condition dict.
func (a *Aperture) ToDict() ApertureDict {
	d := ApertureDict{
		Type:              "Aperture",
		Identifier:        a.identifier,
		DisplayName:       displayName(&a.base),
		Geometry:          geoToDict(a.geo),
		BoundaryCondition: a.bc.ToDict(true),
	}
	for _, s := range a.shades {
		d.Shades = append(d.Shades, s.ToDict())
	}
	return d
}

// ApertureFromDict reconstructs an aperture and its shades.
func ApertureFromDict(d ApertureDict) (*Aperture, error) {
	if d.Type != "Aperture" {
		return nil, fmt.Errorf("model: expected type Aperture, got %q", d.Type)
	}
	geo, err := geoFromDict(d.Geometry)
	if err != nil {
		return nil, err
	}
	a, err := NewAperture(d.Identifier, geo)
	if err != nil {
		return nil, err
	}
	bc, err := boundary.FromDict(d.BoundaryCondition, true)
	if err != nil {
		return nil, fmt.Errorf("model: aperture %q: %w", d.Identifier, err)
	}
	if err := a.SetBoundaryCondition(bc); err != nil {
		return nil, err
	}
	restoreDisplayName(&a.base, d.DisplayName)
	for _, sd := range d.Shades {
		s, err := ShadeFromDict(sd)
		if err != nil {
			return nil, err
		}
		a.AddShade(s)
	}
	return a, nil
}

// ToDict serializes the door with a full boundary-condition dict.
func (dr *Door) ToDict() DoorDict {
	return DoorDict{
		Type:              "Door",
		Identifier:        dr.identifier,
		DisplayName:       displayName(&dr.base),
		Geometry:          geoToDict(dr.geo),
		BoundaryCondition: dr.bc.ToDict(true),
	}
}

// DoorFromDict reconstructs a door.
func DoorFromDict(d DoorDict) (*Door, error) {
	if d.Type != "Door" {
		return nil, fmt.Errorf("model: expected type Door, got %q", d.Type)
	}
	geo, err := geoFromDict(d.Geometry)
	if err != nil {
		return nil, err
	}
	dr, err := NewDoor(d.Identifier, geo)
	if err != nil {
		return nil, err
	}
	bc, err := boundary.FromDict(d.BoundaryCondition, true)
	if err != nil {
		return nil, fmt.Errorf("model: door %q: %w", d.Identifier, err)
	}
	if err := dr.SetBoundaryCondition(bc); err != nil {
		return nil, err
	}
	restoreDisplayName(&dr.base, d.DisplayName)
	return dr, nil
}

// ToDict serializes the face, its boundary condition and its sub-faces.
func (f *Face) ToDict() FaceDict {
	d := FaceDict{
		Type:              "Face",
		Identifier:        f.identifier,
		DisplayName:       displayName(&f.base),
		Geometry:          geoToDict(f.geo),
		FaceType:          f.faceType.String(),
		BoundaryCondition: f.bc.ToDict(true),
	}
	for _, a := range f.apertures {
		d.Apertures = append(d.Apertures, a.ToDict())
	}
	for _, dr := range f.doors {
		d.Doors = append(d.Doors, dr.ToDict())
	}
	for _, s := range f.shades {
		d.Shades = append(d.Shades, s.ToDict())
	}
	return d
}

// FaceFromDict reconstructs a face with its sub-faces.
func FaceFromDict(d FaceDict) (*Face, error) {
	if d.Type != "Face" {
		return nil, fmt.Errorf("model: expected type Face, got %q", d.Type)
	}
	geo, err := geoFromDict(d.Geometry)
	if err != nil {
		return nil, err
	}
	ft, err := FaceTypeByName(d.FaceType)
	if err != nil {
		return nil, err
	}
	bc, err := boundary.FromDict(d.BoundaryCondition, false)
	if err != nil {
		return nil, fmt.Errorf("model: face %q: %w", d.Identifier, err)
	}
	f, err := NewFaceWith(d.Identifier, geo, ft, bc)
	if err != nil {
		return nil, err
	}
	restoreDisplayName(&f.base, d.DisplayName)
	for _, ad := range d.Apertures {
		a, err := ApertureFromDict(ad)
		if err != nil {
			return nil, err
		}
		if err := f.AddAperture(a); err != nil {
			return nil, err
		}
	}
	for _, dd := range d.Doors {
		dr, err := DoorFromDict(dd)
		if err != nil {
			return nil, err
		}
		if err := f.AddDoor(dr); err != nil {
			return nil, err
		}
	}
	for _, sd := range d.Shades {
		s, err := ShadeFromDict(sd)
		if err != nil {
			return nil, err
		}
		f.AddShade(s)
	}
	return f, nil
}

// ToDict serializes the room with all attached entities.
func (r *Room) ToDict() RoomDict {
	d := RoomDict{
		Type:        "Room",
		Identifier:  r.identifier,
		DisplayName: displayName(&r.base),
		Faces:       make([]FaceDict, len(r.faces)),
		Multiplier:  r.multiplier,
	}
	for i, f := range r.faces {
		d.Faces[i] = f.ToDict()
	}
	for _, s := range r.shades {
		d.Shades = append(d.Shades, s.ToDict())
	}
	return d
}

// RoomFromDict reconstructs a room with its faces, sub-faces and shades.
func RoomFromDict(d RoomDict) (*Room, error) {
	if d.Type != "Room" {
		return nil, fmt.Errorf("model: expected type Room, got %q", d.Type)
	}
	faces := make([]*Face, len(d.Faces))
	for i, fd := range d.Faces {
		f, err := FaceFromDict(fd)
		if err != nil {
			return nil, err
		}
		faces[i] = f
	}
	r, err := NewRoom(d.Identifier, faces)
	if err != nil {
		return nil, err
	}
	restoreDisplayName(&r.base, d.DisplayName)
	if d.Multiplier > 0 {
		if err := r.SetMultiplier(d.Multiplier); err != nil {
			return nil, err
		}
	}
	for _, sd := range d.Shades {
		s, err := ShadeFromDict(sd)
		if err != nil {
			return nil, err
		}
		r.AddShade(s)
	}
	return r, nil
}
