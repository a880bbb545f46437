package model

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/envelopekit/envelope/pkg/boundary"
	"github.com/envelopekit/envelope/pkg/geometry"
	"github.com/google/uuid"
)

// Model groups rooms with context faces and shades that belong to no room,
// plus the tolerances its geometry was authored against.
type Model struct {
	base
	rooms          []*Room
	orphanedFaces  []*Face
	orphanedShades []*Shade
	tolerance      float64
	angleTolerance float64
}

// Default tolerances, in model units and degrees.
const (
	DefaultTolerance      = 0.01
	DefaultAngleTolerance = 1.0
)

// NewModel creates a model holding rooms. An empty identifier gets a
// generated uuid-based one.
func NewModel(identifier string, rooms []*Room) (*Model, error) {
	if identifier == "" {
		identifier = "Model_" + uuid.NewString()
	}
	b, err := newBase(identifier)
	if err != nil {
		return nil, err
	}
	return &Model{
		base:           b,
		rooms:          rooms,
		tolerance:      DefaultTolerance,
		angleTolerance: DefaultAngleTolerance,
	}, nil
}

// Rooms returns the model's rooms.
func (m *Model) Rooms() []*Room { return m.rooms }

// AddRoom appends a room to the model.
func (m *Model) AddRoom(r *Room) { m.rooms = append(m.rooms, r) }

// OrphanedFaces returns context faces that belong to no room.
func (m *Model) OrphanedFaces() []*Face { return m.orphanedFaces }

// AddOrphanedFace adds a context face. Attached faces belong to their room
// and are rejected here.
func (m *Model) AddOrphanedFace(f *Face) error {
	if f.HasParent() {
		return fmt.Errorf("model: face %q belongs to room %q and cannot be added as orphaned",
			f.Identifier(), f.Parent().Identifier())
	}
	m.orphanedFaces = append(m.orphanedFaces, f)
	return nil
}

// OrphanedShades returns context shades that belong to no entity.
func (m *Model) OrphanedShades() []*Shade { return m.orphanedShades }

// AddOrphanedShade adds a context shade.
func (m *Model) AddOrphanedShade(s *Shade) error {
	if s.HasParent() {
		return fmt.Errorf("model: shade %q is attached to %q and cannot be added as orphaned",
			s.Identifier(), s.ParentIdentifier())
	}
	m.orphanedShades = append(m.orphanedShades, s)
	return nil
}

// Tolerance returns the model's distance tolerance.
func (m *Model) Tolerance() float64 { return m.tolerance }

// AngleTolerance returns the model's angle tolerance in degrees.
func (m *Model) AngleTolerance() float64 { return m.angleTolerance }

// SetTolerances overrides the tolerances the model's checks run against.
func (m *Model) SetTolerances(tolerance, angleTolerance float64) error {
	if tolerance <= 0 || angleTolerance <= 0 {
		return fmt.Errorf("model: tolerances must be positive, got %g and %g", tolerance, angleTolerance)
	}
	m.tolerance = tolerance
	m.angleTolerance = angleTolerance
	return nil
}

// RoomByIdentifier returns the room with the given identifier, or nil.
func (m *Model) RoomByIdentifier(id string) *Room {
	for _, r := range m.rooms {
		if r.Identifier() == id {
			return r
		}
	}
	return nil
}

// CheckDuplicateIdentifiers verifies identifiers are unique within each
// entity class across the whole model.
func (m *Model) CheckDuplicateIdentifiers() []ValidationError {
	var errors []ValidationError
	errors = append(errors, duplicateCheck("Room", m.roomIdentifiers())...)
	errors = append(errors, duplicateCheck("Face", m.faceIdentifiers())...)
	errors = append(errors, duplicateCheck("Aperture", m.subFaceIdentifiers(true))...)
	errors = append(errors, duplicateCheck("Door", m.subFaceIdentifiers(false))...)
	errors = append(errors, duplicateCheck("Shade", m.shadeIdentifiers())...)
	return errors
}

func duplicateCheck(kind string, ids []string) []ValidationError {
	seen := map[string]int{}
	for _, id := range ids {
		seen[id]++
	}
	var dups []string
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	sort.Strings(dups)
	var errors []ValidationError
	for _, id := range dups {
		errors = append(errors, ValidationError{
			Code:     "DUPLICATE_IDENTIFIER",
			Message:  fmt.Sprintf("%s identifier %q is used %d times", kind, id, seen[id]),
			ObjectID: id,
		})
	}
	return errors
}

func (m *Model) roomIdentifiers() []string {
	ids := make([]string, len(m.rooms))
	for i, r := range m.rooms {
		ids[i] = r.Identifier()
	}
	return ids
}

func (m *Model) faceIdentifiers() []string {
	var ids []string
	for _, r := range m.rooms {
		for _, f := range r.Faces() {
			ids = append(ids, f.Identifier())
		}
	}
	for _, f := range m.orphanedFaces {
		ids = append(ids, f.Identifier())
	}
	return ids
}

func (m *Model) subFaceIdentifiers(apertures bool) []string {
	var ids []string
	walk := func(f *Face) {
		if apertures {
			for _, a := range f.Apertures() {
				ids = append(ids, a.Identifier())
			}
		} else {
			for _, d := range f.Doors() {
				ids = append(ids, d.Identifier())
			}
		}
	}
	for _, r := range m.rooms {
		for _, f := range r.Faces() {
			walk(f)
		}
	}
	for _, f := range m.orphanedFaces {
		walk(f)
	}
	return ids
}

func (m *Model) shadeIdentifiers() []string {
	var ids []string
	walk := func(f *Face) {
		for _, s := range f.Shades() {
			ids = append(ids, s.Identifier())
		}
		for _, a := range f.Apertures() {
			for _, s := range a.Shades() {
				ids = append(ids, s.Identifier())
			}
		}
	}
	for _, r := range m.rooms {
		for _, s := range r.Shades() {
			ids = append(ids, s.Identifier())
		}
		for _, f := range r.Faces() {
			walk(f)
		}
	}
	for _, f := range m.orphanedFaces {
		walk(f)
	}
	for _, s := range m.orphanedShades {
		ids = append(ids, s.Identifier())
	}
	return ids
}

// CheckMissingAdjacencies verifies every Surface boundary condition in the
// model references entities that exist. References are opaque strings, so a
// stale reference is a model-level failure rather than a construction error.
func (m *Model) CheckMissingAdjacencies() []ValidationError {
	faceIDs := map[string]bool{}
	subFaceIDs := map[string]bool{}
	roomIDs := map[string]bool{}
	for _, r := range m.rooms {
		roomIDs[r.Identifier()] = true
		for _, f := range r.Faces() {
			faceIDs[f.Identifier()] = true
			for _, a := range f.Apertures() {
				subFaceIDs[a.Identifier()] = true
			}
			for _, d := range f.Doors() {
				subFaceIDs[d.Identifier()] = true
			}
		}
	}

	var errors []ValidationError
	report := func(kind, id string, objs []string, missing string) {
		errors = append(errors, ValidationError{
			Code: "MISSING_ADJACENCY",
			Message: fmt.Sprintf("%s %q references absent partner %q in %v",
				kind, id, missing, objs),
			ObjectID: id,
		})
	}
	for _, r := range m.rooms {
		for _, f := range r.Faces() {
			if s, ok := f.BoundaryCondition().(*boundary.Surface); ok {
				objs := s.BoundaryConditionObjects()
				if !faceIDs[objs[0]] {
					report("Face", f.Identifier(), objs, objs[0])
				} else if !roomIDs[objs[1]] {
					report("Face", f.Identifier(), objs, objs[1])
				}
			}
			for _, a := range f.Apertures() {
				if s, ok := a.BoundaryCondition().(*boundary.Surface); ok {
					objs := s.BoundaryConditionObjects()
					if !subFaceIDs[objs[0]] {
						report("Aperture", a.Identifier(), objs, objs[0])
					}
				}
			}
			for _, d := range f.Doors() {
				if s, ok := d.BoundaryCondition().(*boundary.Surface); ok {
					objs := s.BoundaryConditionObjects()
					if !subFaceIDs[objs[0]] {
						report("Door", d.Identifier(), objs, objs[0])
					}
				}
			}
		}
	}
	return errors
}

// Validate runs the model-wide checks plus every room's geometry checks
// using the model's tolerances.
func (m *Model) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, m.CheckDuplicateIdentifiers()...)
	errors = append(errors, m.CheckMissingAdjacencies()...)
	for _, r := range m.rooms {
		errors = append(errors, r.Validate(m.tolerance, m.angleTolerance)...)
	}
	return errors
}

// Move translates every entity in the model.
func (m *Model) Move(v geometry.Vector3D) {
	for _, r := range m.rooms {
		r.Move(v)
	}
	for _, f := range m.orphanedFaces {
		f.Move(v)
	}
	for _, s := range m.orphanedShades {
		s.Move(v)
	}
}

// Rotate rotates the whole model about an axis through origin, radians.
func (m *Model) Rotate(axis geometry.Vector3D, angle float64, origin geometry.Point3D) {
	for _, r := range m.rooms {
		r.Rotate(axis, angle, origin)
	}
	for _, f := range m.orphanedFaces {
		f.Rotate(axis, angle, origin)
	}
	for _, s := range m.orphanedShades {
		s.Rotate(axis, angle, origin)
	}
}

// RotateXY rotates the whole model about the vertical axis, radians.
func (m *Model) RotateXY(angle float64, origin geometry.Point3D) {
	for _, r := range m.rooms {
		r.RotateXY(angle, origin)
	}
	for _, f := range m.orphanedFaces {
		f.RotateXY(angle, origin)
	}
	for _, s := range m.orphanedShades {
		s.RotateXY(angle, origin)
	}
}

// Reflect mirrors the whole model across a plane.
func (m *Model) Reflect(plane geometry.Plane) {
	for _, r := range m.rooms {
		r.Reflect(plane)
	}
	for _, f := range m.orphanedFaces {
		f.Reflect(plane)
	}
	for _, s := range m.orphanedShades {
		s.Reflect(plane)
	}
}

// Scale scales the whole model uniformly about origin.
func (m *Model) Scale(factor float64, origin geometry.Point3D) {
	for _, r := range m.rooms {
		r.Scale(factor, origin)
	}
	for _, f := range m.orphanedFaces {
		f.Scale(factor, origin)
	}
	for _, s := range m.orphanedShades {
		s.Scale(factor, origin)
	}
}

// ModelDict is the serialized form of a Model.
type ModelDict struct {
	Type           string      `json:"type"`
	Identifier     string      `json:"identifier"`
	DisplayName    string      `json:"display_name,omitempty"`
	Rooms          []RoomDict  `json:"rooms,omitempty"`
	OrphanedFaces  []FaceDict  `json:"orphaned_faces,omitempty"`
	OrphanedShades []ShadeDict `json:"orphaned_shades,omitempty"`
	Tolerance      float64     `json:"tolerance"`
	AngleTolerance float64     `json:"angle_tolerance"`
}

// ToDict serializes the model with everything in it.
func (m *Model) ToDict() ModelDict {
	d := ModelDict{
		Type:           "Model",
		Identifier:     m.identifier,
		DisplayName:    displayName(&m.base),
		Tolerance:      m.tolerance,
		AngleTolerance: m.angleTolerance,
	}
	for _, r := range m.rooms {
		d.Rooms = append(d.Rooms, r.ToDict())
	}
	for _, f := range m.orphanedFaces {
		d.OrphanedFaces = append(d.OrphanedFaces, f.ToDict())
	}
	for _, s := range m.orphanedShades {
		d.OrphanedShades = append(d.OrphanedShades, s.ToDict())
	}
	return d
}

// FromDict reconstructs a model.
func FromDict(d ModelDict) (*Model, error) {
	if d.Type != "Model" {
		return nil, fmt.Errorf("model: expected type Model, got %q", d.Type)
	}
	rooms := make([]*Room, 0, len(d.Rooms))
	for _, rd := range d.Rooms {
		r, err := RoomFromDict(rd)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	m, err := NewModel(d.Identifier, rooms)
	if err != nil {
		return nil, err
	}
	restoreDisplayName(&m.base, d.DisplayName)
	if d.Tolerance > 0 || d.AngleTolerance > 0 {
		tol, ang := d.Tolerance, d.AngleTolerance
		if tol <= 0 {
			tol = DefaultTolerance
		}
		if ang <= 0 {
			ang = DefaultAngleTolerance
		}
		if err := m.SetTolerances(tol, ang); err != nil {
			return nil, err
		}
	}
	for _, fd := range d.OrphanedFaces {
		f, err := FaceFromDict(fd)
		if err != nil {
			return nil, err
		}
		if err := m.AddOrphanedFace(f); err != nil {
			return nil, err
		}
	}
	for _, sd := range d.OrphanedShades {
		s, err := ShadeFromDict(sd)
		if err != nil {
			return nil, err
		}
		if err := m.AddOrphanedShade(s); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MarshalJSON serializes the model through its dictionary form.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToDict())
}

// LoadJSON parses a serialized model.
func LoadJSON(data []byte) (*Model, error) {
	var d ModelDict
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("model: parsing model JSON: %w", err)
	}
	return FromDict(d)
}
