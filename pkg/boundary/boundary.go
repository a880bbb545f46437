// Package boundary defines the boundary-condition variants assigned to faces
// and sub-faces: what lies on the far side of a surface (outdoor air, ground,
// or another modeled surface), plus an extensible registry that lets a host
// layer add named, argument-free variants such as "Adiabatic".
package boundary

import (
	"fmt"
)

// Condition is the far-side classification of a face or sub-face.
// Implementations are immutable value types with structural equality.
type Condition interface {
	// Name returns the canonical variant name (e.g. "Outdoors", "Ground").
	Name() string
	// SunExposure reports whether the boundary is exposed to sun.
	SunExposure() bool
	// WindExposure reports whether the boundary is exposed to wind.
	WindExposure() bool
	// ViewFactor returns the view factor to ground.
	ViewFactor() ViewFactor
	// ToDict returns the dictionary form. The full form includes the
	// exposure and view-factor fields for variants that carry them.
	ToDict(full bool) Dict
}

// Dict is the serializable dictionary form of a boundary condition.
// ViewFactor is either a float64 or the autocalculate sentinel dict
// {"type": "Autocalculate"}.
type Dict struct {
	Type                     string   `json:"type"`
	SunExposure              *bool    `json:"sun_exposure,omitempty"`
	WindExposure             *bool    `json:"wind_exposure,omitempty"`
	ViewFactor               any      `json:"view_factor,omitempty"`
	BoundaryConditionObjects []string `json:"boundary_condition_objects,omitempty"`
}

// ---------------------------------------------------------------------------
// View factor
// ---------------------------------------------------------------------------

// autocalculateName is the type tag of the autocalculate sentinel dict.
const autocalculateName = "Autocalculate"

// ViewFactor is a view factor to ground: either a number in [0, 1] or the
// autocalculate sentinel meaning the value is derived elsewhere. The zero
// value is the sentinel.
type ViewFactor struct {
	value   float64
	numeric bool
}

// Autocalculate returns the autocalculate view-factor sentinel.
func Autocalculate() ViewFactor { return ViewFactor{} }

// NewViewFactor returns a numeric view factor, which must lie in [0, 1].
func NewViewFactor(value float64) (ViewFactor, error) {
	if value < 0 || value > 1 {
		return ViewFactor{}, fmt.Errorf(
			"boundary: view factor to ground must be between 0 and 1, got %g", value)
	}
	return ViewFactor{value: value, numeric: true}, nil
}

// IsAutocalculate reports whether the view factor is the sentinel.
func (v ViewFactor) IsAutocalculate() bool { return !v.numeric }

// Value returns the numeric view factor. It is only meaningful when
// IsAutocalculate is false.
func (v ViewFactor) Value() float64 { return v.value }

// toDict returns the dict form: a number, or the sentinel dict.
func (v ViewFactor) toDict() any {
	if v.numeric {
		return v.value
	}
	return map[string]string{"type": autocalculateName}
}

// viewFactorFromDict parses the view_factor field of a boundary dict.
func viewFactorFromDict(raw any) (ViewFactor, error) {
	switch x := raw.(type) {
	case nil:
		return Autocalculate(), nil
	case float64:
		return NewViewFactor(x)
	case int:
		return NewViewFactor(float64(x))
	case map[string]string:
		if x["type"] == autocalculateName {
			return Autocalculate(), nil
		}
	case map[string]any:
		if x["type"] == autocalculateName {
			return Autocalculate(), nil
		}
	}
	return ViewFactor{}, fmt.Errorf("boundary: unrecognized view_factor value %v", raw)
}

// ---------------------------------------------------------------------------
// Outdoors
// ---------------------------------------------------------------------------

// Outdoors is the boundary condition of a surface facing outdoor air.
type Outdoors struct {
	sun  bool
	wind bool
	vf   ViewFactor
}

// NewOutdoors returns an Outdoors condition with sun and wind exposure and
// an autocalculated view factor.
func NewOutdoors() *Outdoors {
	return &Outdoors{sun: true, wind: true}
}

// NewOutdoorsWith returns an Outdoors condition with explicit exposure flags
// and view factor.
func NewOutdoorsWith(sunExposure, windExposure bool, viewFactor ViewFactor) *Outdoors {
	return &Outdoors{sun: sunExposure, wind: windExposure, vf: viewFactor}
}

func (o *Outdoors) Name() string           { return "Outdoors" }
func (o *Outdoors) SunExposure() bool      { return o.sun }
func (o *Outdoors) WindExposure() bool     { return o.wind }
func (o *Outdoors) ViewFactor() ViewFactor { return o.vf }

// ToDict returns the dict form. Only the full form carries the exposure
// flags and view factor.
func (o *Outdoors) ToDict(full bool) Dict {
	d := Dict{Type: o.Name()}
	if full {
		sun, wind := o.sun, o.wind
		d.SunExposure = &sun
		d.WindExposure = &wind
		d.ViewFactor = o.vf.toDict()
	}
	return d
}

// OutdoorsFromDict reconstructs an Outdoors condition from its dict form.
func OutdoorsFromDict(d Dict) (*Outdoors, error) {
	if d.Type != "Outdoors" {
		return nil, &TypeMismatchError{Expected: "Outdoors", Actual: d.Type}
	}
	o := NewOutdoors()
	if d.SunExposure != nil {
		o.sun = *d.SunExposure
	}
	if d.WindExposure != nil {
		o.wind = *d.WindExposure
	}
	vf, err := viewFactorFromDict(d.ViewFactor)
	if err != nil {
		return nil, err
	}
	o.vf = vf
	return o, nil
}

// ---------------------------------------------------------------------------
// Ground and other argument-free variants
// ---------------------------------------------------------------------------

// Ground is the boundary condition of a surface in contact with the ground.
type Ground struct{}

// NewGround returns a Ground condition.
func NewGround() *Ground { return &Ground{} }

func (g *Ground) Name() string           { return "Ground" }
func (g *Ground) SunExposure() bool      { return false }
func (g *Ground) WindExposure() bool     { return false }
func (g *Ground) ViewFactor() ViewFactor { return Autocalculate() }

// ToDict returns the dict form, which carries only the type name.
func (g *Ground) ToDict(bool) Dict { return Dict{Type: g.Name()} }

// GroundFromDict reconstructs a Ground condition from its dict form.
func GroundFromDict(d Dict) (*Ground, error) {
	if d.Type != "Ground" {
		return nil, &TypeMismatchError{Expected: "Ground", Actual: d.Type}
	}
	return NewGround(), nil
}

// Generic is a host-registered, argument-free boundary condition identified
// only by its name (e.g. "Adiabatic"). It carries no exposure and no state.
type Generic struct {
	name string
}

// NewGeneric returns an argument-free condition with the given canonical
// name. Use Registry.Register to make it resolvable by name.
func NewGeneric(name string) *Generic { return &Generic{name: name} }

func (g *Generic) Name() string           { return g.name }
func (g *Generic) SunExposure() bool      { return false }
func (g *Generic) WindExposure() bool     { return false }
func (g *Generic) ViewFactor() ViewFactor { return Autocalculate() }

// ToDict returns the dict form, which carries only the type name.
func (g *Generic) ToDict(bool) Dict { return Dict{Type: g.name} }

// ---------------------------------------------------------------------------
// Surface
// ---------------------------------------------------------------------------

// Surface is the boundary condition of a surface adjacent to another modeled
// surface. It holds an ordered tuple of identifiers: for a face
// [adjacent-face, adjacent-room]; for a sub-face
// [adjacent-subface, adjacent-face, adjacent-room].
type Surface struct {
	objects []string
	subFace bool
}

// NewSurface creates a Surface condition from an identifier tuple. The tuple
// arity must match the attachment context: 2 identifiers for a face, 3 for a
// sub-face.
func NewSurface(objects []string, subFace bool) (*Surface, error) {
	want := 2
	if subFace {
		want = 3
	}
	if len(objects) != want {
		return nil, fmt.Errorf(
			"boundary: Surface for subFace=%t requires %d boundary condition objects, got %d",
			subFace, want, len(objects))
	}
	objs := make([]string, len(objects))
	copy(objs, objects)
	return &Surface{objects: objs, subFace: subFace}, nil
}

// AdjacentObject is the minimal view of a model entity needed to build a
// Surface condition from the entity it is adjacent to.
type AdjacentObject interface {
	Identifier() string
	// ParentIdentifiers returns the identifiers of the enclosing entities,
	// nearest first (face then room for a sub-face; room for a face).
	ParentIdentifiers() []string
}

// NewSurfaceFromObject creates a Surface condition referencing another model
// object. The object's parent chain must be deep enough for the requested
// arity: object and parent room for a face, object, parent face and parent
// room for a sub-face.
func NewSurfaceFromObject(other AdjacentObject, subFace bool) (*Surface, error) {
	chain := append([]string{other.Identifier()}, other.ParentIdentifiers()...)
	want := 2
	if subFace {
		want = 3
	}
	if len(chain) < want {
		return nil, fmt.Errorf(
			"boundary: object %q has an insufficient parent chain (depth %d) for a "+
				"subFace=%t Surface condition (need %d)",
			other.Identifier(), len(chain), subFace, want)
	}
	return NewSurface(chain[:want], subFace)
}

func (s *Surface) Name() string           { return "Surface" }
func (s *Surface) SunExposure() bool      { return false }
func (s *Surface) WindExposure() bool     { return false }
func (s *Surface) ViewFactor() ViewFactor { return Autocalculate() }

// IsSubFace reports whether the condition was built for a sub-face (arity 3).
func (s *Surface) IsSubFace() bool { return s.subFace }

// BoundaryConditionObjects returns the adjacent identifier tuple. The first
// entry is always the immediately adjacent object of the same kind.
func (s *Surface) BoundaryConditionObjects() []string {
	objs := make([]string, len(s.objects))
	copy(objs, s.objects)
	return objs
}

// BoundaryConditionObject returns the identifier of the immediately adjacent
// object.
func (s *Surface) BoundaryConditionObject() string { return s.objects[0] }

// ToDict returns the dict form. The identifier tuple is always included.
func (s *Surface) ToDict(bool) Dict {
	return Dict{Type: s.Name(), BoundaryConditionObjects: s.BoundaryConditionObjects()}
}

// SurfaceFromDict reconstructs a Surface condition from its dict form. The
// subFace flag selects the expected tuple arity.
func SurfaceFromDict(d Dict, subFace bool) (*Surface, error) {
	if d.Type != "Surface" {
		return nil, &TypeMismatchError{Expected: "Surface", Actual: d.Type}
	}
	return NewSurface(d.BoundaryConditionObjects, subFace)
}

// ---------------------------------------------------------------------------
// Equality and dispatch
// ---------------------------------------------------------------------------

// TypeMismatchError is returned when a dict's type field does not match the
// variant being reconstructed.
type TypeMismatchError struct {
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("boundary: expected %s dictionary, got type %q", e.Expected, e.Actual)
}

// Equal reports structural equality of two conditions: same variant name and
// same field values.
func Equal(a, b Condition) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name() != b.Name() {
		return false
	}
	sa, aOK := a.(*Surface)
	sb, bOK := b.(*Surface)
	if aOK != bOK {
		return false
	}
	if aOK {
		if sa.subFace != sb.subFace || len(sa.objects) != len(sb.objects) {
			return false
		}
		for i := range sa.objects {
			if sa.objects[i] != sb.objects[i] {
				return false
			}
		}
		return true
	}
	return a.SunExposure() == b.SunExposure() &&
		a.WindExposure() == b.WindExposure() &&
		a.ViewFactor() == b.ViewFactor()
}

// FromDict reconstructs any registered condition from its dict form,
// dispatching on the type field. subFace selects the Surface tuple arity.
func FromDict(d Dict, subFace bool) (Condition, error) {
	switch d.Type {
	case "Outdoors":
		return OutdoorsFromDict(d)
	case "Surface":
		return SurfaceFromDict(d, subFace)
	default:
		c, err := Default.byRegisteredName(d.Type)
		if err != nil {
			return nil, fmt.Errorf("boundary: unrecognized condition type %q", d.Type)
		}
		return c, nil
	}
}
