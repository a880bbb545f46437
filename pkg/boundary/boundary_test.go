package boundary

import (
	"strings"
	"testing"
)

func TestOutdoors_Defaults(t *testing.T) {
	o := NewOutdoors()
	if !o.SunExposure() || !o.WindExposure() {
		t.Error("Outdoors should default to sun and wind exposed")
	}
	if !o.ViewFactor().IsAutocalculate() {
		t.Error("Outdoors view factor should default to autocalculate")
	}
}

func TestViewFactor_Range(t *testing.T) {
	if _, err := NewViewFactor(0.5); err != nil {
		t.Errorf("0.5 should be a valid view factor: %v", err)
	}
	if _, err := NewViewFactor(0); err != nil {
		t.Errorf("0 should be a valid view factor: %v", err)
	}
	if _, err := NewViewFactor(1); err != nil {
		t.Errorf("1 should be a valid view factor: %v", err)
	}
	if _, err := NewViewFactor(1.2); err == nil {
		t.Error("1.2 should be rejected")
	}
	if _, err := NewViewFactor(-0.1); err == nil {
		t.Error("-0.1 should be rejected")
	}
}

func TestViewFactor_SentinelDistinctFromZero(t *testing.T) {
	zero, _ := NewViewFactor(0)
	if zero.IsAutocalculate() {
		t.Error("numeric zero must not equal the autocalculate sentinel")
	}
	if zero == Autocalculate() {
		t.Error("numeric zero compares equal to the sentinel")
	}
}

func TestOutdoors_DictRoundTrip(t *testing.T) {
	vf, _ := NewViewFactor(0.25)
	cases := []struct {
		name string
		bc   *Outdoors
	}{
		{"defaults", NewOutdoors()},
		{"no sun", NewOutdoorsWith(false, true, Autocalculate())},
		{"numeric view factor", NewOutdoorsWith(true, false, vf)},
	}
	for _, tc := range cases {
		d := tc.bc.ToDict(true)
		back, err := OutdoorsFromDict(d)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !Equal(tc.bc, back) {
			t.Errorf("%s: round trip mismatch: %+v vs %+v", tc.name, tc.bc, back)
		}
	}
}

func TestOutdoors_AbridgedDict(t *testing.T) {
	d := NewOutdoors().ToDict(false)
	if d.Type != "Outdoors" {
		t.Errorf("type = %q", d.Type)
	}
	if d.SunExposure != nil || d.WindExposure != nil || d.ViewFactor != nil {
		t.Error("abridged dict must carry only the type")
	}
}

func TestOutdoorsFromDict_TypeMismatch(t *testing.T) {
	_, err := OutdoorsFromDict(Dict{Type: "Ground"})
	if err == nil {
		t.Fatal("expected type mismatch error")
	}
	var tm *TypeMismatchError
	if !errorsAs(err, &tm) {
		t.Fatalf("expected TypeMismatchError, got %T", err)
	}
	if tm.Expected != "Outdoors" || tm.Actual != "Ground" {
		t.Errorf("mismatch detail = %+v", tm)
	}
}

// errorsAs avoids importing errors just for one assertion.
func errorsAs(err error, target **TypeMismatchError) bool {
	tm, ok := err.(*TypeMismatchError)
	if ok {
		*target = tm
	}
	return ok
}

func TestSurface_Arity(t *testing.T) {
	if _, err := NewSurface([]string{"other_face", "other_room"}, false); err != nil {
		t.Errorf("2-tuple face surface rejected: %v", err)
	}
	if _, err := NewSurface([]string{"ap", "face", "room"}, true); err != nil {
		t.Errorf("3-tuple sub-face surface rejected: %v", err)
	}
	if _, err := NewSurface([]string{"a"}, false); err == nil {
		t.Error("1-tuple accepted for face surface")
	}
	if _, err := NewSurface([]string{"a", "b", "c"}, false); err == nil {
		t.Error("3-tuple accepted for face surface")
	}
	if _, err := NewSurface([]string{"a", "b"}, true); err == nil {
		t.Error("2-tuple accepted for sub-face surface")
	}
}

type fakeObject struct {
	id      string
	parents []string
}

func (f fakeObject) Identifier() string          { return f.id }
func (f fakeObject) ParentIdentifiers() []string { return f.parents }

func TestSurfaceFromObject_ParentDepth(t *testing.T) {
	attached := fakeObject{id: "face_1", parents: []string{"room_a"}}
	s, err := NewSurfaceFromObject(attached, false)
	if err != nil {
		t.Fatal(err)
	}
	objs := s.BoundaryConditionObjects()
	if objs[0] != "face_1" || objs[1] != "room_a" {
		t.Errorf("objects = %v", objs)
	}

	orphan := fakeObject{id: "face_1"}
	if _, err := NewSurfaceFromObject(orphan, false); err == nil {
		t.Error("orphan face accepted for face-level surface")
	}

	subFace := fakeObject{id: "ap_1", parents: []string{"face_1", "room_a"}}
	s3, err := NewSurfaceFromObject(subFace, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(s3.BoundaryConditionObjects()) != 3 {
		t.Errorf("objects = %v", s3.BoundaryConditionObjects())
	}
	// a face-attached sub-face with no room is too shallow for arity 3
	shallow := fakeObject{id: "ap_1", parents: []string{"face_1"}}
	if _, err := NewSurfaceFromObject(shallow, true); err == nil {
		t.Error("shallow parent chain accepted for sub-face surface")
	}
}

func TestSurface_DictRoundTrip(t *testing.T) {
	s2, _ := NewSurface([]string{"f", "r"}, false)
	d := s2.ToDict(true)
	back, err := SurfaceFromDict(d, false)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(s2, back) {
		t.Error("2-tuple surface round trip mismatch")
	}

	s3, _ := NewSurface([]string{"a", "f", "r"}, true)
	back3, err := SurfaceFromDict(s3.ToDict(false), true)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(s3, back3) {
		t.Error("3-tuple surface round trip mismatch")
	}

	// arity enforced on deserialization as well
	if _, err := SurfaceFromDict(s3.ToDict(false), false); err == nil {
		t.Error("3-tuple dict accepted for face context")
	}
}

func TestRegistry_ByName(t *testing.T) {
	for _, name := range []string{"Outdoors", "outdoors", " OUT DOORS ", "out_doors"} {
		c, err := ByName(name)
		if err != nil {
			t.Errorf("ByName(%q): %v", name, err)
			continue
		}
		if c.Name() != "Outdoors" {
			t.Errorf("ByName(%q) = %s", name, c.Name())
		}
	}
	if c, err := ByName("ground"); err != nil || c.Name() != "Ground" {
		t.Errorf("ground lookup: %v, %v", c, err)
	}
}

func TestRegistry_RejectsSurfaceAndUnknown(t *testing.T) {
	if _, err := ByName("Surface"); err == nil {
		t.Error("Surface lookup should fail")
	} else if !strings.Contains(err.Error(), "constructor arguments") {
		t.Errorf("unhelpful error: %v", err)
	}
	_, err := ByName("Bogus")
	if err == nil {
		t.Fatal("unknown name accepted")
	}
	if !strings.Contains(err.Error(), "Ground") || !strings.Contains(err.Error(), "Outdoors") {
		t.Errorf("error should enumerate valid choices, got: %v", err)
	}
}

func TestRegistry_HostVariant(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterGeneric("Adiabatic"); err != nil {
		t.Fatal(err)
	}
	c, err := r.ByName("adiabatic")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name() != "Adiabatic" {
		t.Errorf("name = %s", c.Name())
	}
	if c.SunExposure() || c.WindExposure() {
		t.Error("generic variants carry no exposure")
	}
	if d := c.ToDict(true); d.Type != "Adiabatic" || d.SunExposure != nil {
		t.Errorf("generic dict = %+v", d)
	}
	// duplicate registration, however spelled, is rejected
	if err := r.RegisterGeneric("ADIA_BATIC"); err == nil {
		t.Error("duplicate normalized name accepted")
	}
}

func TestFromDict_Dispatch(t *testing.T) {
	o, err := FromDict(NewOutdoors().ToDict(true), false)
	if err != nil || o.Name() != "Outdoors" {
		t.Errorf("outdoors dispatch: %v %v", o, err)
	}
	g, err := FromDict(Dict{Type: "Ground"}, false)
	if err != nil || g.Name() != "Ground" {
		t.Errorf("ground dispatch: %v %v", g, err)
	}
	s, _ := NewSurface([]string{"f", "r"}, false)
	got, err := FromDict(s.ToDict(false), false)
	if err != nil || !Equal(s, got) {
		t.Errorf("surface dispatch: %v %v", got, err)
	}
	if _, err := FromDict(Dict{Type: "Nonsense"}, false); err == nil {
		t.Error("unknown type dispatched")
	}
}

func TestEqual_Structural(t *testing.T) {
	if !Equal(NewOutdoors(), NewOutdoors()) {
		t.Error("identical Outdoors not equal")
	}
	if Equal(NewOutdoors(), NewOutdoorsWith(false, true, Autocalculate())) {
		t.Error("different exposure compared equal")
	}
	if Equal(NewOutdoors(), NewGround()) {
		t.Error("different variants compared equal")
	}
	a, _ := NewSurface([]string{"f", "r"}, false)
	b, _ := NewSurface([]string{"f", "r"}, false)
	c, _ := NewSurface([]string{"g", "r"}, false)
	if !Equal(a, b) {
		t.Error("identical surfaces not equal")
	}
	if Equal(a, c) {
		t.Error("different surfaces compared equal")
	}
}
