package adjacency

import (
	"testing"

	"github.com/envelopekit/envelope/pkg/boundary"
	"github.com/envelopekit/envelope/pkg/geometry"
	"github.com/envelopekit/envelope/pkg/model"
)

const tol = 0.01

func boxRoom(t *testing.T, id string, origin geometry.Point3D) *model.Room {
	t.Helper()
	r, err := model.NewRoomFromBox(id, 1, 1, 1, 0, origin)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func surfaceObjects(t *testing.T, f *model.Face) []string {
	t.Helper()
	s, ok := f.BoundaryCondition().(*boundary.Surface)
	if !ok {
		t.Fatalf("face %q bc = %s, want Surface", f.Identifier(), f.BoundaryCondition().Name())
	}
	return s.BoundaryConditionObjects()
}

func TestSolve_TwoCubesShareOneFace(t *testing.T) {
	a := boxRoom(t, "room_a", geometry.Point3D{})
	b := boxRoom(t, "room_b", geometry.Point3D{X: 1})
	result, err := Solve([]*model.Room{a, b}, Options{Tolerance: tol})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Faces) != 1 {
		t.Fatalf("paired %d faces, want 1", len(result.Faces))
	}

	right := a.FaceByIdentifier("room_a_Right")
	left := b.FaceByIdentifier("room_b_Left")
	objs := surfaceObjects(t, right)
	if objs[0] != "room_b_Left" || objs[1] != "room_b" {
		t.Errorf("room_a_Right references %v", objs)
	}
	objs = surfaceObjects(t, left)
	if objs[0] != "room_a_Right" || objs[1] != "room_a" {
		t.Errorf("room_b_Left references %v", objs)
	}

	// every other face keeps its prior condition
	for _, r := range []*model.Room{a, b} {
		for _, f := range r.Faces() {
			if f == right || f == left {
				continue
			}
			name := f.BoundaryCondition().Name()
			if name != "Outdoors" && name != "Ground" {
				t.Errorf("face %q bc = %s", f.Identifier(), name)
			}
		}
	}
}

func TestSolve_DistantRoomsUntouched(t *testing.T) {
	a := boxRoom(t, "far_a", geometry.Point3D{})
	b := boxRoom(t, "far_b", geometry.Point3D{X: 10})
	result, err := Solve([]*model.Room{a, b}, Options{Tolerance: tol})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Faces) != 0 {
		t.Errorf("paired %d faces across a 9-unit gap", len(result.Faces))
	}
}

func TestSolve_PairsApertures(t *testing.T) {
	a := boxRoom(t, "apt_a", geometry.Point3D{})
	b := boxRoom(t, "apt_b", geometry.Point3D{X: 1})
	winGeo := mustFace(t, []geometry.Point3D{
		{X: 1, Y: 0.25, Z: 0.25}, {X: 1, Y: 0.75, Z: 0.25},
		{X: 1, Y: 0.75, Z: 0.75}, {X: 1, Y: 0.25, Z: 0.75},
	})
	wa, err := model.NewAperture("win_a", winGeo)
	if err != nil {
		t.Fatal(err)
	}
	wb, err := model.NewAperture("win_b", winGeo.Flip())
	if err != nil {
		t.Fatal(err)
	}
	if err := a.FaceByIdentifier("apt_a_Right").AddAperture(wa); err != nil {
		t.Fatal(err)
	}
	if err := b.FaceByIdentifier("apt_b_Left").AddAperture(wb); err != nil {
		t.Fatal(err)
	}

	result, err := Solve([]*model.Room{a, b}, Options{Tolerance: tol})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Apertures) != 1 {
		t.Fatalf("paired %d apertures, want 1", len(result.Apertures))
	}
	if len(result.SubFaceMismatches) != 0 {
		t.Errorf("unexpected mismatches: %v", result.SubFaceMismatches)
	}
	s := wa.BoundaryCondition().(*boundary.Surface)
	objs := s.BoundaryConditionObjects()
	if len(objs) != 3 || objs[0] != "win_b" {
		t.Errorf("aperture references %v", objs)
	}
}

func TestSolve_ReportsSubFaceMismatch(t *testing.T) {
	a := boxRoom(t, "mis_a", geometry.Point3D{})
	b := boxRoom(t, "mis_b", geometry.Point3D{X: 1})
	winGeo := mustFace(t, []geometry.Point3D{
		{X: 1, Y: 0.25, Z: 0.25}, {X: 1, Y: 0.75, Z: 0.25},
		{X: 1, Y: 0.75, Z: 0.75}, {X: 1, Y: 0.25, Z: 0.75},
	})
	wa, _ := model.NewAperture("solo_win", winGeo)
	if err := a.FaceByIdentifier("mis_a_Right").AddAperture(wa); err != nil {
		t.Fatal(err)
	}

	result, err := Solve([]*model.Room{a, b}, Options{Tolerance: tol})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Faces) != 1 {
		t.Fatalf("paired %d faces", len(result.Faces))
	}
	if len(result.SubFaceMismatches) != 1 {
		t.Errorf("mismatches = %v", result.SubFaceMismatches)
	}
	// the unmatched aperture keeps its prior condition
	if wa.BoundaryCondition().Name() != "Outdoors" {
		t.Errorf("solo aperture bc = %s", wa.BoundaryCondition().Name())
	}
}

func TestSolve_DeterministicTieBreak(t *testing.T) {
	// rooms b and c both present a coincident face to room a's right wall
	build := func() []*model.Room {
		a := boxRoom(t, "zone_a", geometry.Point3D{})
		b := boxRoom(t, "zone_b", geometry.Point3D{X: 1})
		c := boxRoom(t, "zone_c", geometry.Point3D{X: 1})
		return []*model.Room{c, b, a}
	}
	var first []string
	for run := 0; run < 3; run++ {
		rooms := build()
		result, err := Solve(rooms, Options{Tolerance: tol})
		if err != nil {
			t.Fatal(err)
		}
		var ids []string
		for _, pair := range result.Faces {
			ids = append(ids, pair[0].Identifier(), pair[1].Identifier())
		}
		if run == 0 {
			first = ids
			// lowest room identifier wins: zone_a pairs before zone_b
			objs := surfaceObjects(t, rooms[2].FaceByIdentifier("zone_a_Right"))
			if objs[1] != "zone_b" {
				t.Errorf("zone_a_Right partnered with %v, want zone_b", objs)
			}
			continue
		}
		if len(ids) != len(first) {
			t.Fatalf("run %d paired %d ids, first run paired %d", run, len(ids), len(first))
		}
		for i := range ids {
			if ids[i] != first[i] {
				t.Errorf("run %d differs at %d: %s vs %s", run, i, ids[i], first[i])
			}
		}
	}
}

func TestSolve_SkipsExistingSurfaces(t *testing.T) {
	a := boxRoom(t, "pre_a", geometry.Point3D{})
	b := boxRoom(t, "pre_b", geometry.Point3D{X: 1})
	fa := a.FaceByIdentifier("pre_a_Right")
	fb := b.FaceByIdentifier("pre_b_Left")
	if _, err := fa.SetAdjacency(fb, tol); err != nil {
		t.Fatal(err)
	}
	result, err := Solve([]*model.Room{a, b}, Options{Tolerance: tol})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Faces) != 0 {
		t.Errorf("re-paired %d already adjacent faces", len(result.Faces))
	}
}

func TestSolve_ParallelWorkersMatchSerial(t *testing.T) {
	build := func() []*model.Room {
		var rooms []*model.Room
		for i := 0; i < 4; i++ {
			rooms = append(rooms, boxRoom(t, "row_"+string(rune('a'+i)),
				geometry.Point3D{X: float64(i)}))
		}
		return rooms
	}
	serial, err := Solve(build(), Options{Tolerance: tol, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := Solve(build(), Options{Tolerance: tol, Workers: 8})
	if err != nil {
		t.Fatal(err)
	}
	if len(serial.Faces) != 3 || len(parallel.Faces) != len(serial.Faces) {
		t.Fatalf("serial paired %d, parallel paired %d, want 3", len(serial.Faces), len(parallel.Faces))
	}
	for i := range serial.Faces {
		if serial.Faces[i][0].Identifier() != parallel.Faces[i][0].Identifier() {
			t.Errorf("pair %d differs: %s vs %s", i,
				serial.Faces[i][0].Identifier(), parallel.Faces[i][0].Identifier())
		}
	}
}

func TestSolve_RejectsBadTolerance(t *testing.T) {
	if _, err := Solve(nil, Options{Tolerance: 0}); err == nil {
		t.Error("zero tolerance accepted")
	}
}

func mustFace(t *testing.T, pts []geometry.Point3D) *geometry.Face3D {
	t.Helper()
	f, err := geometry.NewFace3D(pts)
	if err != nil {
		t.Fatal(err)
	}
	return f
}
