package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/envelopekit/envelope/pkg/geometry"
)

// ValidationError represents a single geometry validation failure. Checks
// return them structured so hosts can report per-face detail; callers that
// only need pass/fail use the Is… twins.
type ValidationError struct {
	Code        string
	Message     string
	ObjectID    string
	FaceIndexes []int
}

func (e ValidationError) Error() string {
	context := ""
	if e.ObjectID != "" {
		context = fmt.Sprintf(" (room: %s)", e.ObjectID)
	}
	if len(e.FaceIndexes) > 0 {
		context += fmt.Sprintf(" (faces: %v)", e.FaceIndexes)
	}
	return fmt.Sprintf("%s: %s%s", e.Code, e.Message, context)
}

// CheckSolid verifies the room's faces enclose a volume with no naked edges
// larger than tolerance and no non-manifold edges. Edges meeting within
// angleTolerance degrees of each other's direction are treated as shared.
func (r *Room) CheckSolid(tolerance, angleTolerance float64) []ValidationError {
	pf := r.polyface(tolerance, angleTolerance)
	var errors []ValidationError
	if naked := pf.NakedEdges(); len(naked) > 0 {
		errors = append(errors, ValidationError{
			Code:        "ROOM_NOT_CLOSED",
			Message:     fmt.Sprintf("Room geometry has %d naked edges", len(naked)),
			ObjectID:    r.identifier,
			FaceIndexes: edgeFaceIndexes(naked),
		})
	}
	if nm := pf.NonManifoldEdges(); len(nm) > 0 {
		errors = append(errors, ValidationError{
			Code:        "ROOM_NON_MANIFOLD",
			Message:     fmt.Sprintf("Room geometry has %d non-manifold edges", len(nm)),
			ObjectID:    r.identifier,
			FaceIndexes: edgeFaceIndexes(nm),
		})
	}
	return errors
}

// IsSolid reports whether CheckSolid finds no failures.
func (r *Room) IsSolid(tolerance, angleTolerance float64) bool {
	return len(r.CheckSolid(tolerance, angleTolerance)) == 0
}

// CheckPlanar verifies every face's vertices lie within tolerance of the
// face's plane.
func (r *Room) CheckPlanar(tolerance float64) []ValidationError {
	var errors []ValidationError
	for i, f := range r.faces {
		if !f.Geometry().IsPlanar(tolerance) {
			errors = append(errors, ValidationError{
				Code: "FACE_NOT_PLANAR",
				Message: fmt.Sprintf("Face %q deviates %g from its plane",
					f.Identifier(), f.Geometry().MaxPlanarityDeviation()),
				ObjectID:    r.identifier,
				FaceIndexes: []int{i},
			})
		}
	}
	return errors
}

// IsPlanar reports whether CheckPlanar finds no failures.
func (r *Room) IsPlanar(tolerance float64) bool {
	return len(r.CheckPlanar(tolerance)) == 0
}

// CheckSelfIntersecting verifies no face's boundary crosses itself.
func (r *Room) CheckSelfIntersecting(tolerance float64) []ValidationError {
	var errors []ValidationError
	for i, f := range r.faces {
		if f.Geometry().IsSelfIntersecting(tolerance) {
			errors = append(errors, ValidationError{
				Code:        "FACE_SELF_INTERSECTING",
				Message:     fmt.Sprintf("Face %q boundary crosses itself", f.Identifier()),
				ObjectID:    r.identifier,
				FaceIndexes: []int{i},
			})
		}
	}
	return errors
}

// IsSelfIntersecting reports whether any face fails CheckSelfIntersecting.
func (r *Room) IsSelfIntersecting(tolerance float64) bool {
	return len(r.CheckSelfIntersecting(tolerance)) > 0
}

// CheckNonZero verifies every face's area exceeds minArea, catching sliver
// faces produced by upstream geometry generation.
func (r *Room) CheckNonZero(minArea float64) []ValidationError {
	var errors []ValidationError
	for i, f := range r.faces {
		if area := f.Area(); area < minArea {
			errors = append(errors, ValidationError{
				Code: "FACE_ZERO_AREA",
				Message: fmt.Sprintf("Face %q area %g is below the minimum %g",
					f.Identifier(), area, minArea),
				ObjectID:    r.identifier,
				FaceIndexes: []int{i},
			})
		}
	}
	return errors
}

// IsNonZero reports whether CheckNonZero finds no failures.
func (r *Room) IsNonZero(minArea float64) bool {
	return len(r.CheckNonZero(minArea)) == 0
}

// CheckSubFacesValid verifies every aperture and door is coplanar with and
// bounded by its parent face.
func (r *Room) CheckSubFacesValid(tolerance, angleTolerance float64) []ValidationError {
	angleRad := angleTolerance * math.Pi / 180
	var errors []ValidationError
	for i, f := range r.faces {
		for _, a := range f.Apertures() {
			if !f.Geometry().IsSubFace(a.Geometry(), tolerance, angleRad) {
				errors = append(errors, ValidationError{
					Code: "SUBFACE_OUTSIDE_PARENT",
					Message: fmt.Sprintf("Aperture %q does not lie within face %q",
						a.Identifier(), f.Identifier()),
					ObjectID:    r.identifier,
					FaceIndexes: []int{i},
				})
			}
		}
		for _, d := range f.Doors() {
			if !f.Geometry().IsSubFace(d.Geometry(), tolerance, angleRad) {
				errors = append(errors, ValidationError{
					Code: "SUBFACE_OUTSIDE_PARENT",
					Message: fmt.Sprintf("Door %q does not lie within face %q",
						d.Identifier(), f.Identifier()),
					ObjectID:    r.identifier,
					FaceIndexes: []int{i},
				})
			}
		}
	}
	return errors
}

// Validate runs every room-level check with shared tolerances. minArea for
// the non-zero check is derived as tolerance squared.
func (r *Room) Validate(tolerance, angleTolerance float64) []ValidationError {
	var errors []ValidationError
	errors = append(errors, r.CheckPlanar(tolerance)...)
	errors = append(errors, r.CheckSelfIntersecting(tolerance)...)
	errors = append(errors, r.CheckNonZero(tolerance*tolerance)...)
	errors = append(errors, r.CheckSolid(tolerance, angleTolerance)...)
	errors = append(errors, r.CheckSubFacesValid(tolerance, angleTolerance)...)
	return errors
}

// edgeFaceIndexes collects the distinct face indexes touching the edges,
// in ascending order.
func edgeFaceIndexes(edges []geometry.EdgeSegment) []int {
	seen := map[int]bool{}
	var out []int
	for _, e := range edges {
		for _, idx := range e.FaceIndexes {
			if !seen[idx] {
				seen[idx] = true
				out = append(out, idx)
			}
		}
	}
	sort.Ints(out)
	return out
}
