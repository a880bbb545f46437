// Package adjacency finds coincident faces between rooms and rewrites their
// boundary conditions to mutual Surface references. Candidate pairs are
// pruned with an r-tree over tolerance-expanded bounding boxes before the
// exact coplanarity and overlap test runs.
package adjacency

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/envelopekit/envelope/pkg/boundary"
	"github.com/envelopekit/envelope/pkg/model"
)

// Options tunes a Solve run.
type Options struct {
	// Tolerance is the maximum distance between coincident faces.
	Tolerance float64
	// Workers bounds the goroutines running exact coincidence tests.
	// Zero means one per CPU.
	Workers int
}

// Result reports what Solve paired. Mutation already happened in place;
// the pairs are returned for host post-processing. SubFaceMismatches
// collects faces whose aperture or door counts could not be fully paired,
// reported rather than raised so one bad pair does not abort the run.
type Result struct {
	Faces             [][2]*model.Face
	Apertures         [][2]*model.Aperture
	Doors             [][2]*model.Door
	SubFaceMismatches []error
}

// candidate is one face eligible for matching.
type candidate struct {
	room    *model.Room
	roomIdx int
	face    *model.Face
	faceIdx int
	bounds  rtreego.Rect
}

func (c *candidate) Bounds() rtreego.Rect { return c.bounds }

// pair is an untested candidate pairing, ordered a before b.
type pair struct {
	a, b *candidate
}

// Solve mutates rooms in place, assigning mutual Surface conditions to
// every coincident face pair found across distinct rooms, then pairing
// coincident sub-faces within each matched pair. Faces that already carry
// a Surface condition are left untouched, as are faces with no partner.
func Solve(rooms []*model.Room, opts Options) (*Result, error) {
	if opts.Tolerance <= 0 {
		return nil, fmt.Errorf("adjacency: tolerance must be positive, got %g", opts.Tolerance)
	}

	candidates, tree, err := index(rooms, opts.Tolerance)
	if err != nil {
		return nil, err
	}
	pairs := prune(candidates, tree)
	matched := exactTest(pairs, opts.Tolerance, opts.Workers)
	return mutate(matched, opts.Tolerance)
}

// index builds the candidate list and the r-tree over expanded face boxes.
// Faces already adjacent to something are not candidates.
func index(rooms []*model.Room, tolerance float64) ([]*candidate, *rtreego.Rtree, error) {
	var candidates []*candidate
	tree := rtreego.NewTree(3, 4, 8)
	for ri, room := range rooms {
		for fi, face := range room.Faces() {
			if _, ok := face.BoundaryCondition().(*boundary.Surface); ok {
				continue
			}
			rect, err := expandedBounds(face, tolerance)
			if err != nil {
				return nil, nil, err
			}
			c := &candidate{room: room, roomIdx: ri, face: face, faceIdx: fi, bounds: rect}
			candidates = append(candidates, c)
			tree.Insert(c)
		}
	}
	return candidates, tree, nil
}

func expandedBounds(face *model.Face, tolerance float64) (rtreego.Rect, error) {
	lo := face.Geometry().Min()
	hi := face.Geometry().Max()
	point := rtreego.Point{lo.X - tolerance, lo.Y - tolerance, lo.Z - tolerance}
	lengths := []float64{
		hi.X - lo.X + 2*tolerance,
		hi.Y - lo.Y + 2*tolerance,
		hi.Z - lo.Z + 2*tolerance,
	}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return rtreego.Rect{}, fmt.Errorf("adjacency: face %q bounding box: %w", face.Identifier(), err)
	}
	return rect, nil
}

// prune queries the tree for box overlaps and keeps each cross-room pair
// once, ordered by candidate index.
func prune(candidates []*candidate, tree *rtreego.Rtree) []pair {
	order := make(map[*candidate]int, len(candidates))
	for i, c := range candidates {
		order[c] = i
	}
	var pairs []pair
	for i, c := range candidates {
		for _, hit := range tree.SearchIntersect(c.bounds) {
			other := hit.(*candidate)
			if other.roomIdx == c.roomIdx || order[other] <= i {
				continue
			}
			pairs = append(pairs, pair{a: c, b: other})
		}
	}
	return pairs
}

// exactTest runs the coincidence test across workers. Each worker writes
// only its own result slots, so no locking is needed.
func exactTest(pairs []pair, tolerance float64, workers int) []pair {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}
	hits := make([]bool, len(pairs))
	if workers <= 1 {
		for i, p := range pairs {
			hits[i] = p.a.face.Geometry().IsCoincident(p.b.face.Geometry(), tolerance)
		}
	} else {
		var wg sync.WaitGroup
		chunk := (len(pairs) + workers - 1) / workers
		for w := 0; w < workers; w++ {
			start := w * chunk
			end := start + chunk
			if end > len(pairs) {
				end = len(pairs)
			}
			wg.Add(1)
			go func(start, end int) {
				defer wg.Done()
				for i := start; i < end; i++ {
					p := pairs[i]
					hits[i] = p.a.face.Geometry().IsCoincident(p.b.face.Geometry(), tolerance)
				}
			}(start, end)
		}
		wg.Wait()
	}
	var matched []pair
	for i, p := range pairs {
		if hits[i] {
			matched = append(matched, p)
		}
	}
	return matched
}

// mutate applies Surface conditions serially in deterministic order. With
// overlapping or duplicated geometry a face can test coincident against
// faces from more than one room; sorting by room identifier then face
// index and claiming greedily picks one partner and never crashes.
func mutate(matched []pair, tolerance float64) (*Result, error) {
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.a.room.Identifier() != b.a.room.Identifier() {
			return a.a.room.Identifier() < b.a.room.Identifier()
		}
		if a.a.faceIdx != b.a.faceIdx {
			return a.a.faceIdx < b.a.faceIdx
		}
		if a.b.room.Identifier() != b.b.room.Identifier() {
			return a.b.room.Identifier() < b.b.room.Identifier()
		}
		return a.b.faceIdx < b.b.faceIdx
	})

	result := &Result{}
	claimed := make(map[*model.Face]bool)
	for _, p := range matched {
		if claimed[p.a.face] || claimed[p.b.face] {
			continue
		}
		info, err := p.a.face.SetAdjacency(p.b.face, tolerance)
		if err != nil {
			return nil, err
		}
		claimed[p.a.face] = true
		claimed[p.b.face] = true
		result.Faces = append(result.Faces, info.Faces)
		result.Apertures = append(result.Apertures, info.Apertures...)
		result.Doors = append(result.Doors, info.Doors...)
		if err := subFaceMismatch(info); err != nil {
			result.SubFaceMismatches = append(result.SubFaceMismatches, err)
		}
	}
	return result, nil
}

// subFaceMismatch reports when a matched face pair's sub-faces could not
// all be paired up.
func subFaceMismatch(info *model.AdjacencyInfo) error {
	a, b := info.Faces[0], info.Faces[1]
	if len(a.Apertures()) != len(info.Apertures) || len(b.Apertures()) != len(info.Apertures) {
		return fmt.Errorf("adjacency: faces %q and %q have %d and %d apertures but only %d pairs matched",
			a.Identifier(), b.Identifier(), len(a.Apertures()), len(b.Apertures()), len(info.Apertures))
	}
	if len(a.Doors()) != len(info.Doors) || len(b.Doors()) != len(info.Doors) {
		return fmt.Errorf("adjacency: faces %q and %q have %d and %d doors but only %d pairs matched",
			a.Identifier(), b.Identifier(), len(a.Doors()), len(b.Doors()), len(info.Doors))
	}
	return nil
}
