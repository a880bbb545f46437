// Package orientation buckets faces into compass sectors so per-direction
// properties like window ratios can be assigned from short parallel lists.
package orientation

import (
	"fmt"

	"github.com/envelopekit/envelope/pkg/geometry"
)

// Oriented is anything with a horizontal compass orientation. ok is false
// for horizontal geometry, which belongs to no compass bucket.
type Oriented interface {
	HorizontalOrientation(north geometry.Vector2D) (float64, bool)
}

// AnglesFromOrientationCount returns count boundary angles in clockwise
// degrees from north, evenly spaced starting at 360/count/2. Each angle is
// the upper edge of a bucket; bucket 0 wraps around north, spanning from
// the last boundary through the first.
func AnglesFromOrientationCount(count int) ([]float64, error) {
	if count < 1 {
		return nil, fmt.Errorf("orientation: count must be at least 1, got %d", count)
	}
	step := 360.0 / float64(count)
	angles := make([]float64, count)
	for i := range angles {
		angles[i] = step/2 + step*float64(i)
	}
	return angles, nil
}

// BucketIndex returns the index of the first boundary angle that exceeds
// orientation. An orientation at or past the last boundary wraps around to
// bucket 0.
func BucketIndex(orientation float64, angles []float64) int {
	for i, a := range angles {
		if orientation < a {
			return i
		}
	}
	return 0
}

// FaceBucketIndex buckets a face by its compass orientation relative to
// north. ok is false for horizontal faces such as floors and roofs.
func FaceBucketIndex(f Oriented, angles []float64, north geometry.Vector2D) (int, bool) {
	orient, ok := f.HorizontalOrientation(north)
	if !ok {
		return 0, false
	}
	return BucketIndex(orient, angles), true
}

// CheckMatchingInputs validates parallel per-orientation value lists
// against a bucket count. A single-element list broadcasts to every
// bucket; any other length must equal count exactly.
func CheckMatchingInputs[T any](inputs [][]T, count int) ([][]T, error) {
	if count < 1 {
		return nil, fmt.Errorf("orientation: bucket count must be at least 1, got %d", count)
	}
	out := make([][]T, len(inputs))
	for i, list := range inputs {
		switch len(list) {
		case count:
			out[i] = list
		case 1:
			expanded := make([]T, count)
			for j := range expanded {
				expanded[j] = list[0]
			}
			out[i] = expanded
		default:
			return nil, fmt.Errorf("orientation: input %d has %d values, want 1 or %d",
				i, len(list), count)
		}
	}
	return out, nil
}

// InputsByIndex picks the bucket-index element from each broadcast list,
// giving the property set to apply to one compass sector.
func InputsByIndex[T any](inputs [][]T, index int) ([]T, error) {
	out := make([]T, len(inputs))
	for i, list := range inputs {
		if index < 0 || index >= len(list) {
			return nil, fmt.Errorf("orientation: index %d out of range for input %d of length %d",
				index, i, len(list))
		}
		out[i] = list[index]
	}
	return out, nil
}
