package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/envelopekit/envelope/pkg/geometry"
)

// FaceType classifies a face by its role in the enclosure.
type FaceType int

const (
	Wall FaceType = iota
	RoofCeiling
	Floor
	AirBoundary
)

func (t FaceType) String() string {
	switch t {
	case Wall:
		return "Wall"
	case RoofCeiling:
		return "RoofCeiling"
	case Floor:
		return "Floor"
	case AirBoundary:
		return "AirBoundary"
	default:
		return "unknown"
	}
}

// FaceTypeByName resolves a free-form name to a FaceType, normalizing case,
// whitespace and underscores the same way boundary-condition lookup does.
func FaceTypeByName(name string) (FaceType, error) {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "_", "")
	switch key {
	case "wall":
		return Wall, nil
	case "roofceiling", "roof", "ceiling":
		return RoofCeiling, nil
	case "floor":
		return Floor, nil
	case "airboundary":
		return AirBoundary, nil
	}
	return Wall, fmt.Errorf("model: unknown face type %q, choose from: Wall, RoofCeiling, Floor, AirBoundary", name)
}

// Angles from vertical, in degrees, bounding the RoofCeiling and Floor
// classifications. Between the two a face is a Wall.
const (
	roofAngle  = 30.0
	floorAngle = 150.0
)

// TypeFromNormal classifies a face by the angle its normal makes with the
// upward vertical: within 30 degrees of up is RoofCeiling, within 30 degrees
// of down is Floor, anything else is Wall.
func TypeFromNormal(normal geometry.Vector3D) FaceType {
	angle := geometry.AngleBetween(normal, geometry.ZAxis()) * 180 / math.Pi
	switch {
	case angle < roofAngle:
		return RoofCeiling
	case angle > floorAngle:
		return Floor
	default:
		return Wall
	}
}
