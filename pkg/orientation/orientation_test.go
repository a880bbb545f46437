package orientation

import (
	"math"
	"testing"

	"github.com/envelopekit/envelope/pkg/geometry"
	"github.com/envelopekit/envelope/pkg/model"
)

func TestAnglesFromOrientationCount(t *testing.T) {
	angles, err := AnglesFromOrientationCount(4)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{45, 135, 225, 315}
	if len(angles) != len(want) {
		t.Fatalf("angles = %v", angles)
	}
	for i := range want {
		if math.Abs(angles[i]-want[i]) > 1e-9 {
			t.Errorf("angles[%d] = %g, want %g", i, angles[i], want[i])
		}
	}
	if _, err := AnglesFromOrientationCount(0); err == nil {
		t.Error("zero count accepted")
	}
}

func TestBucketIndex(t *testing.T) {
	angles, _ := AnglesFromOrientationCount(4)
	cases := []struct {
		orientation float64
		want        int
	}{
		{0, 0},
		{44.9, 0},
		{45, 1},
		{90, 1},
		{134.9, 1},
		{180, 2},
		{270, 3},
		{314.9, 3},
		{315, 0},
		{359.9, 0},
	}
	for _, tc := range cases {
		if got := BucketIndex(tc.orientation, angles); got != tc.want {
			t.Errorf("BucketIndex(%g) = %d, want %d", tc.orientation, got, tc.want)
		}
	}
}

func TestFaceBucketIndex(t *testing.T) {
	r, err := model.NewRoomFromBox("box", 1, 1, 1, 0, geometry.Point3D{})
	if err != nil {
		t.Fatal(err)
	}
	angles, _ := AnglesFromOrientationCount(4)
	cases := []struct {
		face string
		want int
	}{
		{"box_Front", 2}, // south
		{"box_Right", 1}, // east
		{"box_Back", 0},  // north
		{"box_Left", 3},  // west
	}
	for _, tc := range cases {
		idx, ok := FaceBucketIndex(r.FaceByIdentifier(tc.face), angles, geometry.North())
		if !ok {
			t.Errorf("%s: no bucket", tc.face)
			continue
		}
		if idx != tc.want {
			t.Errorf("%s: bucket = %d, want %d", tc.face, idx, tc.want)
		}
	}
	if _, ok := FaceBucketIndex(r.FaceByIdentifier("box_Top"), angles, geometry.North()); ok {
		t.Error("horizontal face got a bucket")
	}
}

func TestCheckMatchingInputs(t *testing.T) {
	ratios := []float64{0.4}
	depths := []float64{1, 2, 3, 4}
	out, err := CheckMatchingInputs([][]float64{ratios, depths}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(out[0]) != 4 || out[0][2] != 0.4 {
		t.Errorf("broadcast = %v", out[0])
	}
	if len(out[1]) != 4 || out[1][2] != 3 {
		t.Errorf("full list altered: %v", out[1])
	}

	if _, err := CheckMatchingInputs([][]float64{{1, 2}}, 4); err == nil {
		t.Error("length-2 list accepted for 4 buckets")
	}
}

func TestInputsByIndex(t *testing.T) {
	out, err := CheckMatchingInputs([][]string{{"a"}, {"w", "x", "y", "z"}}, 4)
	if err != nil {
		t.Fatal(err)
	}
	picked, err := InputsByIndex(out, 2)
	if err != nil {
		t.Fatal(err)
	}
	if picked[0] != "a" || picked[1] != "y" {
		t.Errorf("picked = %v", picked)
	}
	if _, err := InputsByIndex(out, 9); err == nil {
		t.Error("out-of-range index accepted")
	}
}
