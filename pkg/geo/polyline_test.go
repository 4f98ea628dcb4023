package geo

import (
	"math"
	"testing"

	gopolyline "github.com/twpayne/go-polyline"
)

func TestPolylineFromCoords(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(38.5, -120.2),
		NewCoordinate(40.7, -120.95),
		NewCoordinate(43.252, -126.453),
	}

	encoded := PolylineFromCoords(coords)
	decoded, _, err := gopolyline.DecodeCoords([]byte(encoded))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(decoded) != len(coords) {
		t.Fatalf("decoded %d points, want %d", len(decoded), len(coords))
	}
	for i, c := range coords {
		if math.Abs(decoded[i][0]-c.Lat) > 1e-5 || math.Abs(decoded[i][1]-c.Lon) > 1e-5 {
			t.Errorf("point %d = %v, want (%f, %f)", i, decoded[i], c.Lat, c.Lon)
		}
	}
}
