package datastructure

import (
	"testing"

	"github.com/railmapper/railpath/pkg/geo"
)

func TestCoordKeyQuantization(t *testing.T) {
	testCases := []struct {
		name      string
		a, b      geo.Coordinate
		wantEqual bool
	}{
		{
			name:      "float jitter below precision compares equal",
			a:         geo.NewCoordinate(52.5200000, 13.4050000),
			b:         geo.NewCoordinate(52.5200000000004, 13.4049999999996),
			wantEqual: true,
		},
		{
			name:      "difference at precision stays distinct",
			a:         geo.NewCoordinate(52.5200000, 13.4050000),
			b:         geo.NewCoordinate(52.5200010, 13.4050000),
			wantEqual: false,
		},
		{
			name:      "negative coordinates",
			a:         geo.NewCoordinate(-33.8688197, 151.2092955),
			b:         geo.NewCoordinate(-33.8688197, 151.2092955),
			wantEqual: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := CoordKey(tt.a) == CoordKey(tt.b)
			if got != tt.wantEqual {
				t.Errorf("CoordKey(%v) == CoordKey(%v): got %v, want %v, keys %q vs %q",
					tt.a, tt.b, got, tt.wantEqual, CoordKey(tt.a), CoordKey(tt.b))
			}
		})
	}
}

func TestNewTrackSegmentRejectsDegeneratePolyline(t *testing.T) {
	if _, err := NewTrackSegment("1", []geo.Coordinate{geo.NewCoordinate(0, 0)}); err == nil {
		t.Error("expected error for single-vertex polyline")
	}
	if _, err := NewTrackSegment("1", nil); err == nil {
		t.Error("expected error for empty polyline")
	}
}

func TestTrackSegmentEndpointKeys(t *testing.T) {
	seg, err := NewTrackSegment("7", []geo.Coordinate{
		geo.NewCoordinate(0, 0),
		geo.NewCoordinate(0, 1),
		geo.NewCoordinate(1, 1),
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	start, end := seg.StartKey(), seg.EndKey()
	if start == end {
		t.Fatal("open segment must have distinct endpoint keys")
	}
	if !seg.TouchesKey(start) || !seg.TouchesKey(end) {
		t.Error("segment must touch both of its endpoint keys")
	}
	if seg.TouchesKey(CoordKey(geo.NewCoordinate(0, 1))) {
		t.Error("interior vertex must not count as an endpoint")
	}
	if seg.OtherEndKey(start) != end || seg.OtherEndKey(end) != start {
		t.Error("OtherEndKey must swap the two endpoints")
	}
}

func TestTrackSegmentLoopCollapsesEndpoints(t *testing.T) {
	loop, err := NewTrackSegment("9", []geo.Coordinate{
		geo.NewCoordinate(0, 0),
		geo.NewCoordinate(0, 1),
		geo.NewCoordinate(1, 1),
		geo.NewCoordinate(0, 0),
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if loop.StartKey() != loop.EndKey() {
		t.Fatal("closed loop endpoints must collapse to one key")
	}
	if loop.OtherEndKey(loop.StartKey()) != loop.StartKey() {
		t.Error("OtherEndKey on a loop must return the same key")
	}
}

func TestRailRouteStations(t *testing.T) {
	r, err := NewRailRoute("12", "Alpha", "Bravo", []geo.Coordinate{
		geo.NewCoordinate(0, 0),
		geo.NewCoordinate(0, 1),
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if !r.TouchesStation("Alpha") || !r.TouchesStation("Bravo") {
		t.Error("route must touch both of its stations")
	}
	// matching is exact, no normalization
	if r.TouchesStation("alpha") || r.TouchesStation("Alpha ") {
		t.Error("station matching must be exact and case sensitive")
	}
	if r.OtherStation("Alpha") != "Bravo" || r.OtherStation("Bravo") != "Alpha" {
		t.Error("OtherStation must swap the two stations")
	}
}
