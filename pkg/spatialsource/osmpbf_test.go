package spatialsource

import (
	"context"
	"testing"

	"github.com/paulmach/osm"
	"github.com/railmapper/railpath/pkg/geo"
	"github.com/railmapper/railpath/pkg/util"
)

func TestAssembleKeepsNodeAtOrigin(t *testing.T) {
	p := NewOSMRailwayParser(testLogger(t))

	way := &osm.Way{ID: 7, Nodes: osm.WayNodes{{ID: 1}, {ID: 2}}}
	nodeCoords := map[osm.NodeID]geo.Coordinate{
		1: geo.NewCoordinate(0, 0),
		2: geo.NewCoordinate(0, 1),
	}

	source, skipped := p.assemble([]*osm.Way{way}, nodeCoords, nil)
	if skipped != 0 {
		t.Fatalf("skipped = %d, a resolved node at (0, 0) must not drop its way", skipped)
	}

	got, err := source.SegmentByID(context.Background(), "7")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got.StartPoint() != geo.NewCoordinate(0, 0) {
		t.Errorf("start = %v, want the origin vertex", got.StartPoint())
	}
}

func TestAssembleDropsWayWithUnresolvedNode(t *testing.T) {
	p := NewOSMRailwayParser(testLogger(t))

	way := &osm.Way{ID: 8, Nodes: osm.WayNodes{{ID: 1}, {ID: 99}}}
	nodeCoords := map[osm.NodeID]geo.Coordinate{
		1: geo.NewCoordinate(10, 10),
	}

	source, skipped := p.assemble([]*osm.Way{way}, nodeCoords, nil)
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	_, err := source.SegmentByID(context.Background(), "8")
	if util.ErrCode(err) != util.ErrNotFound {
		t.Errorf("incomplete way must not be loaded, got %v", err)
	}
}
