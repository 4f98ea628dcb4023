package segment

import (
	"reflect"
	"testing"

	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
)

func c(lat, lon float64) geo.Coordinate {
	return geo.NewCoordinate(lat, lon)
}

func mustSegment(t *testing.T, id string, coords ...geo.Coordinate) *datastructure.TrackSegment {
	t.Helper()
	seg, err := datastructure.NewTrackSegment(id, coords)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	return seg
}

func pathNodes(states []searchState) []string {
	out := make([]string, len(states))
	for i, st := range states {
		out[i] = st.node
	}
	return out
}

// straightLine is three segments laid end to end along the equator:
// (0,0)-(0,1), (0,1)-(0,2), (0,2)-(0,3).
func straightLine(t *testing.T) []*datastructure.TrackSegment {
	t.Helper()
	return []*datastructure.TrackSegment{
		mustSegment(t, "1", c(0, 0), c(0, 1)),
		mustSegment(t, "2", c(0, 1), c(0, 2)),
		mustSegment(t, "3", c(0, 2), c(0, 3)),
	}
}

func TestBuildConnectivityGraphAdjacency(t *testing.T) {
	g := buildConnectivityGraph(straightLine(t))

	if got := g.adjacency["1"]; !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("adjacency of 1 = %v, want [2]", got)
	}
	if got := g.adjacency["2"]; !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Errorf("adjacency of 2 = %v, want [1 3]", got)
	}
	if g.neighborsAt("2", g.segment("2").StartKey()) == nil {
		t.Error("neighbor through shared start endpoint missing")
	}
	// the far neighbor is not reachable without traversing the segment
	if got := g.neighborsAt("1", g.segment("1").StartKey()); got != nil {
		t.Errorf("neighborsAt free end = %v, want none", got)
	}
}

func TestShortestPathStraightLine(t *testing.T) {
	g := buildConnectivityGraph(straightLine(t))

	states := g.shortestPath("1", "3")
	if states == nil {
		t.Fatal("expected a path")
	}
	if got := pathNodes(states); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Errorf("path = %v, want [1 2 3]", got)
	}
	if g.hasBacktracking(states) {
		t.Error("straight line must not be flagged as backtracking")
	}
}

func TestShortestPathDeterministic(t *testing.T) {
	// two parallel middle branches of equal hop count; repeated runs must
	// pick the same one
	segs := []*datastructure.TrackSegment{
		mustSegment(t, "1", c(0, 0), c(0, 1)),
		mustSegment(t, "2", c(0, 1), c(0.3, 1.5), c(0, 2)),
		mustSegment(t, "4", c(0, 1), c(-0.3, 1.5), c(0, 2)),
		mustSegment(t, "3", c(0, 2), c(0, 3)),
	}

	first := pathNodes(buildConnectivityGraph(segs).shortestPath("1", "3"))
	for i := 0; i < 20; i++ {
		got := pathNodes(buildConnectivityGraph(segs).shortestPath("1", "3"))
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d picked %v, first run picked %v", i, got, first)
		}
	}
	if !reflect.DeepEqual(first, []string{"1", "2", "3"}) {
		t.Errorf("tie must break towards the smaller id, got %v", first)
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	segs := []*datastructure.TrackSegment{
		mustSegment(t, "1", c(0, 0), c(0, 1)),
		mustSegment(t, "2", c(5, 5), c(5, 6)),
	}
	if got := buildConnectivityGraph(segs).shortestPath("1", "2"); got != nil {
		t.Errorf("disconnected components must yield nil, got %v", got)
	}
}

func TestShortestPathSameSegment(t *testing.T) {
	g := buildConnectivityGraph(straightLine(t))
	states := g.shortestPath("2", "2")
	if len(states) != 1 || states[0].node != "2" {
		t.Errorf("same-segment path = %v, want single state on 2", states)
	}
}

func TestHasBacktrackingSpike(t *testing.T) {
	// the second segment leaves the junction straight back the way the
	// first one came in
	segs := []*datastructure.TrackSegment{
		mustSegment(t, "1", c(0, 0), c(0, 1)),
		mustSegment(t, "2", c(0, 1), c(0.0005, 0.5)),
	}
	g := buildConnectivityGraph(segs)

	states := g.shortestPath("1", "2")
	if states == nil {
		t.Fatal("expected a path")
	}
	if !g.hasBacktracking(states) {
		t.Error("near-180 degree reversal must be flagged")
	}
}

func TestHasBacktrackingDirectionIndependent(t *testing.T) {
	segs := []*datastructure.TrackSegment{
		mustSegment(t, "1", c(0, 0), c(0, 1)),
		mustSegment(t, "2", c(0, 1), c(0.0005, 0.5)),
	}
	g := buildConnectivityGraph(segs)

	forward := g.shortestPath("1", "2")
	backward := g.shortestPath("2", "1")
	if g.hasBacktracking(forward) != g.hasBacktracking(backward) {
		t.Error("backtrack detection must not depend on traversal direction")
	}
}

func TestHasBacktrackingRespectsStoredOrientation(t *testing.T) {
	// same straight line, middle geometry stored end-to-start; traversal
	// direction, not storage order, decides the bearing
	segs := []*datastructure.TrackSegment{
		mustSegment(t, "1", c(0, 0), c(0, 1)),
		mustSegment(t, "2", c(0, 2), c(0, 1)),
		mustSegment(t, "3", c(0, 2), c(0, 3)),
	}
	g := buildConnectivityGraph(segs)

	states := g.shortestPath("1", "3")
	if states == nil {
		t.Fatal("expected a path")
	}
	if g.hasBacktracking(states) {
		t.Error("reversed storage order must not trigger the backtrack flag")
	}
}

// altFixture: the hop-shortest path 1-2-5 reverses at the first junction,
// the longer 1-3-4-5 does not.
func altFixture(t *testing.T) *connectivityGraph {
	t.Helper()
	return buildConnectivityGraph([]*datastructure.TrackSegment{
		mustSegment(t, "1", c(0, 0), c(0, 1)),
		mustSegment(t, "2", c(0, 1), c(0.0005, 0.5)),
		mustSegment(t, "3", c(0, 1), c(0.5, 1)),
		mustSegment(t, "4", c(0.5, 1), c(0.0005, 0.5)),
		mustSegment(t, "5", c(0.0005, 0.5), c(0.0005, 0)),
	})
}

func TestAlternativePathAvoidsReversal(t *testing.T) {
	g := altFixture(t)

	primary := g.shortestPath("1", "5")
	if got := pathNodes(primary); !reflect.DeepEqual(got, []string{"1", "2", "5"}) {
		t.Fatalf("primary path = %v, want [1 2 5]", got)
	}
	if !g.hasBacktracking(primary) {
		t.Fatal("primary path must be flagged")
	}

	alt := g.alternativePath("1", "5", 1000)
	if alt == nil {
		t.Fatal("expected an alternative under a generous cap")
	}
	if got := pathNodes(alt); !reflect.DeepEqual(got, []string{"1", "3", "4", "5"}) {
		t.Errorf("alternative path = %v, want [1 3 4 5]", got)
	}
	if g.hasBacktracking(alt) {
		t.Error("alternative path must be reversal free")
	}
}

func TestAlternativePathRespectsDistanceCap(t *testing.T) {
	g := altFixture(t)

	// the only reversal-free chain is well over 150 km long
	if alt := g.alternativePath("1", "5", 150); alt != nil {
		t.Errorf("cap of 150 km must reject the detour, got %v", pathNodes(alt))
	}
}
