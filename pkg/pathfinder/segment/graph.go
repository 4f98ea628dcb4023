package segment

import (
	"sort"

	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/util"
)

// connectivityGraph is the per-call adjacency over one loaded candidate set.
// Two segments are adjacent iff they share a quantized endpoint coordinate.
// Built fresh for every pathfinding invocation and dropped with it, so
// concurrent searches never share state.
type connectivityGraph struct {
	nodes     map[string]*datastructure.TrackSegment
	adjacency map[string][]string
}

// buildConnectivityGraph compares candidates pairwise. O(n^2) is fine here:
// the candidate set is already bounded by the spatial buffer query.
func buildConnectivityGraph(segments []*datastructure.TrackSegment) *connectivityGraph {
	g := &connectivityGraph{
		nodes:     make(map[string]*datastructure.TrackSegment, len(segments)),
		adjacency: make(map[string][]string, len(segments)),
	}
	for _, s := range segments {
		if _, ok := g.nodes[s.ID()]; ok {
			continue
		}
		g.nodes[s.ID()] = s
	}

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return util.LessNumericAware(ids[i], ids[j]) })

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := g.nodes[ids[i]], g.nodes[ids[j]]
			if shareEndpoint(a, b) {
				g.adjacency[a.ID()] = append(g.adjacency[a.ID()], b.ID())
				g.adjacency[b.ID()] = append(g.adjacency[b.ID()], a.ID())
			}
		}
	}

	for id := range g.adjacency {
		neighbors := g.adjacency[id]
		sort.Slice(neighbors, func(i, j int) bool { return util.LessNumericAware(neighbors[i], neighbors[j]) })
	}
	return g
}

func shareEndpoint(a, b *datastructure.TrackSegment) bool {
	return a.TouchesKey(b.StartKey()) || a.TouchesKey(b.EndKey())
}

// neighborsAt returns, in sorted order, the neighbors of id reachable through
// the endpoint exitKey. A neighbor on the far endpoint is not reachable
// without traversing id again.
func (g *connectivityGraph) neighborsAt(id, exitKey string) []string {
	var out []string
	for _, nb := range g.adjacency[id] {
		if g.nodes[nb].TouchesKey(exitKey) {
			out = append(out, nb)
		}
	}
	return out
}

func (g *connectivityGraph) segment(id string) *datastructure.TrackSegment {
	return g.nodes[id]
}

func (g *connectivityGraph) contains(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// pathDistanceKm is the accumulated length of all nodes on a path, the
// distance basis for the alternative-search cap.
func (g *connectivityGraph) pathDistanceKm(states []searchState) float64 {
	total := 0.0
	for _, st := range states {
		total += g.nodes[st.node].LengthKm()
	}
	return total
}
