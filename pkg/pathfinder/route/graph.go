package route

import (
	"sort"

	"github.com/railmapper/railpath/pkg"
	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
	"github.com/railmapper/railpath/pkg/util"
)

// routeGraph is the per-call adjacency over one loaded route set. Two routes
// are adjacent iff they share a station name in any from/to combination.
// Matching is exact and case sensitive, mirroring the source data contract:
// near-duplicate station names do not connect.
type routeGraph struct {
	nodes     map[string]*datastructure.RailRoute
	bearings  map[string]datastructure.RouteBearingInfo
	adjacency map[string][]string
}

func buildRouteGraph(routes []*datastructure.RailRoute) *routeGraph {
	g := &routeGraph{
		nodes:     make(map[string]*datastructure.RailRoute, len(routes)),
		bearings:  make(map[string]datastructure.RouteBearingInfo, len(routes)),
		adjacency: make(map[string][]string, len(routes)),
	}
	for _, r := range routes {
		if _, ok := g.nodes[r.ID()]; ok {
			continue
		}
		g.nodes[r.ID()] = r
		g.bearings[r.ID()] = datastructure.NewRouteBearingInfo(r.Coordinates())
	}

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return util.LessNumericAware(ids[i], ids[j]) })

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := g.nodes[ids[i]], g.nodes[ids[j]]
			if a.SharesStationWith(b) {
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

// neighborsAt returns the neighbors of id reachable through the given
// station, in sorted order.
func (g *routeGraph) neighborsAt(id, station string) []string {
	var out []string
	for _, nb := range g.adjacency[id] {
		if g.nodes[nb].TouchesStation(station) {
			out = append(out, nb)
		}
	}
	return out
}

// startCandidates lists, in sorted order, the loaded routes touching the
// given station.
func (g *routeGraph) startCandidates(station string) []string {
	var out []string
	for id, r := range g.nodes {
		if r.TouchesStation(station) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return util.LessNumericAware(out[i], out[j]) })
	return out
}

func (g *routeGraph) contains(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *routeGraph) routesOf(states []searchState) []*datastructure.RailRoute {
	out := make([]*datastructure.RailRoute, len(states))
	for i, st := range states {
		out[i] = g.nodes[st.node]
	}
	return out
}

func (g *routeGraph) pathDistanceKm(states []searchState) float64 {
	total := 0.0
	for _, st := range states {
		total += g.nodes[st.node].LengthKm()
	}
	return total
}

// exitBearing is the direction of travel approaching the given station on
// route id, from the cached bearing vertices.
func (g *routeGraph) exitBearing(id, station string) float64 {
	atEnd := g.nodes[id].ToStation() == station
	return g.bearings[id].ExitBearing(atEnd)
}

// entryBearing is the direction of travel departing the given station on
// route id.
func (g *routeGraph) entryBearing(id, station string) float64 {
	atStart := g.nodes[id].FromStation() == station
	return g.bearings[id].EntryBearing(atStart)
}

// isBacktrackTransition flags a connection station where travel direction
// reverses beyond the threshold.
func (g *routeGraph) isBacktrackTransition(fromID, toID, station string) bool {
	diff := geo.BearingDifference(g.exitBearing(fromID, station), g.entryBearing(toID, station))
	return diff > pkg.BACKTRACK_BEARING_THRESHOLD_DEGREE
}

// hasBacktracking checks every adjacent pair of a found leg. The connection
// station between node i and i+1 is the exit of state i.
func (g *routeGraph) hasBacktracking(states []searchState) bool {
	for i := 0; i+1 < len(states); i++ {
		if g.isBacktrackTransition(states[i].node, states[i+1].node, states[i].exit) {
			return true
		}
	}
	return false
}
