package datastructure

import (
	"errors"

	"github.com/railmapper/railpath/pkg/geo"
)

// Pathfinding failure taxonomy. All of these are expected outcomes on sparse
// networks and are returned as data, never panics. ErrChainBroken is the
// exception in spirit: it signals inconsistent source data (adjacency said
// two nodes connect but their geometries share no coordinate) and is logged
// distinctly by callers.
var (
	ErrNoCandidatesNearAnchor = errors.New("no candidates near anchor")
	ErrNoPathFound            = errors.New("no path found")
	ErrChainBroken            = errors.New("geometry chain broken")
	ErrStationNotFound        = errors.New("station not found")
)

// PathResult is the outcome of one segment-level search: the node sequence,
// the merged continuous polyline, its length and whether an implausible
// direction reversal survived the alternative search. Immutable once built.
type PathResult struct {
	nodeIDs         []string
	coordinates     []geo.Coordinate
	distanceKm      float64
	hasBacktracking bool
}

func NewPathResult(nodeIDs []string, coordinates []geo.Coordinate, hasBacktracking bool) *PathResult {
	return &PathResult{
		nodeIDs:         nodeIDs,
		coordinates:     coordinates,
		distanceKm:      geo.PolylineLengthKm(coordinates),
		hasBacktracking: hasBacktracking,
	}
}

func (p *PathResult) NodeIDs() []string {
	return p.nodeIDs
}

func (p *PathResult) Coordinates() []geo.Coordinate {
	return p.coordinates
}

func (p *PathResult) DistanceKm() float64 {
	return p.distanceKm
}

func (p *PathResult) HasBacktracking() bool {
	return p.hasBacktracking
}

// RoutePlan is the outcome of one route-level journey query: the ordered
// routes to ride, total riding distance and the unresolved-backtracking flag.
type RoutePlan struct {
	routes          []*RailRoute
	totalDistanceKm float64
	hasBacktracking bool
}

func NewRoutePlan(routes []*RailRoute, hasBacktracking bool) *RoutePlan {
	total := 0.0
	for _, r := range routes {
		total += r.LengthKm()
	}
	return &RoutePlan{
		routes:          routes,
		totalDistanceKm: total,
		hasBacktracking: hasBacktracking,
	}
}

func (p *RoutePlan) Routes() []*RailRoute {
	return p.routes
}

func (p *RoutePlan) TotalDistanceKm() float64 {
	return p.totalDistanceKm
}

func (p *RoutePlan) HasBacktracking() bool {
	return p.hasBacktracking
}
