package route

import (
	"context"

	"github.com/railmapper/railpath/pkg"
	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
	"github.com/railmapper/railpath/pkg/util"
	"go.uber.org/zap"
)

// Planner answers journey queries between named stations, optionally through
// via stations. A query with N vias decomposes into N+1 consecutive
// station-pair searches; the exit direction of one leg is carried into the
// entry constraint of the next so a continued chain cannot instantly turn
// around on the route it arrived on. A journey whose hops all collapse onto
// one existing station needs no travel and resolves to an empty plan with
// zero distance. Per-leg graphs are built fresh and dropped, so one Planner
// serves concurrent callers without locking.
type Planner struct {
	log    *zap.Logger
	source RouteSource
}

func NewPlanner(log *zap.Logger, source RouteSource) *Planner {
	return &Planner{
		log:    log,
		source: source,
	}
}

// FindRoutePathBetweenStations plans fromStation -> via... -> toStation.
func (p *Planner) FindRoutePathBetweenStations(ctx context.Context, fromStation, toStation string,
	viaStations []string) (*datastructure.RoutePlan, error) {

	stations := make([]string, 0, len(viaStations)+2)
	stations = append(stations, fromStation)
	stations = append(stations, viaStations...)
	stations = append(stations, toStation)

	var (
		allRoutes    []*datastructure.RailRoute
		flagged      bool
		entryStation string
		prevLast     *datastructure.RailRoute
		legs         int
	)

	for i := 0; i+1 < len(stations); i++ {
		legFrom, legTo := stations[i], stations[i+1]
		if legFrom == legTo {
			continue
		}
		legs++

		states, g, legFlagged, err := p.searchLeg(ctx, legFrom, legTo, entryStation, prevLast)
		if err != nil {
			return nil, err
		}
		flagged = flagged || legFlagged

		legRoutes := g.routesOf(states)
		if prevLast != nil && legRoutes[0].ID() == prevLast.ID() {
			// consecutive legs terminate/start on the same route
			legRoutes = legRoutes[1:]
		}
		allRoutes = append(allRoutes, legRoutes...)

		last := states[len(states)-1]
		if len(states) >= 2 {
			entryStation = states[len(states)-2].exit
		} else {
			entryStation = g.nodes[last.node].OtherStation(last.exit)
		}
		prevLast = g.nodes[last.node]
	}

	if legs == 0 {
		// every hop collapsed to the same station; the station itself must
		// still exist for the empty journey to be answerable
		if _, err := p.source.StationCoordinate(ctx, fromStation); err != nil {
			return nil, err
		}
	}

	return datastructure.NewRoutePlan(allRoutes, flagged), nil
}

// searchLeg runs the buffer-retry pipeline for one station pair. The entry
// constraint is applied only when the freshly loaded candidate start set
// still contains the previous leg's last route; otherwise continuing makes
// no geometric sense and the search runs unconstrained.
func (p *Planner) searchLeg(ctx context.Context, legFrom, legTo, entryStation string,
	prevLast *datastructure.RailRoute) ([]searchState, *routeGraph, bool, error) {

	fromCoord, err := p.source.StationCoordinate(ctx, legFrom)
	if err != nil {
		return nil, nil, false, err
	}
	toCoord, err := p.source.StationCoordinate(ctx, legTo)
	if err != nil {
		return nil, nil, false, err
	}

	var fromSeen, toSeen bool

	for _, radiusKm := range pkg.ROUTE_BUFFER_LADDER_KM {
		if util.StopConcurrentOperation(ctx) {
			return nil, nil, false, ctx.Err()
		}

		routes, err := p.source.RoutesAroundPoints(ctx, []geo.Coordinate{fromCoord, toCoord}, radiusKm)
		if err != nil {
			return nil, nil, false, err
		}

		g := buildRouteGraph(routes)
		startCandidates := g.startCandidates(legFrom)
		if len(startCandidates) > 0 {
			fromSeen = true
		}
		if len(g.startCandidates(legTo)) > 0 {
			toSeen = true
		}
		if len(startCandidates) == 0 {
			continue
		}

		entry := ""
		if entryStation != "" && prevLast != nil && containsID(startCandidates, prevLast.ID()) {
			entry = entryStation
		}

		states := g.shortestPath(legFrom, legTo, entry)
		if states == nil {
			p.log.Debug("no route path at buffer level",
				zap.Float64("radiusKm", radiusKm),
				zap.String("from", legFrom), zap.String("to", legTo))
			continue
		}

		legFlagged := false
		if g.hasBacktracking(states) {
			capKm := pkg.AltPathDistanceCapKm(g.pathDistanceKm(states))
			if alt := g.alternativePath(legFrom, legTo, entry, capKm); alt != nil {
				states = alt
			} else {
				legFlagged = true
				p.log.Info("backtracking unresolved on leg",
					zap.String("from", legFrom), zap.String("to", legTo))
			}
		}
		return states, g, legFlagged, nil
	}

	if !fromSeen {
		return nil, nil, false, util.WrapErrorf(datastructure.ErrNoCandidatesNearAnchor, util.ErrNotFound,
			"no routes serve station %s at any buffer size", legFrom)
	}
	if !toSeen {
		return nil, nil, false, util.WrapErrorf(datastructure.ErrNoCandidatesNearAnchor, util.ErrNotFound,
			"no routes serve station %s at any buffer size", legTo)
	}
	return nil, nil, false, util.WrapErrorf(datastructure.ErrNoPathFound, util.ErrNotFound,
		"no route path found between %s and %s", legFrom, legTo)
}

func containsID(ids []string, id string) bool {
	for _, cur := range ids {
		if cur == id {
			return true
		}
	}
	return false
}
