package segment

import (
	"context"
	"errors"

	"github.com/railmapper/railpath/pkg"
	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
	"github.com/railmapper/railpath/pkg/util"
	"go.uber.org/zap"
)

// Finder runs the full segment-level pipeline: load candidates inside a
// buffer, build the connectivity graph, search, resolve backtracking, merge
// geometries. Every invocation builds and drops its own graph, so one Finder
// serves concurrent callers without locking.
type Finder struct {
	log    *zap.Logger
	source SegmentSource
}

func NewFinder(log *zap.Logger, source SegmentSource) *Finder {
	return &Finder{
		log:    log,
		source: source,
	}
}

// FindPath connects two segments by id. The candidate set is reloaded at
// every rung of the buffer ladder until a path shows up; a legitimately
// disconnected network surfaces as ErrNoPathFound, not a hard failure.
func (f *Finder) FindPath(ctx context.Context, startID, endID string) (*datastructure.PathResult, error) {
	startSeg, err := f.source.SegmentByID(ctx, startID)
	if err != nil {
		return nil, err
	}
	if startID == endID {
		return datastructure.NewPathResult([]string{startID}, startSeg.Coordinates(), false), nil
	}
	if _, err := f.source.SegmentByID(ctx, endID); err != nil {
		return nil, err
	}

	for _, radiusKm := range pkg.SEGMENT_BUFFER_LADDER_KM {
		if util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}

		candidates, err := f.source.SegmentsAroundSegments(ctx, []string{startID, endID}, radiusKm)
		if err != nil {
			return nil, err
		}

		g := buildConnectivityGraph(candidates)
		if !g.contains(startID) || !g.contains(endID) {
			continue
		}

		states := g.shortestPath(startID, endID)
		if states == nil {
			f.log.Debug("no segment path at buffer level",
				zap.Float64("radiusKm", radiusKm),
				zap.String("start", startID), zap.String("end", endID))
			continue
		}

		states, flagged := f.resolveBacktracking(g, states)
		return f.mergeStates(g, states, flagged, nil, nil)
	}

	return nil, util.WrapErrorf(datastructure.ErrNoPathFound, util.ErrNotFound,
		"no path found between segment %s and segment %s", startID, endID)
}

// FindPathFromCoordinates connects two raw coordinates: each is matched to
// its nearest candidate segment, the segments are connected, and the first
// and last geometry are cut at the projected points so the result starts and
// ends exactly at the query coordinates.
func (f *Finder) FindPathFromCoordinates(ctx context.Context, start, end geo.Coordinate) (*datastructure.PathResult, error) {
	var startSeen, endSeen bool

	for _, radiusKm := range pkg.SEGMENT_BUFFER_LADDER_KM {
		if util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}

		candidates, err := f.source.SegmentsAroundPoints(ctx, []geo.Coordinate{start, end}, radiusKm)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			continue
		}

		g := buildConnectivityGraph(candidates)

		startID, startProj, okStart := g.nearestCandidate(start, pkg.COARSE_MATCH_TOLERANCE_METER)
		endID, endProj, okEnd := g.nearestCandidate(end, pkg.COARSE_MATCH_TOLERANCE_METER)
		startSeen = startSeen || okStart
		endSeen = endSeen || okEnd
		if !okStart || !okEnd {
			continue
		}
		if startProj.DistanceMeter > pkg.ON_SEGMENT_TOLERANCE_METER {
			f.log.Debug("start anchor off track, snapping to nearest segment",
				zap.String("segment", startID), zap.Float64("distanceMeter", startProj.DistanceMeter))
		}
		if endProj.DistanceMeter > pkg.ON_SEGMENT_TOLERANCE_METER {
			f.log.Debug("end anchor off track, snapping to nearest segment",
				zap.String("segment", endID), zap.Float64("distanceMeter", endProj.DistanceMeter))
		}

		if startID == endID {
			coords := sliceBetween(g.segment(startID).Coordinates(), startProj, endProj)
			return datastructure.NewPathResult([]string{startID}, coords, false), nil
		}

		states := g.shortestPath(startID, endID)
		if states == nil {
			continue
		}

		states, flagged := f.resolveBacktracking(g, states)
		return f.mergeStates(g, states, flagged, &startProj, &endProj)
	}

	if !startSeen {
		return nil, util.WrapErrorf(datastructure.ErrNoCandidatesNearAnchor, util.ErrNotFound,
			"no railway segment near start anchor (%f, %f) at any buffer size", start.Lat, start.Lon)
	}
	if !endSeen {
		return nil, util.WrapErrorf(datastructure.ErrNoCandidatesNearAnchor, util.ErrNotFound,
			"no railway segment near end anchor (%f, %f) at any buffer size", end.Lat, end.Lon)
	}
	return nil, util.WrapErrorf(datastructure.ErrNoPathFound, util.ErrNotFound,
		"no path found between (%f, %f) and (%f, %f)", start.Lat, start.Lon, end.Lat, end.Lon)
}

// resolveBacktracking checks the primary path for direction reversals and,
// when flagged, tries the reversal-free alternative search under the
// distance cap. If no alternative fits the cap, the flagged primary result
// is kept and the flag surfaces to the caller instead of failing outright.
func (f *Finder) resolveBacktracking(g *connectivityGraph, states []searchState) ([]searchState, bool) {
	if !g.hasBacktracking(states) {
		return states, false
	}

	capKm := pkg.AltPathDistanceCapKm(g.pathDistanceKm(states))
	startID := states[0].node
	endID := states[len(states)-1].node

	if alt := g.alternativePath(startID, endID, capKm); alt != nil {
		f.log.Debug("backtracking path replaced by alternative",
			zap.String("start", startID), zap.String("end", endID),
			zap.Float64("capKm", capKm))
		return alt, false
	}

	f.log.Info("backtracking unresolved, keeping flagged primary path",
		zap.String("start", startID), zap.String("end", endID))
	return states, true
}

func (f *Finder) mergeStates(g *connectivityGraph, states []searchState, flagged bool,
	startProj, endProj *geo.Projection) (*datastructure.PathResult, error) {

	sublists := make([][]geo.Coordinate, len(states))
	for i, st := range states {
		sublists[i] = g.nodes[st.node].Coordinates()
	}
	if startProj != nil && len(states) >= 2 {
		sublists[0] = truncateTowards(sublists[0], *startProj, states[0].exit)
	}
	if endProj != nil && len(states) >= 2 {
		sublists[len(states)-1] = truncateTowards(sublists[len(states)-1], *endProj, states[len(states)-2].exit)
	}

	nodeIDs := make([]string, len(states))
	for i, st := range states {
		nodeIDs[i] = st.node
	}

	merged, err := MergeChain(sublists, f.log)
	if err != nil {
		if errors.Is(err, datastructure.ErrChainBroken) {
			f.log.Error("chain broken: adjacency claims a connection the geometries do not share",
				zap.Strings("path", nodeIDs), zap.Error(err))
		}
		return nil, err
	}

	return datastructure.NewPathResult(nodeIDs, merged, flagged), nil
}
