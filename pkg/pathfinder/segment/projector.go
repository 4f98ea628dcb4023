package segment

import (
	"runtime"

	"github.com/railmapper/railpath/pkg/concurrent"
	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
	"github.com/railmapper/railpath/pkg/util"
)

type candidateProjection struct {
	nodeID     string
	projection geo.Projection
}

// nearestCandidate projects snap onto every loaded segment and returns the
// globally closest one within toleranceMeter. Projection of one coordinate
// against hundreds of candidate polylines is independent per candidate, so
// the scan fans out over a worker pool. Ties break towards the smaller node
// id to keep results deterministic.
func (g *connectivityGraph) nearestCandidate(snap geo.Coordinate, toleranceMeter float64) (string, geo.Projection, bool) {
	if len(g.nodes) == 0 {
		return "", geo.Projection{}, false
	}

	pool := concurrent.NewWorkerPool[*datastructure.TrackSegment, candidateProjection](
		runtime.NumCPU(), len(g.nodes))
	pool.Start(func(seg *datastructure.TrackSegment) candidateProjection {
		return candidateProjection{
			nodeID:     seg.ID(),
			projection: geo.ProjectOntoPolyline(seg.Coordinates(), snap),
		}
	})
	for _, seg := range g.nodes {
		pool.AddJob(seg)
	}
	pool.Close()
	pool.Wait()

	bestID := ""
	var best geo.Projection
	for cand := range pool.CollectResults() {
		if cand.projection.SegmentIndex == -1 {
			continue
		}
		if bestID == "" ||
			cand.projection.DistanceMeter < best.DistanceMeter ||
			(cand.projection.DistanceMeter == best.DistanceMeter && util.LessNumericAware(cand.nodeID, bestID)) {
			bestID = cand.nodeID
			best = cand.projection
		}
	}
	if bestID == "" || best.DistanceMeter > toleranceMeter {
		return "", geo.Projection{}, false
	}
	return bestID, best, true
}

// truncateTowards cuts coords at the projected point, keeping the part
// between the projection and the endpoint keyed keepKey. Used so a rendered
// path starts and ends at the query coordinate instead of the full extent of
// its first and last segment.
func truncateTowards(coords []geo.Coordinate, proj geo.Projection, keepKey string) []geo.Coordinate {
	endKey := datastructure.CoordKey(coords[len(coords)-1])
	if keepKey == endKey {
		out := make([]geo.Coordinate, 0, len(coords)-proj.SegmentIndex)
		out = append(out, proj.Point)
		out = append(out, coords[proj.SegmentIndex+1:]...)
		return out
	}
	out := make([]geo.Coordinate, 0, proj.SegmentIndex+2)
	out = append(out, coords[:proj.SegmentIndex+1]...)
	out = append(out, proj.Point)
	return out
}

// sliceBetween extracts the part of a single segment between two projected
// points, oriented from a towards b.
func sliceBetween(coords []geo.Coordinate, a, b geo.Projection) []geo.Coordinate {
	swapped := false
	first, second := a, b
	if second.SegmentIndex < first.SegmentIndex ||
		(second.SegmentIndex == first.SegmentIndex && alongOffset(coords, second) < alongOffset(coords, first)) {
		first, second = second, first
		swapped = true
	}

	out := make([]geo.Coordinate, 0, second.SegmentIndex-first.SegmentIndex+2)
	out = append(out, first.Point)
	out = append(out, coords[first.SegmentIndex+1:second.SegmentIndex+1]...)
	out = append(out, second.Point)

	if swapped {
		out = util.ReverseG(out)
	}
	return out
}

// alongOffset orders two projections falling on the same vertex pair.
func alongOffset(coords []geo.Coordinate, p geo.Projection) float64 {
	base := coords[p.SegmentIndex]
	return geo.CalculateHaversineDistance(base.Lat, base.Lon, p.Point.Lat, p.Point.Lon)
}
