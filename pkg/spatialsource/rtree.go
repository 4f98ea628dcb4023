package spatialsource

import (
	"context"
	"math"
	"sort"

	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
	"github.com/railmapper/railpath/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// InMemorySource serves buffered-intersection queries from R-trees held in
// memory. It backs file-fed deployments (OSM extracts) and the test
// fixtures. Populate with Add*, then query; it is not safe to add while
// queries run.
type InMemorySource struct {
	log *zap.Logger

	segments    map[string]*datastructure.TrackSegment
	segmentTree *rtree.RTreeG[*datastructure.TrackSegment]

	routes    map[string]*datastructure.RailRoute
	routeTree *rtree.RTreeG[*datastructure.RailRoute]

	stations map[string]geo.Coordinate
}

func NewInMemorySource(log *zap.Logger) *InMemorySource {
	var segmentTree rtree.RTreeG[*datastructure.TrackSegment]
	var routeTree rtree.RTreeG[*datastructure.RailRoute]
	return &InMemorySource{
		log:         log,
		segments:    make(map[string]*datastructure.TrackSegment),
		segmentTree: &segmentTree,
		routes:      make(map[string]*datastructure.RailRoute),
		routeTree:   &routeTree,
		stations:    make(map[string]geo.Coordinate),
	}
}

func (s *InMemorySource) AddSegment(seg *datastructure.TrackSegment) {
	if _, ok := s.segments[seg.ID()]; ok {
		return
	}
	s.segments[seg.ID()] = seg
	min, max := polylineBounds(seg.Coordinates())
	s.segmentTree.Insert(min, max, seg)
}

func (s *InMemorySource) AddRoute(r *datastructure.RailRoute) {
	if _, ok := s.routes[r.ID()]; ok {
		return
	}
	s.routes[r.ID()] = r
	min, max := polylineBounds(r.Coordinates())
	s.routeTree.Insert(min, max, r)
}

func (s *InMemorySource) AddStation(name string, coord geo.Coordinate) {
	s.stations[name] = coord
}

func (s *InMemorySource) SegmentByID(ctx context.Context, id string) (*datastructure.TrackSegment, error) {
	seg, ok := s.segments[id]
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "segment %s not found", id)
	}
	return seg, nil
}

func (s *InMemorySource) SegmentsAroundSegments(ctx context.Context, anchorIDs []string, radiusKm float64) ([]*datastructure.TrackSegment, error) {
	var anchorCoords []geo.Coordinate
	for _, id := range anchorIDs {
		if seg, ok := s.segments[id]; ok {
			anchorCoords = append(anchorCoords, seg.Coordinates()...)
		}
	}
	if len(anchorCoords) == 0 {
		return nil, nil
	}

	out := make([]*datastructure.TrackSegment, 0, 64)
	min, max := bufferedBounds(anchorCoords, radiusKm)
	s.segmentTree.Search(min, max, func(_, _ [2]float64, seg *datastructure.TrackSegment) bool {
		out = append(out, seg)
		return true
	})
	sortSegments(out)
	return out, nil
}

func (s *InMemorySource) SegmentsAroundPoints(ctx context.Context, anchors []geo.Coordinate, radiusKm float64) ([]*datastructure.TrackSegment, error) {
	seen := make(map[string]bool)
	out := make([]*datastructure.TrackSegment, 0, 64)
	for _, anchor := range anchors {
		min, max := bufferedBounds([]geo.Coordinate{anchor}, radiusKm)
		s.segmentTree.Search(min, max, func(_, _ [2]float64, seg *datastructure.TrackSegment) bool {
			if !seen[seg.ID()] {
				seen[seg.ID()] = true
				out = append(out, seg)
			}
			return true
		})
	}
	sortSegments(out)
	return out, nil
}

func (s *InMemorySource) StationCoordinate(ctx context.Context, station string) (geo.Coordinate, error) {
	coord, ok := s.stations[station]
	if !ok {
		return geo.Coordinate{}, util.WrapErrorf(datastructure.ErrStationNotFound, util.ErrNotFound,
			"station %s not found", station)
	}
	return coord, nil
}

func (s *InMemorySource) RoutesAroundPoints(ctx context.Context, anchors []geo.Coordinate, radiusKm float64) ([]*datastructure.RailRoute, error) {
	seen := make(map[string]bool)
	out := make([]*datastructure.RailRoute, 0, 64)
	for _, anchor := range anchors {
		min, max := bufferedBounds([]geo.Coordinate{anchor}, radiusKm)
		s.routeTree.Search(min, max, func(_, _ [2]float64, r *datastructure.RailRoute) bool {
			if !seen[r.ID()] {
				seen[r.ID()] = true
				out = append(out, r)
			}
			return true
		})
	}
	sort.Slice(out, func(i, j int) bool { return util.LessNumericAware(out[i].ID(), out[j].ID()) })
	return out, nil
}

func polylineBounds(coords []geo.Coordinate) ([2]float64, [2]float64) {
	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for _, c := range coords {
		minLat = math.Min(minLat, c.Lat)
		minLon = math.Min(minLon, c.Lon)
		maxLat = math.Max(maxLat, c.Lat)
		maxLon = math.Max(maxLon, c.Lon)
	}
	return [2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}
}

// bufferedBounds expands the bounding box of coords by radiusKm towards the
// south-west and north-east corners.
func bufferedBounds(coords []geo.Coordinate, radiusKm float64) ([2]float64, [2]float64) {
	min, max := polylineBounds(coords)
	lowerLat, lowerLon := geo.GetDestinationPoint(min[1], min[0], 225, radiusKm)
	upperLat, upperLon := geo.GetDestinationPoint(max[1], max[0], 45, radiusKm)
	return [2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat}
}

func sortSegments(segs []*datastructure.TrackSegment) {
	sort.Slice(segs, func(i, j int) bool { return util.LessNumericAware(segs[i].ID(), segs[j].ID()) })
}
