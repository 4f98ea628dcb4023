package segment

import (
	"github.com/railmapper/railpath/pkg"
	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
)

// exitBearingAt is the direction of travel while approaching the junction on
// segment s. The vertex adjacent to the junction is used, not the polyline's
// overall first/last vertex, so a segment traversed against its stored
// coordinate order still yields the travel direction.
func exitBearingAt(s *datastructure.TrackSegment, junction string) float64 {
	coords := s.Coordinates()
	n := len(coords)
	if junction == s.EndKey() {
		return geo.BearingTo(coords[n-2].Lat, coords[n-2].Lon, coords[n-1].Lat, coords[n-1].Lon)
	}
	return geo.BearingTo(coords[1].Lat, coords[1].Lon, coords[0].Lat, coords[0].Lon)
}

// entryBearingAt is the direction of travel while departing the junction on
// segment s.
func entryBearingAt(s *datastructure.TrackSegment, junction string) float64 {
	coords := s.Coordinates()
	n := len(coords)
	if junction == s.StartKey() {
		return geo.BearingTo(coords[0].Lat, coords[0].Lon, coords[1].Lat, coords[1].Lon)
	}
	return geo.BearingTo(coords[n-1].Lat, coords[n-1].Lon, coords[n-2].Lat, coords[n-2].Lon)
}

// isBacktrackTransition flags the junction between from and to when the
// direction of travel reverses by more than the threshold. No real train
// does that at a plain junction.
func isBacktrackTransition(from, to *datastructure.TrackSegment, junction string) bool {
	diff := geo.BearingDifference(exitBearingAt(from, junction), entryBearingAt(to, junction))
	return diff > pkg.BACKTRACK_BEARING_THRESHOLD_DEGREE
}

// hasBacktracking checks every adjacent pair of a found path.
func (g *connectivityGraph) hasBacktracking(states []searchState) bool {
	for i := 0; i+1 < len(states); i++ {
		from := g.nodes[states[i].node]
		to := g.nodes[states[i+1].node]
		if isBacktrackTransition(from, to, states[i].exit) {
			return true
		}
	}
	return false
}
