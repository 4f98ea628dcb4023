package pkg

import "math"

// Tunable heuristics of the pathfinding engine. All values are empirical:
// they were chosen against real digitized railway data, not derived. Change
// them only with a regression set at hand.

const (
	// COORD_KEY_PRECISION is the number of decimal digits kept when two
	// endpoint coordinates are compared for adjacency. 7 digits is roughly
	// 1cm at the equator. Too few digits glue unrelated tracks together,
	// too many split connected ones on float jitter.
	COORD_KEY_PRECISION = 7

	// BACKTRACK_BEARING_THRESHOLD_DEGREE flags a junction transition as a
	// direction reversal when the angle between exit and entry bearing
	// exceeds it. Real rolling stock does not turn around at 140 degrees.
	BACKTRACK_BEARING_THRESHOLD_DEGREE = 140.0

	// Alternative paths are accepted only below
	// min(primary*ALT_PATH_DISTANCE_FACTOR, primary+ALT_PATH_DISTANCE_SLACK_KM).
	ALT_PATH_DISTANCE_FACTOR   = 1.1
	ALT_PATH_DISTANCE_SLACK_KM = 5.0

	// ON_SEGMENT_TOLERANCE_METER is the projection distance below which a
	// query coordinate is considered to lie on a segment.
	ON_SEGMENT_TOLERANCE_METER = 1.0

	// COARSE_MATCH_TOLERANCE_METER bounds the initial nearest-segment match
	// for raw query coordinates.
	COARSE_MATCH_TOLERANCE_METER = 250.0
)

// Buffer ladders for candidate loading, in km. Each retry round reloads the
// candidate set at the next rung. 222km is the geographic radius of the
// 2 degree planar buffer the ladder tops out at.
var (
	SEGMENT_BUFFER_LADDER_KM = []float64{50, 100, 222}
	ROUTE_BUFFER_LADDER_KM   = []float64{50, 100, 222}
)

// AltPathDistanceCapKm derives the acceptance cap for alternative paths from
// the primary path's distance.
func AltPathDistanceCapKm(primaryKm float64) float64 {
	return math.Min(primaryKm*ALT_PATH_DISTANCE_FACTOR, primaryKm+ALT_PATH_DISTANCE_SLACK_KM)
}
