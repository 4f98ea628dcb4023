package geo

import (
	"github.com/golang/geo/s2"
)

// Projection is the closest point of a polyline to a query coordinate:
// the index of the vertex pair it falls on, the foot point itself (clamped
// to the pair's endpoints) and the geographic distance to it in meters.
type Projection struct {
	SegmentIndex  int
	Point         Coordinate
	DistanceMeter float64
}

// ProjectPointToLineCoord projects snap onto the edge (pointA, pointB),
// clamped to the edge endpoints.
func ProjectPointToLineCoord(pointA, pointB, snap Coordinate) Coordinate {
	pointAS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointA.Lat, pointA.Lon))
	pointBS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointB.Lat, pointB.Lon))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.Lat, snap.Lon))
	projection := s2.Project(snapS2, pointAS2, pointBS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// PointLinePerpendicularDistance returns the distance in meters from snap to
// its clamped projection on the edge (pointA, pointB).
func PointLinePerpendicularDistance(pointA, pointB, snap Coordinate) float64 {
	projectionPoint := ProjectPointToLineCoord(pointA, pointB, snap)

	dist := CalculateHaversineDistance(snap.GetLat(), snap.GetLon(),
		projectionPoint.GetLat(), projectionPoint.GetLon())

	return dist * 1000
}

// ProjectOntoPolyline scans every consecutive vertex pair of coords and
// returns the globally closest clamped projection of snap.
func ProjectOntoPolyline(coords []Coordinate, snap Coordinate) Projection {
	best := Projection{SegmentIndex: -1, DistanceMeter: -1}
	for i := 0; i+1 < len(coords); i++ {
		foot := ProjectPointToLineCoord(coords[i], coords[i+1], snap)
		dist := CalculateHaversineDistance(snap.Lat, snap.Lon, foot.Lat, foot.Lon) * 1000
		if best.SegmentIndex == -1 || dist < best.DistanceMeter {
			best = Projection{
				SegmentIndex:  i,
				Point:         foot,
				DistanceMeter: dist,
			}
		}
	}
	return best
}
