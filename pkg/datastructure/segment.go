package datastructure

import (
	"fmt"

	"github.com/railmapper/railpath/pkg"
	"github.com/railmapper/railpath/pkg/geo"
	"github.com/railmapper/railpath/pkg/util"
)

// TrackSegment is one digitized piece of physical track: an ordered polyline
// with at least two vertices. Segment ids may be compound (a split segment
// keeps its parent id plus a suffix), so they are opaque strings.
type TrackSegment struct {
	id       string
	coords   []geo.Coordinate
	lengthKm float64
}

func NewTrackSegment(id string, coords []geo.Coordinate) (*TrackSegment, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("segment %s: polyline must have at least 2 points, got %d", id, len(coords))
	}
	return &TrackSegment{
		id:       id,
		coords:   coords,
		lengthKm: geo.PolylineLengthKm(coords),
	}, nil
}

func (s *TrackSegment) ID() string {
	return s.id
}

func (s *TrackSegment) Coordinates() []geo.Coordinate {
	return s.coords
}

func (s *TrackSegment) LengthKm() float64 {
	return s.lengthKm
}

func (s *TrackSegment) StartPoint() geo.Coordinate {
	return s.coords[0]
}

func (s *TrackSegment) EndPoint() geo.Coordinate {
	return s.coords[len(s.coords)-1]
}

func (s *TrackSegment) StartKey() string {
	return CoordKey(s.coords[0])
}

func (s *TrackSegment) EndKey() string {
	return CoordKey(s.coords[len(s.coords)-1])
}

// OtherEndKey returns the endpoint key opposite to key. For a closed loop
// both endpoints collapse to the same key and it is returned unchanged.
func (s *TrackSegment) OtherEndKey(key string) string {
	start, end := s.StartKey(), s.EndKey()
	if key == start {
		return end
	}
	return start
}

// TouchesKey reports whether key is one of the segment's endpoint keys.
func (s *TrackSegment) TouchesKey(key string) bool {
	return s.StartKey() == key || s.EndKey() == key
}

// CoordKey quantizes a coordinate to COORD_KEY_PRECISION decimal digits and
// renders it as a string, so two endpoints digitized with float jitter still
// compare equal.
func CoordKey(c geo.Coordinate) string {
	return util.FormatFixed(c.Lon, pkg.COORD_KEY_PRECISION) + "," +
		util.FormatFixed(c.Lat, pkg.COORD_KEY_PRECISION)
}
