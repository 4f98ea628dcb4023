package datastructure

import (
	"fmt"

	"github.com/railmapper/railpath/pkg/geo"
)

// RailRoute is a named railway connection between two stations. Its polyline
// is stored from the From station towards the To station.
type RailRoute struct {
	id          string
	fromStation string
	toStation   string
	coords      []geo.Coordinate
	lengthKm    float64
}

func NewRailRoute(id, fromStation, toStation string, coords []geo.Coordinate) (*RailRoute, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("route %s: polyline must have at least 2 points, got %d", id, len(coords))
	}
	return &RailRoute{
		id:          id,
		fromStation: fromStation,
		toStation:   toStation,
		coords:      coords,
		lengthKm:    geo.PolylineLengthKm(coords),
	}, nil
}

func (r *RailRoute) ID() string {
	return r.id
}

func (r *RailRoute) FromStation() string {
	return r.fromStation
}

func (r *RailRoute) ToStation() string {
	return r.toStation
}

func (r *RailRoute) Coordinates() []geo.Coordinate {
	return r.coords
}

func (r *RailRoute) LengthKm() float64 {
	return r.lengthKm
}

// TouchesStation compares station names exactly, case sensitive, no
// normalization. Near-duplicate names (accents, stray whitespace) will not
// connect; that mirrors the source data contract.
func (r *RailRoute) TouchesStation(station string) bool {
	return r.fromStation == station || r.toStation == station
}

// OtherStation returns the station opposite to station on this route.
func (r *RailRoute) OtherStation(station string) string {
	if station == r.fromStation {
		return r.toStation
	}
	return r.fromStation
}

// SharesStationWith reports whether two routes share a station name in any
// from/to combination.
func (r *RailRoute) SharesStationWith(other *RailRoute) bool {
	return other.TouchesStation(r.fromStation) || other.TouchesStation(r.toStation)
}

// RouteBearingInfo caches the four bearing-relevant vertices of a route
// polyline for O(1) bearing lookups at connection points. Populated once
// from the loaded geometry, never mutated.
type RouteBearingInfo struct {
	start      geo.Coordinate
	afterStart geo.Coordinate
	beforeEnd  geo.Coordinate
	end        geo.Coordinate
}

func NewRouteBearingInfo(coords []geo.Coordinate) RouteBearingInfo {
	n := len(coords)
	return RouteBearingInfo{
		start:      coords[0],
		afterStart: coords[1],
		beforeEnd:  coords[n-2],
		end:        coords[n-1],
	}
}

// ExitBearing is the direction of travel approaching the given end of the
// route (atEnd=true means the To side).
func (b RouteBearingInfo) ExitBearing(atEnd bool) float64 {
	if atEnd {
		return geo.BearingTo(b.beforeEnd.Lat, b.beforeEnd.Lon, b.end.Lat, b.end.Lon)
	}
	return geo.BearingTo(b.afterStart.Lat, b.afterStart.Lon, b.start.Lat, b.start.Lon)
}

// EntryBearing is the direction of travel departing the given end of the
// route (atStart=true means entering on the From side).
func (b RouteBearingInfo) EntryBearing(atStart bool) float64 {
	if atStart {
		return geo.BearingTo(b.start.Lat, b.start.Lon, b.afterStart.Lat, b.afterStart.Lon)
	}
	return geo.BearingTo(b.end.Lat, b.end.Lon, b.beforeEnd.Lat, b.beforeEnd.Lon)
}
