package route

import (
	"context"

	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
)

// RouteSource is the spatial data source journey planning loads named routes
// from. Buffered queries return every route whose geometry intersects the
// buffer around the anchors; an empty result is a valid outcome.
type RouteSource interface {
	StationCoordinate(ctx context.Context, station string) (geo.Coordinate, error)
	RoutesAroundPoints(ctx context.Context, anchors []geo.Coordinate, radiusKm float64) ([]*datastructure.RailRoute, error)
}
