package segment

import (
	"context"

	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
)

// SegmentSource is the spatial data source the finder loads candidates from.
// Implementations return every segment whose geometry intersects the buffer
// built around the anchors; they never filter, connect or deduplicate. An
// empty result set is a valid outcome, only transport/database failures are
// errors.
type SegmentSource interface {
	SegmentByID(ctx context.Context, id string) (*datastructure.TrackSegment, error)
	SegmentsAroundSegments(ctx context.Context, anchorIDs []string, radiusKm float64) ([]*datastructure.TrackSegment, error)
	SegmentsAroundPoints(ctx context.Context, anchors []geo.Coordinate, radiusKm float64) ([]*datastructure.TrackSegment, error)
}
