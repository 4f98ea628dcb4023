package usecases

import (
	"context"

	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
	"github.com/railmapper/railpath/pkg/pathfinder/route"
	"github.com/railmapper/railpath/pkg/pathfinder/segment"
	"go.uber.org/zap"
)

type PathfinderService struct {
	log     *zap.Logger
	finder  *segment.Finder
	planner *route.Planner
}

func NewPathfinderService(log *zap.Logger, finder *segment.Finder, planner *route.Planner) *PathfinderService {
	return &PathfinderService{
		log:     log,
		finder:  finder,
		planner: planner,
	}
}

func (s *PathfinderService) FindPath(ctx context.Context, startID, endID string) (*datastructure.PathResult, error) {
	s.log.Info("finding path between segments",
		zap.String("start_id", startID), zap.String("end_id", endID))
	return s.finder.FindPath(ctx, startID, endID)
}

func (s *PathfinderService) FindPathFromCoordinates(ctx context.Context, start, end geo.Coordinate) (*datastructure.PathResult, error) {
	s.log.Info("finding path between coordinates",
		zap.Float64("start_lat", start.Lat), zap.Float64("start_lon", start.Lon),
		zap.Float64("end_lat", end.Lat), zap.Float64("end_lon", end.Lon))
	return s.finder.FindPathFromCoordinates(ctx, start, end)
}

func (s *PathfinderService) FindRoutePathBetweenStations(ctx context.Context, fromStation, toStation string,
	viaStations []string) (*datastructure.RoutePlan, error) {
	s.log.Info("finding route path between stations",
		zap.String("from", fromStation), zap.String("to", toStation),
		zap.Strings("via", viaStations))
	return s.planner.FindRoutePathBetweenStations(ctx, fromStation, toStation, viaStations)
}
