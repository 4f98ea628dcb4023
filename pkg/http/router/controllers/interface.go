package controllers

import (
	"context"

	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
)

type PathfinderService interface {
	FindPath(ctx context.Context, startID, endID string) (*datastructure.PathResult, error)
	FindPathFromCoordinates(ctx context.Context, start, end geo.Coordinate) (*datastructure.PathResult, error)
	FindRoutePathBetweenStations(ctx context.Context, fromStation, toStation string, viaStations []string) (*datastructure.RoutePlan, error)
}
