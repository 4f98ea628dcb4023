package controllers

import (
	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
)

type findPathRequest struct {
	StartID string `json:"start_id" validate:"required"`
	EndID   string `json:"end_id" validate:"required"`
}

type findPathFromCoordinatesRequest struct {
	StartLat float64 `json:"start_lat" validate:"min=-90,max=90"`
	StartLon float64 `json:"start_lon" validate:"min=-180,max=180"`
	EndLat   float64 `json:"end_lat" validate:"min=-90,max=90"`
	EndLon   float64 `json:"end_lon" validate:"min=-180,max=180"`
}

type routePathRequest struct {
	FromStation string   `json:"from" validate:"required"`
	ToStation   string   `json:"to" validate:"required"`
	ViaStations []string `json:"via"`
}

type pathResponse struct {
	NodeIDs         []string     `json:"node_ids"`
	Coordinates     [][2]float64 `json:"coordinates"`
	Polyline        string       `json:"polyline"`
	DistanceKm      float64      `json:"distance_km"`
	HasBacktracking bool         `json:"has_backtracking"`
}

func NewPathResponse(result *datastructure.PathResult) pathResponse {
	coords := result.Coordinates()
	lonLats := make([][2]float64, len(coords))
	for i, c := range coords {
		lonLats[i] = [2]float64{c.Lon, c.Lat}
	}
	return pathResponse{
		NodeIDs:         result.NodeIDs(),
		Coordinates:     lonLats,
		Polyline:        geo.PolylineFromCoords(coords),
		DistanceKm:      result.DistanceKm(),
		HasBacktracking: result.HasBacktracking(),
	}
}

type routeResponse struct {
	ID          string  `json:"id"`
	FromStation string  `json:"from_station"`
	ToStation   string  `json:"to_station"`
	DistanceKm  float64 `json:"distance_km"`
	Polyline    string  `json:"polyline"`
}

type routePlanResponse struct {
	Routes          []routeResponse `json:"routes"`
	TotalDistanceKm float64         `json:"total_distance_km"`
	HasBacktracking bool            `json:"has_backtracking"`
}

func NewRoutePlanResponse(plan *datastructure.RoutePlan) routePlanResponse {
	routes := make([]routeResponse, len(plan.Routes()))
	for i, r := range plan.Routes() {
		routes[i] = routeResponse{
			ID:          r.ID(),
			FromStation: r.FromStation(),
			ToStation:   r.ToStation(),
			DistanceKm:  r.LengthKm(),
			Polyline:    geo.PolylineFromCoords(r.Coordinates()),
		}
	}
	return routePlanResponse{
		Routes:          routes,
		TotalDistanceKm: plan.TotalDistanceKm(),
		HasBacktracking: plan.HasBacktracking(),
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
