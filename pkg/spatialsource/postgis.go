package spatialsource

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
	"github.com/railmapper/railpath/pkg/util"
	"go.uber.org/zap"
)

// PostGISSource serves the buffered-intersection queries from PostGIS. The
// buffer is built in planar web-mercator around the anchor geometries and
// re-projected back to geographic coordinates, the same construction the
// in-memory source approximates with destination-point boxes.
type PostGISSource struct {
	log  *zap.Logger
	pool *pgxpool.Pool
}

func NewPostGISSource(ctx context.Context, databaseURL string, log *zap.Logger) (*PostGISSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostGISSource{log: log, pool: pool}, nil
}

func (s *PostGISSource) Close() {
	s.pool.Close()
}

func (s *PostGISSource) SegmentByID(ctx context.Context, id string) (*datastructure.TrackSegment, error) {
	const query = `SELECT id, ST_AsBinary(geom) FROM rail_segments WHERE id = $1`

	var (
		segID string
		line  orb.LineString
	)
	err := s.pool.QueryRow(ctx, query, id).Scan(&segID, wkb.Scanner(&line))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.WrapErrorf(err, util.ErrNotFound, "segment %s not found", id)
		}
		return nil, fmt.Errorf("failed to query segment %s: %w", id, err)
	}
	return datastructure.NewTrackSegment(segID, lineToCoords(line))
}

func (s *PostGISSource) SegmentsAroundSegments(ctx context.Context, anchorIDs []string, radiusKm float64) ([]*datastructure.TrackSegment, error) {
	const query = `
		SELECT s.id, ST_AsBinary(s.geom)
		FROM rail_segments s
		WHERE ST_Intersects(s.geom, (
			SELECT ST_Transform(ST_Buffer(ST_Transform(ST_Collect(a.geom), 3857), $2), 4326)
			FROM rail_segments a
			WHERE a.id = ANY($1)
		))
		ORDER BY s.id
	`

	rows, err := s.pool.Query(ctx, query, anchorIDs, radiusKm*1000)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments around anchors: %w", err)
	}
	defer rows.Close()
	return scanSegments(rows)
}

func (s *PostGISSource) SegmentsAroundPoints(ctx context.Context, anchors []geo.Coordinate, radiusKm float64) ([]*datastructure.TrackSegment, error) {
	const query = `
		SELECT s.id, ST_AsBinary(s.geom)
		FROM rail_segments s
		WHERE ST_Intersects(s.geom, (
			SELECT ST_Transform(ST_Buffer(ST_Transform(ST_Collect(ST_SetSRID(ST_MakePoint(p.lon, p.lat), 4326)), 3857), $3), 4326)
			FROM unnest($1::float8[], $2::float8[]) AS p(lon, lat)
		))
		ORDER BY s.id
	`

	lons := make([]float64, len(anchors))
	lats := make([]float64, len(anchors))
	for i, a := range anchors {
		lons[i] = a.Lon
		lats[i] = a.Lat
	}

	rows, err := s.pool.Query(ctx, query, lons, lats, radiusKm*1000)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments around points: %w", err)
	}
	defer rows.Close()
	return scanSegments(rows)
}

func (s *PostGISSource) StationCoordinate(ctx context.Context, station string) (geo.Coordinate, error) {
	const query = `SELECT ST_Y(geom), ST_X(geom) FROM rail_stations WHERE name = $1`

	var lat, lon float64
	err := s.pool.QueryRow(ctx, query, station).Scan(&lat, &lon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geo.Coordinate{}, util.WrapErrorf(datastructure.ErrStationNotFound, util.ErrNotFound,
				"station %s not found", station)
		}
		return geo.Coordinate{}, fmt.Errorf("failed to query station %s: %w", station, err)
	}
	return geo.NewCoordinate(lat, lon), nil
}

func (s *PostGISSource) RoutesAroundPoints(ctx context.Context, anchors []geo.Coordinate, radiusKm float64) ([]*datastructure.RailRoute, error) {
	const query = `
		SELECT r.id, r.from_station, r.to_station, ST_AsBinary(r.geom)
		FROM rail_routes r
		WHERE ST_Intersects(r.geom, (
			SELECT ST_Transform(ST_Buffer(ST_Transform(ST_Collect(ST_SetSRID(ST_MakePoint(p.lon, p.lat), 4326)), 3857), $3), 4326)
			FROM unnest($1::float8[], $2::float8[]) AS p(lon, lat)
		))
		ORDER BY r.id
	`

	lons := make([]float64, len(anchors))
	lats := make([]float64, len(anchors))
	for i, a := range anchors {
		lons[i] = a.Lon
		lats[i] = a.Lat
	}

	rows, err := s.pool.Query(ctx, query, lons, lats, radiusKm*1000)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes around points: %w", err)
	}
	defer rows.Close()

	var routes []*datastructure.RailRoute
	for rows.Next() {
		var (
			id, fromStation, toStation string
			line                       orb.LineString
		)
		if err := rows.Scan(&id, &fromStation, &toStation, wkb.Scanner(&line)); err != nil {
			return nil, fmt.Errorf("failed to scan route row: %w", err)
		}
		route, err := datastructure.NewRailRoute(id, fromStation, toStation, lineToCoords(line))
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read route rows: %w", err)
	}
	return routes, nil
}

func scanSegments(rows pgx.Rows) ([]*datastructure.TrackSegment, error) {
	var segments []*datastructure.TrackSegment
	for rows.Next() {
		var (
			id   string
			line orb.LineString
		)
		if err := rows.Scan(&id, wkb.Scanner(&line)); err != nil {
			return nil, fmt.Errorf("failed to scan segment row: %w", err)
		}
		seg, err := datastructure.NewTrackSegment(id, lineToCoords(line))
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read segment rows: %w", err)
	}
	return segments, nil
}

func lineToCoords(line orb.LineString) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(line))
	for i, p := range line {
		coords[i] = geo.NewCoordinate(p.Lat(), p.Lon())
	}
	return coords
}
