package spatialsource

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
	"go.uber.org/zap"
)

var acceptedRailwayTags = map[string]bool{
	"rail":         true,
	"light_rail":   true,
	"subway":       true,
	"tram":         true,
	"narrow_gauge": true,
}

// OSMRailwayParser extracts railway tracks from an OpenStreetMap .osm.pbf
// extract: every accepted railway way becomes one TrackSegment, every
// railway=station node with a name becomes a station. Two scan passes: ways
// first to learn which node coordinates are needed, then nodes.
type OSMRailwayParser struct {
	log *zap.Logger
}

func NewOSMRailwayParser(log *zap.Logger) *OSMRailwayParser {
	return &OSMRailwayParser{log: log}
}

// Parse loads path into a fresh InMemorySource.
func (p *OSMRailwayParser) Parse(ctx context.Context, path string) (*InMemorySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open osm extract: %w", err)
	}
	defer f.Close()

	var ways []*osm.Way
	neededNodes := make(map[osm.NodeID]struct{})
	nodeCoords := make(map[osm.NodeID]geo.Coordinate)
	stations := make(map[string]geo.Coordinate)

	scanner := osmpbf.New(ctx, f, 0)
	for scanner.Scan() {
		o := scanner.Object()
		way, ok := o.(*osm.Way)
		if !ok {
			continue
		}
		if len(way.Nodes) < 2 || !acceptedRailwayTags[way.Tags.Find("railway")] {
			continue
		}
		ways = append(ways, way)
		for _, node := range way.Nodes {
			neededNodes[node.ID] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("failed to scan osm ways: %w", err)
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	scanner = osmpbf.New(ctx, f, 0)
	defer scanner.Close()
	for scanner.Scan() {
		o := scanner.Object()
		node, ok := o.(*osm.Node)
		if !ok {
			continue
		}
		if _, wanted := neededNodes[node.ID]; wanted {
			nodeCoords[node.ID] = geo.NewCoordinate(node.Lat, node.Lon)
		}
		if node.Tags.Find("railway") == "station" {
			if name := node.Tags.Find("name"); name != "" {
				stations[name] = geo.NewCoordinate(node.Lat, node.Lon)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan osm nodes: %w", err)
	}

	source, skipped := p.assemble(ways, nodeCoords, stations)

	p.log.Info("osm railway extract loaded",
		zap.Int("segments", len(ways)-skipped),
		zap.Int("stations", len(stations)),
		zap.Int("skippedWays", skipped))
	return source, nil
}

// assemble turns resolved ways into track segments. A way referencing a node
// the extract never provided is dropped whole rather than shortened.
func (p *OSMRailwayParser) assemble(ways []*osm.Way, nodeCoords map[osm.NodeID]geo.Coordinate,
	stations map[string]geo.Coordinate) (*InMemorySource, int) {

	source := NewInMemorySource(p.log)
	skipped := 0
	for _, way := range ways {
		coords := make([]geo.Coordinate, 0, len(way.Nodes))
		complete := true
		for _, node := range way.Nodes {
			coord, ok := nodeCoords[node.ID]
			if !ok {
				complete = false
				break
			}
			coords = append(coords, coord)
		}
		if !complete || len(coords) < 2 {
			skipped++
			continue
		}
		seg, err := datastructure.NewTrackSegment(strconv.FormatInt(int64(way.ID), 10), coords)
		if err != nil {
			skipped++
			continue
		}
		source.AddSegment(seg)
	}
	for name, coord := range stations {
		source.AddStation(name, coord)
	}
	return source, skipped
}
