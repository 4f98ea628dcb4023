package route

import (
	"sort"

	"github.com/railmapper/railpath/pkg/util"
)

type altEntry struct {
	state  searchState
	distKm float64
	parent *altEntry
}

// alternativePath looks for a reversal-free chain of routes within the
// distance cap. The first attempt leaves the first hop free; on failure one
// retry per possible first hop forces that hop, since plain BFS keeps a
// single path per state and can miss alternates through other initial
// branches.
func (g *routeGraph) alternativePath(fromStation, toStation, entryStation string, maxDistKm float64) []searchState {
	if path := g.alternativeSearch(fromStation, toStation, entryStation, maxDistKm, ""); path != nil {
		return path
	}

	seen := make(map[string]bool)
	var firstHops []string
	for _, id := range g.startCandidates(fromStation) {
		for _, nb := range g.adjacency[id] {
			if !seen[nb] {
				seen[nb] = true
				firstHops = append(firstHops, nb)
			}
		}
	}
	sort.Slice(firstHops, func(i, j int) bool { return util.LessNumericAware(firstHops[i], firstHops[j]) })

	for _, hop := range firstHops {
		if path := g.alternativeSearch(fromStation, toStation, entryStation, maxDistKm, hop); path != nil {
			return path
		}
	}
	return nil
}

func (g *routeGraph) alternativeSearch(fromStation, toStation, entryStation string,
	maxDistKm float64, forcedFirstHop string) []searchState {

	bestDist := make(map[searchState]float64)
	queue := make([]*altEntry, 0, len(g.nodes))

	for _, id := range g.startCandidates(fromStation) {
		r := g.nodes[id]
		exit := r.OtherStation(fromStation)
		if entryStation != "" && r.TouchesStation(entryStation) {
			exit = r.OtherStation(entryStation)
		}

		entry := &altEntry{
			state:  searchState{node: id, exit: exit},
			distKm: r.LengthKm(),
		}
		if known, ok := bestDist[entry.state]; ok && known <= entry.distKm {
			continue
		}
		bestDist[entry.state] = entry.distKm

		if exit == toStation {
			return unwindAlt(entry)
		}
		queue = append(queue, entry)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if best, ok := bestDist[cur.state]; ok && cur.distKm > best {
			continue // dominated while queued
		}

		for _, nb := range g.neighborsAt(cur.state.node, cur.state.exit) {
			if cur.parent == nil && forcedFirstHop != "" && nb != forcedFirstHop {
				continue
			}

			station := cur.state.exit
			if g.isBacktrackTransition(cur.state.node, nb, station) {
				continue
			}

			nbRoute := g.nodes[nb]
			next := searchState{node: nb, exit: nbRoute.OtherStation(station)}
			nextDist := cur.distKm + nbRoute.LengthKm()
			if nextDist > maxDistKm {
				continue
			}
			if best, ok := bestDist[next]; ok && best <= nextDist {
				continue
			}
			bestDist[next] = nextDist

			entry := &altEntry{state: next, distKm: nextDist, parent: cur}
			if next.exit == toStation {
				return unwindAlt(entry)
			}
			queue = append(queue, entry)
		}
	}
	return nil
}

func unwindAlt(entry *altEntry) []searchState {
	var states []searchState
	for cur := entry; cur != nil; cur = cur.parent {
		states = append(states, cur.state)
	}
	for i, j := 0, len(states)-1; i < j; i, j = i+1, j-1 {
		states[i], states[j] = states[j], states[i]
	}
	return states
}
