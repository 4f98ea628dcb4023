package segment

// Alternative search: invoked only when the primary BFS result was flagged
// as backtracking. It re-runs the search with three changes: cumulative
// geographic distance is tracked per frontier entry, a best-distance map per
// (node, exit side) replaces the single visited set so competing paths to
// the same state coexist until dominated, and any transition that would
// itself reverse direction is rejected during expansion.

type altEntry struct {
	state  searchState
	distKm float64
	parent *altEntry
}

// alternativePath looks for a reversal-free path from startID to endID whose
// accumulated distance stays within maxDistKm. The first attempt leaves the
// first hop free; if that finds nothing, one retry per possible first hop is
// made with that hop forced. BFS keeps a single path per state, so a viable
// alternate through a different initial branch would otherwise be missed.
func (g *connectivityGraph) alternativePath(startID, endID string, maxDistKm float64) []searchState {
	if path := g.alternativeSearch(startID, endID, maxDistKm, ""); path != nil {
		return path
	}
	for _, firstHop := range g.adjacency[startID] {
		if path := g.alternativeSearch(startID, endID, maxDistKm, firstHop); path != nil {
			return path
		}
	}
	return nil
}

func (g *connectivityGraph) alternativeSearch(startID, endID string, maxDistKm float64, forcedFirstHop string) []searchState {
	start, ok := g.nodes[startID]
	if !ok || !g.contains(endID) {
		return nil
	}
	if startID == endID {
		return []searchState{{node: startID, exit: start.EndKey()}}
	}

	bestDist := make(map[searchState]float64)
	queue := make([]*altEntry, 0, len(g.nodes))

	for _, exitKey := range startExitKeys(start) {
		entry := &altEntry{
			state:  searchState{node: startID, exit: exitKey},
			distKm: start.LengthKm(),
		}
		bestDist[entry.state] = entry.distKm
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

			junction := cur.state.exit
			nbSeg := g.nodes[nb]
			if isBacktrackTransition(g.nodes[cur.state.node], nbSeg, junction) {
				continue
			}

			next := searchState{node: nb, exit: nbSeg.OtherEndKey(junction)}
			nextDist := cur.distKm + nbSeg.LengthKm()
			if nextDist > maxDistKm {
				continue
			}
			if best, ok := bestDist[next]; ok && best <= nextDist {
				continue
			}
			bestDist[next] = nextDist

			entry := &altEntry{state: next, distKm: nextDist, parent: cur}
			if nb == endID {
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
