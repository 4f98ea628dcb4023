package route

// searchState is the BFS frontier key at route granularity: the route being
// ridden and the station the traversal stands at after riding it. The same
// route can be entered at either of its stations, so the route id alone is
// not enough search state.
type searchState struct {
	node string
	exit string
}

type bfsEntry struct {
	state  searchState
	parent *bfsEntry
}

// shortestPath searches for a hop-shortest chain of routes from fromStation
// to toStation. When entryStation is non-empty (a continued multi-via
// chain), start routes touching it may only exit on the side consistent
// with having been entered there. Returns nil when toStation is unreachable
// inside the loaded graph.
func (g *routeGraph) shortestPath(fromStation, toStation, entryStation string) []searchState {
	visited := make(map[searchState]bool)
	queue := make([]*bfsEntry, 0, len(g.nodes))

	for _, id := range g.startCandidates(fromStation) {
		r := g.nodes[id]
		exit := r.OtherStation(fromStation)
		if entryStation != "" && r.TouchesStation(entryStation) {
			exit = r.OtherStation(entryStation)
		}

		st := searchState{node: id, exit: exit}
		if visited[st] {
			continue
		}
		visited[st] = true

		entry := &bfsEntry{state: st}
		if exit == toStation {
			return unwind(entry)
		}
		queue = append(queue, entry)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, nb := range g.neighborsAt(cur.state.node, cur.state.exit) {
			next := searchState{
				node: nb,
				exit: g.nodes[nb].OtherStation(cur.state.exit),
			}
			if visited[next] {
				continue
			}
			visited[next] = true

			entry := &bfsEntry{state: next, parent: cur}
			if next.exit == toStation {
				return unwind(entry)
			}
			queue = append(queue, entry)
		}
	}
	return nil
}

func unwind(entry *bfsEntry) []searchState {
	var states []searchState
	for cur := entry; cur != nil; cur = cur.parent {
		states = append(states, cur.state)
	}
	for i, j := 0, len(states)-1; i < j; i, j = i+1, j-1 {
		states[i], states[j] = states[j], states[i]
	}
	return states
}
