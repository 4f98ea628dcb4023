package segment

import (
	"github.com/railmapper/railpath/pkg/datastructure"
)

// searchState is the BFS frontier key. A segment alone is not enough state:
// the same segment can be stood on at either physical end, and jumping
// between its ends without traversing it must be impossible. exit is the
// quantized endpoint key the traversal currently stands at.
type searchState struct {
	node string
	exit string
}

type bfsEntry struct {
	state  searchState
	parent *bfsEntry
}

// shortestPath runs breadth-first search from startID to endID and returns
// the state sequence of a hop-shortest path, or nil when endID is not
// reachable inside the loaded graph. state[i].exit is the junction between
// node i and node i+1; the last state's exit is the path's far end.
func (g *connectivityGraph) shortestPath(startID, endID string) []searchState {
	start, ok := g.nodes[startID]
	if !ok {
		return nil
	}
	if !g.contains(endID) {
		return nil
	}
	if startID == endID {
		return []searchState{{node: startID, exit: start.EndKey()}}
	}

	visited := make(map[searchState]bool)
	queue := make([]*bfsEntry, 0, len(g.nodes))

	for _, exitKey := range startExitKeys(start) {
		st := searchState{node: startID, exit: exitKey}
		visited[st] = true
		queue = append(queue, &bfsEntry{state: st})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, nb := range g.neighborsAt(cur.state.node, cur.state.exit) {
			next := searchState{
				node: nb,
				exit: g.nodes[nb].OtherEndKey(cur.state.exit),
			}
			if visited[next] {
				continue
			}
			visited[next] = true

			entry := &bfsEntry{state: next, parent: cur}
			if nb == endID {
				return unwind(entry)
			}
			queue = append(queue, entry)
		}
	}
	return nil
}

// startExitKeys lists the legal initial exit sides of the start segment:
// both physical ends, collapsed to one for closed loops.
func startExitKeys(s *datastructure.TrackSegment) []string {
	if s.StartKey() == s.EndKey() {
		return []string{s.StartKey()}
	}
	return []string{s.StartKey(), s.EndKey()}
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
