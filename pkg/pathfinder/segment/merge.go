package segment

import (
	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
	"github.com/railmapper/railpath/pkg/util"
	"go.uber.org/zap"
)

// MergeChain stitches an ordered set of polylines, each possibly stored in
// either direction, into one continuously oriented polyline.
//
// An endpoint coordinate occurring exactly once across all sublists marks a
// true chain end; the sublist holding it seeds the chain, oriented so the
// free end comes first. The chain then grows at its tail: find a remaining
// sublist sharing the tail coordinate, reverse it if needed so the shared
// coordinate leads, append all but that duplicated junction point.
//
// ErrChainBroken means the adjacency said two nodes connect but their
// geometries share no coordinate. That is a data-integrity signal, never
// patched over here.
func MergeChain(sublists [][]geo.Coordinate, log *zap.Logger) ([]geo.Coordinate, error) {
	if len(sublists) == 0 {
		return nil, nil
	}
	if len(sublists) == 1 {
		out := make([]geo.Coordinate, len(sublists[0]))
		copy(out, sublists[0])
		return out, nil
	}

	endpointCount := make(map[string]int)
	for _, sub := range sublists {
		endpointCount[datastructure.CoordKey(sub[0])]++
		endpointCount[datastructure.CoordKey(sub[len(sub)-1])]++
	}

	seedIdx := -1
	seedReversed := false
	for i, sub := range sublists {
		if endpointCount[datastructure.CoordKey(sub[0])] == 1 {
			seedIdx = i
			seedReversed = false
			break
		}
		if endpointCount[datastructure.CoordKey(sub[len(sub)-1])] == 1 {
			seedIdx = i
			seedReversed = true
			break
		}
	}
	if seedIdx == -1 {
		// no unique endpoint, e.g. a closed loop. Best effort only.
		log.Warn("chain has no unique endpoint, seeding with first sublist",
			zap.Int("sublists", len(sublists)))
		seedIdx = 0
		seedReversed = false
	}

	var merged []geo.Coordinate
	if seedReversed {
		merged = util.ReverseG(sublists[seedIdx])
	} else {
		merged = make([]geo.Coordinate, len(sublists[seedIdx]))
		copy(merged, sublists[seedIdx])
	}

	remaining := make([][]geo.Coordinate, 0, len(sublists)-1)
	for i, sub := range sublists {
		if i != seedIdx {
			remaining = append(remaining, sub)
		}
	}

	for len(remaining) > 0 {
		tailKey := datastructure.CoordKey(merged[len(merged)-1])

		found := -1
		for i, sub := range remaining {
			if datastructure.CoordKey(sub[0]) == tailKey {
				merged = append(merged, sub[1:]...)
				found = i
				break
			}
			if datastructure.CoordKey(sub[len(sub)-1]) == tailKey {
				merged = append(merged, util.ReverseG(sub)[1:]...)
				found = i
				break
			}
		}
		if found == -1 {
			return nil, util.WrapErrorf(datastructure.ErrChainBroken, util.ErrInternalServerError,
				"no remaining geometry connects to chain tail %s (%d sublists left)", tailKey, len(remaining))
		}
		remaining = append(remaining[:found], remaining[found+1:]...)
	}

	return merged, nil
}
