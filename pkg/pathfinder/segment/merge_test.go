package segment

import (
	"errors"
	"testing"

	"github.com/railmapper/railpath/pkg/datastructure"
	"github.com/railmapper/railpath/pkg/geo"
	"github.com/railmapper/railpath/pkg/logger"
	"github.com/railmapper/railpath/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	log, err := logger.New()
	require.NoError(t, err)
	return log
}

func TestMergeChainInOrder(t *testing.T) {
	merged, err := MergeChain([][]geo.Coordinate{
		{c(0, 0), c(0, 1)},
		{c(0, 1), c(0, 2)},
		{c(0, 2), c(0, 3)},
	}, testLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []geo.Coordinate{c(0, 0), c(0, 1), c(0, 2), c(0, 3)}, merged)
}

func TestMergeChainReversedSublists(t *testing.T) {
	// middle and last geometries stored against travel direction
	merged, err := MergeChain([][]geo.Coordinate{
		{c(0, 0), c(0, 1)},
		{c(0, 2), c(0, 1)},
		{c(0, 3), c(0, 2)},
	}, testLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []geo.Coordinate{c(0, 0), c(0, 1), c(0, 2), c(0, 3)}, merged)
}

func TestMergeChainSeedsAtUniqueEndpoint(t *testing.T) {
	// the sublist holding the chain's free end is not the first one given
	merged, err := MergeChain([][]geo.Coordinate{
		{c(0, 1), c(0, 2)},
		{c(0, 1), c(0, 0)},
		{c(0, 2), c(0, 3)},
	}, testLogger(t))
	require.NoError(t, err)

	require.Len(t, merged, 4)
	first, last := merged[0], merged[len(merged)-1]
	assert.True(t,
		(first == c(0, 0) && last == c(0, 3)) || (first == c(0, 3) && last == c(0, 0)),
		"merged chain must run free end to free end, got %v .. %v", first, last)

	// continuity: every consecutive pair must be a real sub-edge
	for i := 1; i < len(merged); i++ {
		assert.NotEqual(t, datastructure.CoordKey(merged[i-1]), datastructure.CoordKey(merged[i]),
			"junction vertex duplicated at %d", i)
	}
}

func TestMergeChainRoundTrip(t *testing.T) {
	sublists := [][]geo.Coordinate{
		{c(0, 0), c(0, 1)},
		{c(0, 1), c(0, 2)},
		{c(0, 2), c(0, 3)},
	}
	fwd, err := MergeChain(sublists, testLogger(t))
	require.NoError(t, err)

	reversed := make([][]geo.Coordinate, 0, len(sublists))
	for i := len(sublists) - 1; i >= 0; i-- {
		reversed = append(reversed, sublists[i])
	}
	back, err := MergeChain(reversed, testLogger(t))
	require.NoError(t, err)

	assert.Equal(t, fwd, util.ReverseG(back), "reversed input order must yield the reversed chain")
}

func TestMergeChainJunctionNotDuplicated(t *testing.T) {
	merged, err := MergeChain([][]geo.Coordinate{
		{c(0, 0), c(0, 0.5), c(0, 1)},
		{c(0, 1), c(0, 1.5), c(0, 2)},
	}, testLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []geo.Coordinate{c(0, 0), c(0, 0.5), c(0, 1), c(0, 1.5), c(0, 2)}, merged)
}

func TestMergeChainBroken(t *testing.T) {
	_, err := MergeChain([][]geo.Coordinate{
		{c(0, 0), c(0, 1)},
		{c(0, 5), c(0, 6)},
	}, testLogger(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, datastructure.ErrChainBroken), "want ErrChainBroken, got %v", err)
}

func TestMergeChainSmallInputs(t *testing.T) {
	merged, err := MergeChain(nil, testLogger(t))
	require.NoError(t, err)
	assert.Nil(t, merged)

	single := [][]geo.Coordinate{{c(0, 0), c(0, 1)}}
	merged, err = MergeChain(single, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, single[0], merged)

	merged[0] = c(9, 9)
	assert.Equal(t, c(0, 0), single[0][0], "merge must copy, not alias, a single sublist")
}

func TestMergeChainClosedLoopBestEffort(t *testing.T) {
	// a closed loop has no unique endpoint; merge still returns a continuous ring
	merged, err := MergeChain([][]geo.Coordinate{
		{c(0, 0), c(0, 1)},
		{c(0, 1), c(1, 1)},
		{c(1, 1), c(0, 0)},
	}, testLogger(t))
	require.NoError(t, err)
	require.Len(t, merged, 4)
	assert.Equal(t, datastructure.CoordKey(merged[0]), datastructure.CoordKey(merged[len(merged)-1]))
}
