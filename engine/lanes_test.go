package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLane_MergeInto_PreservesPrevTailAndSortsFresh(t *testing.T) {
	target := CellAddress{GID: 1, LID: 0}
	prev := NewLane()
	prev.events = []Event{
		{Target: target, Time: 5, Weight: 1}, // < tEnd, dropped
		{Target: target, Time: 12, Weight: 1}, // >= tEnd, kept as tail
	}

	fresh := []Event{
		{Target: target, Time: 9, Weight: 2},
		{Target: target, Time: 7, Weight: 1},
	}

	next := NewLane()
	next.MergeInto(fresh, prev, 10)

	require.True(t, next.IsSortedNondecreasing())
	require.Len(t, next.events, 3)
	require.Equal(t, 7.0, next.events[0].Time)
	require.Equal(t, 9.0, next.events[1].Time)
	require.Equal(t, 12.0, next.events[2].Time)
}

func TestLane_MergeInto_NilPrevOnlyUsesFresh(t *testing.T) {
	target := CellAddress{GID: 1, LID: 0}
	fresh := []Event{{Target: target, Time: 3, Weight: 1}}

	next := NewLane()
	next.MergeInto(fresh, nil, 10)
	require.Len(t, next.events, 1)
}

func TestLane_PopBefore_SplitsOnTimeBoundary(t *testing.T) {
	target := CellAddress{GID: 1, LID: 0}
	l := NewLane()
	l.events = []Event{
		{Target: target, Time: 1, Weight: 1},
		{Target: target, Time: 2, Weight: 1},
		{Target: target, Time: 5, Weight: 1},
	}

	popped := l.PopBefore(3)
	require.Len(t, popped, 2)
	require.Equal(t, 1, l.Len())
	peek, ok := l.PeekTime()
	require.True(t, ok)
	require.Equal(t, 5.0, peek)
}

func TestLane_PeekTime_EmptyLaneReturnsFalse(t *testing.T) {
	l := NewLane()
	_, ok := l.PeekTime()
	require.False(t, ok)
}

func TestLaneSet_Lane_ReturnsDistinctLanesPerGroup(t *testing.T) {
	ls := NewLaneSet(3)
	require.Equal(t, 3, ls.Len())
	require.NotSame(t, ls.Lane(0), ls.Lane(1))
}

// TestEpochBoundarySafety_SpikeNeverObservedBeforeMinDelay is spec §8
// testable scenario 6, literally: min_delay=2ms gives t_interval=1ms, and a
// spike fired at t=0.9ms routed over a delay=min_delay connection produces
// an event at t=0.9+2=2.9ms. That event must never be part of epoch 0's
// lane state, and must already be observed in the lane state from epoch 1
// onward — even though it isn't actually popped (delivered) until its own
// due epoch.
func TestEpochBoundarySafety_SpikeNeverObservedBeforeMinDelay(t *testing.T) {
	const tInterval = 1.0
	target := CellAddress{GID: 1, LID: 0}
	delivered := Event{Target: target, Time: 2.9, Weight: 1}

	laneSets := [2]*LaneSet{NewLaneSet(1), NewLaneSet(1)}

	// Epoch 0 [0,1): the communicator routes the freshly generated event
	// into the NEXT buffer (epoch 1's), never into epoch 0's own lane.
	epoch0End := 1 * tInterval
	laneSets[1].Lane(0).MergeInto([]Event{delivered}, laneSets[0].Lane(0), epoch0End)

	require.Empty(t, laneSets[0].Lane(0).Events(),
		"epoch id 0's lane state must never observe an event generated mid-epoch 0")
	require.NotEmpty(t, laneSets[1].Lane(0).Events(),
		"the event is already resident in the lane epoch 1 will use")
	require.Empty(t, laneSets[0].Lane(0).PopBefore(epoch0End),
		"nothing is delivered during epoch 0's own advance")

	// Epoch 1 [1,2): epoch id 1's lane state is laneSets[1], unaffected by
	// the concurrent exchange that is preparing laneSets[0] for epoch 2.
	require.NotEmpty(t, laneSets[1].Lane(0).Events(),
		"epoch id 1's lane state observes the event")
	epoch1End := 2 * tInterval
	require.Empty(t, laneSets[1].Lane(0).PopBefore(epoch1End),
		"the event's time (2.9ms) is still beyond epoch 1's end (2ms), so it is not yet delivered")

	laneSets[0].Lane(0).MergeInto(nil, laneSets[1].Lane(0), epoch1End)
	require.NotEmpty(t, laneSets[0].Lane(0).Events(), "still observed going into epoch id 2")

	// Epoch 2 [2,3): this is the event's due epoch, so it is finally popped.
	epoch2End := 3 * tInterval
	popped := laneSets[0].Lane(0).PopBefore(epoch2End)
	require.Len(t, popped, 1)
	require.Equal(t, 2.9, popped[0].Time)
}
