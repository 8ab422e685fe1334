// Event lanes: per-local-cell-group sorted tails of future events, double
// buffered across epochs (spec §3, §4.1). Grounded on the teacher's
// WaitQueue (sim/queue.go) for the slice-backed FIFO idiom, generalized to a
// sorted merge buffer, and on spec's explicit two-way linear merge.

package engine

import "sort"

// Lane is the per-group event buffer for one epoch: a sorted-by-time tail
// of future events (spec glossary "Lane").
type Lane struct {
	events []Event
}

// NewLane returns an empty lane.
func NewLane() *Lane {
	return &Lane{events: make([]Event, 0)}
}

// Len reports the number of events currently buffered.
func (l *Lane) Len() int { return len(l.events) }

// Events returns the lane's contents. Callers must not mutate the slice.
func (l *Lane) Events() []Event { return l.events }

// Clear empties the lane.
func (l *Lane) Clear() { l.events = l.events[:0] }

// sortedByGeneratedTime sorts events by time (stable to preserve target/weight
// tie-break already encoded in Event.Less when times are equal).
func sortedByGeneratedTime(evs []Event) []Event {
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].Less(evs[j]) })
	return evs
}

// MergeInto performs the epoch-boundary merge (spec §4.1): it merges (a) a
// freshly generated, not-yet-sorted batch of events from the communicator,
// and (b) the tail of `prev` whose time >= tEnd, writing the sorted result
// into the receiver (the "next-epoch" lane buffer). `prev` is left
// unmodified; callers clear it separately once all groups have been merged
// (spec: "the current buffer is then cleared").
func (l *Lane) MergeInto(fresh []Event, prev *Lane, tEnd float64) {
	sortedFresh := sortedByGeneratedTime(append([]Event(nil), fresh...))

	var tail []Event
	if prev != nil {
		for _, e := range prev.events {
			if e.Time >= tEnd {
				tail = append(tail, e)
			}
		}
	}

	merged := make([]Event, 0, len(sortedFresh)+len(tail))
	i, j := 0, 0
	for i < len(sortedFresh) && j < len(tail) {
		if sortedFresh[i].Less(tail[j]) {
			merged = append(merged, sortedFresh[i])
			i++
		} else {
			merged = append(merged, tail[j])
			j++
		}
	}
	merged = append(merged, sortedFresh[i:]...)
	merged = append(merged, tail[j:]...)

	l.events = merged
}

// PopBefore removes and returns every event with Time < tUntil, in
// nondecreasing time order, leaving the remainder in the lane (used by
// cellgroup's per-step event delivery, spec §4.5 step 1).
func (l *Lane) PopBefore(tUntil float64) []Event {
	n := 0
	for n < len(l.events) && l.events[n].Time < tUntil {
		n++
	}
	popped := l.events[:n]
	l.events = l.events[n:]
	return popped
}

// PeekTime returns the time of the earliest remaining event and true, or
// (0, false) if the lane is empty.
func (l *Lane) PeekTime() (float64, bool) {
	if len(l.events) == 0 {
		return 0, false
	}
	return l.events[0].Time, true
}

// IsSortedNondecreasing reports whether the lane satisfies the lane
// sortedness invariant (spec §3); used by tests and assertions, never by
// production control flow.
func (l *Lane) IsSortedNondecreasing() bool {
	for i := 1; i < len(l.events); i++ {
		if l.events[i].Time < l.events[i-1].Time {
			return false
		}
	}
	return true
}

// LaneSet is the per-local-group collection of lanes for one epoch buffer
// slot. Engine owns two LaneSets (current/next), indexed identically by
// local group index.
type LaneSet struct {
	lanes []*Lane
}

// NewLaneSet allocates n empty lanes, one per local cell-group.
func NewLaneSet(n int) *LaneSet {
	ls := &LaneSet{lanes: make([]*Lane, n)}
	for i := range ls.lanes {
		ls.lanes[i] = NewLane()
	}
	return ls
}

func (ls *LaneSet) Lane(group int) *Lane { return ls.lanes[group] }
func (ls *LaneSet) Len() int             { return len(ls.lanes) }
