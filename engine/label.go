// Label resolver: maps (gid, label, selection policy) to a local synapse
// index (spec §4.3). Grounded on the teacher's registry/lookup idiom
// (sim/kv_store.go's interface + map-backed implementation) generalized to
// a globally-gathered, lexicographically-sorted range table exactly as
// spec describes it being built from dist.Context.GatherLabeledRanges.

package engine

import "sort"

// ResolutionPolicy selects among multiple local indices bound to one label.
type ResolutionPolicy int

const (
	// RoundRobin cycles through the range on successive resolutions.
	RoundRobin ResolutionPolicy = iota
	// AssertUnivalent requires the range to have exactly one element.
	AssertUnivalent
)

// LIDRange is a contiguous range of local indices [Begin, Begin+Len).
type LIDRange struct {
	Begin LID
	Len   int
}

// LabeledRange is one row of the gathered label table (spec §4.3):
// (gid, label, index range). The row carries no partition information; the
// resolver only needs GID+Label+Range.
type LabeledRange struct {
	GID   GID
	Label string
	Range LIDRange
}

type tableKey struct {
	gid   GID
	label string
}

// LabelResolver consumes a globally gathered, lexicographically sorted
// (gid, label, range) table and resolves (gid, label, policy) queries.
type LabelResolver struct {
	table   map[tableKey]LIDRange
	counter map[tableKey]int
}

// NewLabelResolver builds a resolver from a gathered label table. Rows need
// not be pre-sorted by the caller; NewLabelResolver sorts them
// lexicographically by (gid, label) as spec requires of the gathered table.
func NewLabelResolver(rows []LabeledRange) *LabelResolver {
	sorted := append([]LabeledRange(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].GID != sorted[j].GID {
			return sorted[i].GID < sorted[j].GID
		}
		return sorted[i].Label < sorted[j].Label
	})

	r := &LabelResolver{
		table:   make(map[tableKey]LIDRange, len(sorted)),
		counter: make(map[tableKey]int, len(sorted)),
	}
	for _, row := range sorted {
		r.table[tableKey{row.GID, row.Label}] = row.Range
	}
	return r
}

// GetLID resolves (gid, label, policy) to a local index, per spec §4.3:
//   - RoundRobin: range.Begin + (counter[gid,label]++ mod range.Len)
//   - AssertUnivalent: range.Begin iff range.Len == 1, else ambiguous_label
//
// Fails with no_such_label if the pair is not present.
func (r *LabelResolver) GetLID(gid GID, label string, policy ResolutionPolicy) (LID, error) {
	key := tableKey{gid, label}
	rng, ok := r.table[key]
	if !ok {
		return 0, Errorf(ErrNoSuchLabel, "", "no such label (gid=%d, label=%q)", gid, label)
	}

	switch policy {
	case AssertUnivalent:
		if rng.Len != 1 {
			return 0, Errorf(ErrAmbiguousLabel, "", "ambiguous label (gid=%d, label=%q): range length %d != 1", gid, label, rng.Len)
		}
		return rng.Begin, nil
	case RoundRobin:
		n := r.counter[key]
		r.counter[key] = n + 1
		return rng.Begin + LID(n%rng.Len), nil
	default:
		Internal("unhandled resolution policy %d", policy)
		return 0, nil
	}
}
