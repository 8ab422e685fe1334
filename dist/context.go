// Package dist provides the narrow distributed_context capability set the
// engine consumes (spec §6): rank identity, gather-all with partition,
// reductions, barrier. Two backends: a single-rank "dry run" replication
// context and a real single-process (size=1) context; a genuine MPI-style
// collective backend is an external collaborator per spec §1 and is not
// implemented here — Context is the seam a real transport would plug into.
//
// Grounded on the teacher's sub-package init()-registration pattern
// (sim/kv/register.go) for breaking the core/backend import cycle, and
// directly on original_source's dry_run_context.cpp for the dry-run
// replication semantics (gid/source offset by rank*cellsPerTile, identity
// reductions scaled by rank count).
package dist

import "fmt"

// GatheredVector carries a concatenated array plus an inclusive prefix-sum
// partition array of length size()+1 (spec §6).
type GatheredVector[T any] struct {
	Values    []T
	Partition []int // len == ranks+1
}

// PartitionRange returns the [begin, end) slice bounds contributed by rank r.
func (g GatheredVector[T]) PartitionRange(r int) (int, int) {
	return g.Partition[r], g.Partition[r+1]
}

// Context is the capability set consumed by the engine's communicator and
// label resolver.
type Context interface {
	ID() int
	Size() int

	GatherSpikesF64(local []SpikeWire) GatheredVector[SpikeWire]
	GatherGIDs(local []uint32) GatheredVector[uint32]
	GatherLabeledRanges(local []LabeledRangeWire) GatheredVector[LabeledRangeWire]

	Min(x float64) float64
	Max(x float64) float64
	Sum(x float64) float64
	GatherFloat(x float64, root int) []float64

	Barrier()

	Name() string
}

// SpikeWire is the plain, trivially-copyable wire tuple for a spike (spec
// §6): source gid, source local index, time.
type SpikeWire struct {
	GID   uint32
	Index uint32
	Time  float64
}

// LabeledRangeWire is the wire form of one row of a gathered label table
// (engine.LabeledRange, flattened for transport).
type LabeledRangeWire struct {
	GID          uint32
	Label        string
	RangeBegin   uint32
	RangeLen     int
}

func (g GatheredVector[T]) String() string {
	return fmt.Sprintf("gathered(%d values, partition %v)", len(g.Values), g.Partition)
}
