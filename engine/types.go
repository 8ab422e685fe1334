// Defines the core value types shared across the engine: cell identity,
// spikes, connections, events and the epoch window. Mirrors the teacher's
// style of small plain structs with a String() method (sim/request.go).

package engine

import "fmt"

// GID is a globally unique cell identifier.
type GID uint32

// LID is a local index within a cell: a source or target address local to
// the cell's own numbering (e.g. a synapse index, a detector index).
type LID uint32

// CellAddress addresses a source or target within a specific cell.
type CellAddress struct {
	GID GID
	LID LID
}

func (a CellAddress) String() string {
	return fmt.Sprintf("(%d,%d)", a.GID, a.LID)
}

// Less orders addresses by GID then LID, the order connections are sorted
// by within a source-domain partition (spec §4.7).
func (a CellAddress) Less(b CellAddress) bool {
	if a.GID != b.GID {
		return a.GID < b.GID
	}
	return a.LID < b.LID
}

// Spike is a source cell firing at a point in time.
type Spike struct {
	Source CellAddress
	Time   float64
}

func (s Spike) String() string {
	return fmt.Sprintf("spike(%s @ %.6f)", s.Source, s.Time)
}

// Connection is a synaptic wire from a source cell's spike output to a
// local target address, stored on the receiving rank.
type Connection struct {
	Source      CellAddress
	Dest        CellAddress
	Weight      float64
	Delay       float64 // must be >= network min_delay
	LocalGroup  int     // index of the local cell-group owning Dest
}

// GapJunction is an instantaneous bidirectional coupling between two CVs on
// (possibly) different cells, forcing both cells into the same cell-group.
type GapJunction struct {
	Peer        CellAddress
	Local       CellAddress
	Conductance float64 // uS
}

// Event is a scheduled delivery of weight onto a target address at a time.
// Produced either by a Connection firing or by an event Generator.
type Event struct {
	Target CellAddress
	Time   float64
	Weight float64
}

// Less implements the event queue's deterministic tie-break: time, then
// target, then weight (spec §4.1).
func (e Event) Less(o Event) bool {
	if e.Time != o.Time {
		return e.Time < o.Time
	}
	if e.Target != o.Target {
		return e.Target.Less(o.Target)
	}
	return e.Weight < o.Weight
}

func (e Event) String() string {
	return fmt.Sprintf("event(%s @ %.6f, w=%.4f)", e.Target, e.Time, e.Weight)
}

// Epoch is a half-open simulated-time window [TBegin, TEnd) over which cell
// groups integrate without needing externally originated events.
type Epoch struct {
	ID     int64
	TBegin float64
	TEnd   float64
}

func (e Epoch) String() string {
	return fmt.Sprintf("epoch(%d, [%.6f, %.6f))", e.ID, e.TBegin, e.TEnd)
}

// CellKind enumerates the recipe's supported cell kinds (spec §6).
type CellKind int

const (
	CellKindCable CellKind = iota
	CellKindLIF
	CellKindSpikeSource
	CellKindBenchmark
)

func (k CellKind) String() string {
	switch k {
	case CellKindCable:
		return "cable"
	case CellKindLIF:
		return "lif"
	case CellKindSpikeSource:
		return "spike_source"
	case CellKindBenchmark:
		return "benchmark"
	default:
		return fmt.Sprintf("cellkind(%d)", int(k))
	}
}

// Probe addresses a sampled quantity at a target and a kind tag (e.g. "voltage").
type Probe struct {
	Target CellAddress
	Kind   string
}
