// Package cellgroup implements spec §4.6's cell-group abstraction: a
// collection of cells sharing a backend and an integrator instance,
// consuming one epoch's event lane and producing spikes plus sampled
// probe values.
//
// Grounded on the teacher's InstanceSimulator (sim/cluster/instance.go):
// one simulation unit wrapping a backend, driven once per tick by the
// owning ClusterSimulator, generalized here from "one simulated replica"
// to "one group of cells sharing a backend".
package cellgroup

import "github.com/cortexsim/engine/engine"

// Group is the common interface every cell-group kind implements.
type Group interface {
	Kind() engine.CellKind
	GIDs() []engine.GID
	// Advance integrates across the whole epoch with step dt, consuming
	// the lane's events before epoch.TEnd and producing spikes and sampled
	// values; it is called once per epoch by the engine (spec §4.9 task B).
	Advance(epoch engine.Epoch, dt float64, lane *engine.Lane)
	// Spikes returns every spike generated since the last ClearSpikes.
	Spikes() []engine.Spike
	// ClearSpikes empties the group's thread-local spike store (spec §4.6
	// step 3, "drain spikes into the thread-local spike store").
	ClearSpikes()
}

// Sampler is one probe registration: sample Target's Kind value on a fixed
// Interval, starting at the first epoch it is live in.
type Sampler struct {
	Target   engine.CellAddress
	Kind     string
	Interval float64
	next     float64
	started  bool
}

// Sample is one recorded probe value.
type Sample struct {
	Target engine.CellAddress
	Kind   string
	Time   float64
	Value  float64
}

// BinningMode controls how a cell-group rounds event delivery times before
// queueing them into per-cell mechanism streams (spec §4.6, "Event binning
// (optional)").
type BinningMode int

const (
	BinningNone BinningMode = iota
	BinningRegular
	BinningFollowing
)

// binTime applies a BinningMode to one event time. BinningRegular rounds
// down to the nearest multiple of binDt; BinningFollowing rounds down to
// the nearest multiple of the integration step dt (coalescing activations
// onto step boundaries rather than an independent bin width).
func binTime(mode BinningMode, t, binDt, stepDt float64) float64 {
	switch mode {
	case BinningRegular:
		if binDt <= 0 {
			return t
		}
		return float64(int64(t/binDt)) * binDt
	case BinningFollowing:
		if stepDt <= 0 {
			return t
		}
		return float64(int64(t/stepDt)) * stepDt
	default:
		return t
	}
}
