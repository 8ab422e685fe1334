// Package mech implements the mechanism ABI (spec §4.5, §6): polymorphic
// per-point/per-density channel objects with init/advance_state/
// compute_currents/apply_events/write_ions, produced by a catalogue keyed
// by name + backend tag.
//
// Grounded on the teacher's interface-plus-concrete-implementation-plus-
// registry idiom: sim/kv_store.go declares the KVStore interface,
// sim/kvcache.go implements it, sim/kv/register.go wires a constructor into
// a package-level factory var via init() to avoid an import cycle. Here the
// analog is mech.Instance (interface) + passive.go/expsyn.go/detector.go
// (implementations) + Catalogue.Register (explicit, no import-cycle issue
// since mech has no reverse dependency on its callers).
package mech

import "fmt"

// Kind distinguishes the four ABI-level mechanism categories (spec §6).
type Kind int

const (
	KindDensity Kind = iota
	KindPoint
	KindReversalPotential
	KindGapJunction
)

// State holds the shared per-CV numeric arrays a mechanism instance reads
// and writes (spec §4.5): voltage, current, conductance, time, and the
// per-ion views it needs. Owned by the integrator; mechanisms never
// allocate their own copies, matching spec's "pointers to shared v, i, g, t,
// dt" per-instance parameter pack.
type State struct {
	V  []float64 // mV, per CV
	I  []float64 // nA, per CV, accumulated
	G  []float64 // uS, per CV, accumulated
	T  float64
	Dt float64

	// Ion accumulators, keyed by ion name (e.g. "na", "k", "ca").
	IonCurrent         map[string][]float64
	IonConcentration   map[string][]float64
	IonReversal        map[string][]float64
}

// EventView is the strided view of delivered events an ApplyEvents call
// sees (spec §4.5 step 1): events whose Time < tTo, targeting this
// instance, as (cv index, weight) pairs in time order.
type EventView struct {
	CV     []int
	Weight []float64
}

// Instance is a per-group mechanism object bound to a list of CV indices
// with per-CV weights (spec §4.4, §6). Methods are called in the fixed
// order spec §4.5 documents: ApplyEvents, ComputeCurrents, (matrix solve),
// AdvanceState, WriteIons.
type Instance interface {
	// Name is the mechanism's catalogue key.
	Name() string
	// InstanceKind reports whether this is a density or point mechanism.
	InstanceKind() Kind
	// Fingerprint is a stable hash of the mechanism's symbolic source, used
	// to validate that two backends implement the same dynamics (spec §6).
	Fingerprint() string

	// Nodes returns the CV indices this instance covers and the
	// corresponding weights (spec §4.4): in [0,1] for density mechanisms,
	// 1 for point mechanisms.
	Nodes() []int
	Weights() []float64

	// Init sets any instance-local state to its resting value.
	Init(st *State)
	// ApplyEvents applies delivered events additively onto
	// conductance/state of their target CVs (spec §4.5 step 1).
	ApplyEvents(st *State, ev EventView)
	// ComputeCurrents writes into st.I/st.G from the current st.V
	// (spec §4.5 step 2).
	ComputeCurrents(st *State)
	// AdvanceState steps internal state using the new st.V and st.Dt
	// (spec §4.5 step 5).
	AdvanceState(st *State)
	// WriteIons accumulates contributions into ion current/concentration
	// accumulators (spec §4.5 step 6).
	WriteIons(st *State)
}

// Multiplicity is implemented by mechanism instances that coalesce multiple
// point-process placements onto the same CV (spec §4.4's "multiplicity for
// coalesced point processes"). Optional: most instances don't need it.
type Multiplicity interface {
	Multiplicities() []int
}

// DetectedSpike is one upward threshold crossing, as a local node index
// (into Nodes()) and the interpolated crossing time (spec §4.5 step 7).
type DetectedSpike struct {
	NodeIndex int
	Time      float64
}

// SpikeDetector is implemented by mechanisms that detect upward threshold
// crossings on their CVs (spec §4.5 step 7). Optional: most mechanisms
// don't implement it.
type SpikeDetector interface {
	// Detect compares vPrev (voltage at t-dt) against the mechanism's
	// current st.V and returns every upward crossing since the last call,
	// with time linearly interpolated between tPrev and st.T.
	Detect(st *State, vPrev []float64, tPrev float64) []DetectedSpike
}

// PostEventable is implemented by mechanisms that react to a spike detected
// on one of their own CVs (spec §6's post_event ABI entry point, e.g. for
// synaptic plasticity bookkeeping). Optional: no builtin mechanism needs
// it, matching original_source's default no-op for the same entry point.
type PostEventable interface {
	PostEvent(st *State, nodeIndex int, time float64)
}

func (k Kind) String() string {
	switch k {
	case KindDensity:
		return "density"
	case KindPoint:
		return "point"
	case KindReversalPotential:
		return "reversal_potential"
	case KindGapJunction:
		return "gap_junction"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}
