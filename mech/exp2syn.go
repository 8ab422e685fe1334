// Two-state synapse point mechanism ("exp2syn"): rise time constant Tau1,
// decay time constant Tau2, normalized so a unit-weight event peaks at
// conductance 1. Standard two-exponential synapse model (NEURON's Exp2Syn),
// included as the second built-in point mechanism alongside ExpSyn to
// exercise the catalogue's multi-mechanism dispatch.

package mech

import "math"

const fingerprintExp2Syn = "exp2syn/tau1=param/tau2=param/e=param/v1"

// Exp2Syn is the two-exponential point synapse: g = B - A, with
// A' = -A/Tau1, B' = -B/Tau2, each event adding weight*factor to both.
type Exp2Syn struct {
	nodes   []int
	weights []float64
	a, b    []float64

	Tau1, Tau2 float64 // ms, Tau1 < Tau2
	E          float64 // mV
	factor     float64
}

func newExp2Syn(nodes []int, weights []float64) Instance {
	m := &Exp2Syn{
		nodes: nodes, weights: weights,
		a: make([]float64, len(nodes)), b: make([]float64, len(nodes)),
		Tau1: 0.5, Tau2: 5.0, E: 0.0,
	}
	m.recomputeFactor()
	return m
}

func (m *Exp2Syn) recomputeFactor() {
	if m.Tau1 == m.Tau2 {
		m.Tau1 *= 0.999 // avoid the degenerate equal-time-constant singularity
	}
	tp := (m.Tau1 * m.Tau2) / (m.Tau2 - m.Tau1) * math.Log(m.Tau2/m.Tau1)
	peak := -math.Exp(-tp/m.Tau1) + math.Exp(-tp/m.Tau2)
	m.factor = 1.0 / peak
}

func (m *Exp2Syn) Name() string        { return "exp2syn" }
func (m *Exp2Syn) InstanceKind() Kind  { return KindPoint }
func (m *Exp2Syn) Fingerprint() string { return fingerprintExp2Syn }
func (m *Exp2Syn) Nodes() []int        { return m.nodes }
func (m *Exp2Syn) Weights() []float64  { return m.weights }

func (m *Exp2Syn) Init(st *State) {
	for i := range m.a {
		m.a[i] = 0
		m.b[i] = 0
	}
}

func (m *Exp2Syn) localIndex(cv int) int {
	for i, n := range m.nodes {
		if n == cv {
			return i
		}
	}
	return -1
}

func (m *Exp2Syn) ApplyEvents(st *State, ev EventView) {
	for i, cv := range ev.CV {
		li := m.localIndex(cv)
		if li < 0 {
			continue
		}
		delta := ev.Weight[i] * m.factor
		m.a[li] += delta
		m.b[li] += delta
	}
}

func (m *Exp2Syn) ComputeCurrents(st *State) {
	for i, cv := range m.nodes {
		g := m.b[i] - m.a[i]
		st.G[cv] += g
		st.I[cv] += g * (st.V[cv] - m.E)
	}
}

func (m *Exp2Syn) AdvanceState(st *State) {
	da := math.Exp(-st.Dt / m.Tau1)
	db := math.Exp(-st.Dt / m.Tau2)
	for i := range m.a {
		m.a[i] *= da
		m.b[i] *= db
	}
}

func (m *Exp2Syn) WriteIons(st *State) {}
