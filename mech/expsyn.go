// Exponential synapse point mechanism ("expsyn"): a single-exponential
// conductance that jumps by the event weight and decays with time constant
// Tau toward zero, evoking current g*(v-e). Grounds spec §8 scenario 3
// exactly: g(t) = w*exp(-(t-t0)/tau) for t >= t0.

package mech

import "math"

const fingerprintExpsyn = "expsyn/tau=param/e=param/v1"

// ExpSyn is the single-exponential point synapse.
type ExpSyn struct {
	nodes   []int
	weights []float64
	g       []float64

	Tau float64 // ms
	E   float64 // mV
}

func newExpSyn(nodes []int, weights []float64) Instance {
	return &ExpSyn{nodes: nodes, weights: weights, g: make([]float64, len(nodes)), Tau: 2.0, E: 0.0}
}

func (m *ExpSyn) Name() string        { return "expsyn" }
func (m *ExpSyn) InstanceKind() Kind  { return KindPoint }
func (m *ExpSyn) Fingerprint() string { return fingerprintExpsyn }
func (m *ExpSyn) Nodes() []int        { return m.nodes }
func (m *ExpSyn) Weights() []float64  { return m.weights }

func (m *ExpSyn) Init(st *State) {
	for i := range m.g {
		m.g[i] = 0
	}
}

// localIndex finds the instance-local slot for a global CV index.
func (m *ExpSyn) localIndex(cv int) int {
	for i, n := range m.nodes {
		if n == cv {
			return i
		}
	}
	return -1
}

func (m *ExpSyn) ApplyEvents(st *State, ev EventView) {
	for i, cv := range ev.CV {
		li := m.localIndex(cv)
		if li < 0 {
			continue
		}
		m.g[li] += ev.Weight[i]
	}
}

func (m *ExpSyn) ComputeCurrents(st *State) {
	for i, cv := range m.nodes {
		g := m.g[i]
		st.G[cv] += g
		st.I[cv] += g * (st.V[cv] - m.E)
	}
}

func (m *ExpSyn) AdvanceState(st *State) {
	decay := math.Exp(-st.Dt / m.Tau)
	for i := range m.g {
		m.g[i] *= decay
	}
}

func (m *ExpSyn) WriteIons(st *State) {}

// Conductance returns the current conductance for the mechanism's i-th node
// (used by tests to check g(t) directly against the closed form).
func (m *ExpSyn) Conductance(i int) float64 { return m.g[i] }
