// Passive leak density mechanism ("pas"): a simple Ohmic leak current
// toward a fixed reversal potential. The canonical density mechanism used
// to ground the passive-equilibrium convergence property (spec §8
// universal property 4).

package mech

const fingerprintPas = "pas/g=const/e=const/v1"

// Passive is the density leak mechanism: i = g*(v - e).
type Passive struct {
	nodes   []int
	weights []float64

	G float64 // uS/cm^2-equivalent conductance density, applied per weighted CV
	E float64 // mV, reversal potential
}

func newPassive(nodes []int, weights []float64) Instance {
	return &Passive{nodes: nodes, weights: weights, G: 0.001, E: -70.0}
}

func (m *Passive) Name() string        { return "pas" }
func (m *Passive) InstanceKind() Kind  { return KindDensity }
func (m *Passive) Fingerprint() string { return fingerprintPas }
func (m *Passive) Nodes() []int        { return m.nodes }
func (m *Passive) Weights() []float64  { return m.weights }

func (m *Passive) Init(st *State) {}

func (m *Passive) ApplyEvents(st *State, ev EventView) {
	// Density mechanisms receive no point events.
}

func (m *Passive) ComputeCurrents(st *State) {
	for i, cv := range m.nodes {
		w := m.weights[i]
		g := m.G * w
		st.G[cv] += g
		st.I[cv] += g * (st.V[cv] - m.E)
	}
}

func (m *Passive) AdvanceState(st *State) {}

func (m *Passive) WriteIons(st *State) {}
