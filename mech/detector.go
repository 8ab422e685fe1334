// Threshold spike detector: a point-like mechanism bound to one or more
// CVs that, each step, reports upward crossings of a fixed threshold with
// time linearly interpolated between the previous and current step times
// (spec §4.5 step 7).

package mech

const fingerprintDetector = "threshold_detector/threshold=param/v1"

// ThresholdDetector implements SpikeDetector and the (trivial) Instance ABI.
type ThresholdDetector struct {
	nodes   []int
	weights []float64

	Threshold float64 // mV
}

func newDetector(nodes []int, weights []float64) Instance {
	return &ThresholdDetector{nodes: nodes, weights: weights, Threshold: -10.0}
}

func (m *ThresholdDetector) Name() string        { return "threshold_detector" }
func (m *ThresholdDetector) InstanceKind() Kind  { return KindPoint }
func (m *ThresholdDetector) Fingerprint() string { return fingerprintDetector }
func (m *ThresholdDetector) Nodes() []int        { return m.nodes }
func (m *ThresholdDetector) Weights() []float64  { return m.weights }

func (m *ThresholdDetector) Init(st *State)                       {}
func (m *ThresholdDetector) ApplyEvents(st *State, ev EventView)  {}
func (m *ThresholdDetector) ComputeCurrents(st *State)            {}
func (m *ThresholdDetector) AdvanceState(st *State)               {}
func (m *ThresholdDetector) WriteIons(st *State)                  {}

// Detect reports, for each node, an upward crossing of Threshold between
// vPrev and st.V, with crossing time linearly interpolated.
func (m *ThresholdDetector) Detect(st *State, vPrev []float64, tPrev float64) []DetectedSpike {
	var out []DetectedSpike
	for i, cv := range m.nodes {
		before := vPrev[cv]
		after := st.V[cv]
		if before < m.Threshold && after >= m.Threshold {
			frac := (m.Threshold - before) / (after - before)
			t := tPrev + frac*(st.T-tPrev)
			out = append(out, DetectedSpike{NodeIndex: i, Time: t})
		}
	}
	return out
}
