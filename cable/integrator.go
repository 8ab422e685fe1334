// Package cable's CableCell ties a Discretization to a set of mechanism
// instances and runs the seven-step per-step kernel sequence spec §4.5
// describes: deliver events, compute currents, assemble, solve, advance
// state, write ions, detect spikes.
package cable

import "github.com/cortexsim/engine/mech"

// CableCell is one discretized, mechanism-populated cell ready to integrate.
type CableCell struct {
	Disc         *Discretization
	Mechanisms   []mech.Instance
	Detectors    []mech.SpikeDetector
	State        *mech.State
	vPrev        []float64
}

// NewCableCell builds a CableCell at resting state (V=Vrest everywhere) and
// calls every mechanism's Init.
func NewCableCell(d *Discretization, instances []mech.Instance, vRest float64) *CableCell {
	n := d.NumCV
	st := &mech.State{
		V:                make([]float64, n),
		I:                make([]float64, n),
		G:                make([]float64, n),
		IonCurrent:       make(map[string][]float64),
		IonConcentration: make(map[string][]float64),
		IonReversal:      make(map[string][]float64),
	}
	for i := range st.V {
		st.V[i] = vRest
	}
	cell := &CableCell{Disc: d, Mechanisms: instances, State: st, vPrev: append([]float64(nil), st.V...)}
	for _, inst := range instances {
		inst.Init(st)
		if det, ok := inst.(mech.SpikeDetector); ok {
			cell.Detectors = append(cell.Detectors, det)
		}
	}
	return cell
}

// PendingEvent is one delivered event, addressed by the target mechanism's
// catalogue name (spec §4.5 step 1 delivers by instance, not globally).
type PendingEvent struct {
	Mechanism string
	CV        int
	Weight    float64
}

// Spike is one detected threshold crossing, translated from a local
// detector node index back into a CV index and absolute time.
type Spike struct {
	CV   int
	Time float64
}

// ApplyOnly delivers events without advancing the matrix (used when two
// events land at exactly the same time the group's clock is already at,
// so there is no positive step to take before them).
func (c *CableCell) ApplyOnly(events []PendingEvent) {
	st := c.State
	byMech := make(map[string]*mech.EventView)
	for _, ev := range events {
		v := byMech[ev.Mechanism]
		if v == nil {
			v = &mech.EventView{}
			byMech[ev.Mechanism] = v
		}
		v.CV = append(v.CV, ev.CV)
		v.Weight = append(v.Weight, ev.Weight)
	}
	for _, inst := range c.Mechanisms {
		if v, ok := byMech[inst.Name()]; ok {
			inst.ApplyEvents(st, *v)
		}
	}
}

// Step advances the cell by dt, delivering events queued for this step,
// and returns every spike detected during the step (spec §4.5's seven-step
// sequence, steps 1-7).
func (c *CableCell) Step(dt float64, events []PendingEvent) []Spike {
	st := c.State
	st.Dt = dt

	// Step 1: deliver events, grouped per mechanism by catalogue name.
	byMech := make(map[string]*mech.EventView)
	for _, ev := range events {
		v := byMech[ev.Mechanism]
		if v == nil {
			v = &mech.EventView{}
			byMech[ev.Mechanism] = v
		}
		v.CV = append(v.CV, ev.CV)
		v.Weight = append(v.Weight, ev.Weight)
	}
	for _, inst := range c.Mechanisms {
		if v, ok := byMech[inst.Name()]; ok {
			inst.ApplyEvents(st, *v)
		}
	}

	// Step 2: compute currents into freshly zeroed accumulators.
	for i := range st.I {
		st.I[i] = 0
		st.G[i] = 0
	}
	for _, inst := range c.Mechanisms {
		inst.ComputeCurrents(st)
	}

	// Step 3-4: assemble and solve the implicit system for the new voltage.
	m := Assemble(c.Disc, st.V, st.G, st.I, dt)
	vNew := m.Solve()

	copy(c.vPrev, st.V)
	tPrev := st.T
	st.V = vNew
	st.T += dt

	// Step 5: advance internal mechanism state at the new voltage.
	for _, inst := range c.Mechanisms {
		inst.AdvanceState(st)
	}

	// Step 6: write ion accumulators.
	for _, inst := range c.Mechanisms {
		inst.WriteIons(st)
	}

	// Step 7: detect spikes by comparing against the pre-step voltage.
	var spikes []Spike
	for _, det := range c.Detectors {
		inst := det.(mech.Instance)
		for _, ds := range det.Detect(st, c.vPrev, tPrev) {
			spikes = append(spikes, Spike{CV: inst.Nodes()[ds.NodeIndex], Time: ds.Time})
		}
	}
	return spikes
}
