package cellgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cortexsim/engine/engine"
	"github.com/cortexsim/engine/cable"
	"github.com/cortexsim/engine/mech"
)

func buildSingleCompartmentCell(t *testing.T) *cable.CableCell {
	tree := &cable.SegmentTree{}
	_, err := tree.AppendSegment(cable.Point{R: 5}, cable.Point{X: 20, R: 5}, 1, cable.NoParent)
	assert.NoError(t, err)
	d, err := cable.Discretize(tree, cable.EverySegmentPolicy{})
	assert.NoError(t, err)
	cat := mech.Builtins()
	syn, err := cat.Instantiate("expsyn", mech.BackendCPU, []int{0}, []float64{1})
	assert.NoError(t, err)
	return cable.NewCableCell(d, []mech.Instance{syn}, -65.0)
}

func TestCableCellGroupDeliversEventFromLane(t *testing.T) {
	// GIVEN a one-cell group with a synapse bound to LID 0
	cell := buildSingleCompartmentCell(t)
	targets := map[engine.LID]MechTarget{0: {Mechanism: "expsyn", CV: 0}}
	g := NewCableCellGroup([]CableCellConfig{{GID: 1, Cell: cell, Targets: targets, DetectCV: 0}}, BinningNone, 0)

	lane := engine.NewLane()
	fresh := []engine.Event{{Target: engine.CellAddress{GID: 1, LID: 0}, Time: 0.5, Weight: 1.0}}
	lane.MergeInto(fresh, nil, 1.0)

	epoch := engine.Epoch{ID: 0, TBegin: 0, TEnd: 1.0}

	// WHEN the group advances across the epoch containing the event
	g.Advance(epoch, 0.025, lane)

	// THEN the synapse's conductance is nonzero afterward (the event was
	// delivered, not dropped).
	syn := cell.Mechanisms[0].(*mech.ExpSyn)
	assert.Greater(t, syn.Conductance(0), 0.0)
}

func TestCableCellGroupSamplesFireAfterEventsAtEqualTime(t *testing.T) {
	cell := buildSingleCompartmentCell(t)
	targets := map[engine.LID]MechTarget{0: {Mechanism: "expsyn", CV: 0}}
	g := NewCableCellGroup([]CableCellConfig{{GID: 1, Cell: cell, Targets: targets, DetectCV: 0}}, BinningNone, 0)
	g.AddSampler(Sampler{Target: engine.CellAddress{GID: 1, LID: 0}, Kind: "v", Interval: 0.5})

	lane := engine.NewLane()
	fresh := []engine.Event{{Target: engine.CellAddress{GID: 1, LID: 0}, Time: 0.5, Weight: 1.0}}
	lane.MergeInto(fresh, nil, 1.0)
	epoch := engine.Epoch{ID: 0, TBegin: 0, TEnd: 1.0}

	g.Advance(epoch, 0.025, lane)

	samples := g.Samples()
	assert.NotEmpty(t, samples)

	// Samples land at 0, 0.5 and 1.0. The one at 0.5 shares its time with
	// the event and is taken after the event is delivered, so it reads a
	// voltage already pulled up from rest by the synapse.
	if assert.Len(t, samples, 3) {
		assert.Equal(t, -65.0, samples[0].Value)
		assert.Equal(t, 0.5, samples[1].Time)
		assert.Greater(t, samples[1].Value, -65.0)
	}
}

func TestCableCellGroupKindAndGIDs(t *testing.T) {
	cell := buildSingleCompartmentCell(t)
	g := NewCableCellGroup([]CableCellConfig{{GID: 7, Cell: cell, Targets: map[engine.LID]MechTarget{}, DetectCV: 0}}, BinningNone, 0)
	assert.Equal(t, engine.CellKindCable, g.Kind())
	assert.Equal(t, []engine.GID{7}, g.GIDs())
}
