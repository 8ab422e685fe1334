package cable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildCylinderChain(n int, segLen float64) *SegmentTree {
	tree := &SegmentTree{}
	parent := NoParent
	x := 0.0
	for i := 0; i < n; i++ {
		idx, _ := tree.AppendSegment(Point{X: x, R: 1}, Point{X: x + segLen, R: 1}, 1, parent)
		parent = idx
		x += segLen
	}
	return tree
}

func TestDiscretizeEverySegmentPreservesTopology(t *testing.T) {
	tree := buildCylinderChain(5, 10)
	d, err := Discretize(tree, EverySegmentPolicy{})
	assert.NoError(t, err)
	assert.Equal(t, 5, d.NumCV)
	assert.Equal(t, NoParent, d.ParentCV[0])
	for i := 1; i < d.NumCV; i++ {
		assert.Less(t, d.ParentCV[i], i)
	}
}

func TestDiscretizeFixedPerBranchProducesRequestedCVCount(t *testing.T) {
	tree := buildCylinderChain(9, 10) // single unbranched chain -> one branch
	d, err := Discretize(tree, FixedPerBranchPolicy{N: 3})
	assert.NoError(t, err)
	assert.Equal(t, 3, d.NumCV)
	for i := 1; i < d.NumCV; i++ {
		assert.Less(t, d.ParentCV[i], i)
	}
}

func TestDiscretizeRejectsNothingOnValidTree(t *testing.T) {
	tree := buildCylinderChain(3, 5)
	_, err := Discretize(tree, EverySegmentPolicy{})
	assert.NoError(t, err)
}

func TestCVCapacitanceAndFaceConductancePositive(t *testing.T) {
	tree := buildCylinderChain(4, 10)
	d, err := Discretize(tree, EverySegmentPolicy{})
	assert.NoError(t, err)
	for i := 0; i < d.NumCV; i++ {
		assert.Greater(t, d.CVCapacitance[i], 0.0)
		if d.ParentCV[i] != NoParent {
			assert.Greater(t, d.FaceConductance[i], 0.0)
		}
	}
}

func TestPlaceDensityMechanismsWeightsSumToOneUnderFullCoverage(t *testing.T) {
	// GIVEN a chain entirely tagged 1, fully covered by one region
	tree := buildCylinderChain(4, 10)
	d, err := Discretize(tree, EverySegmentPolicy{})
	assert.NoError(t, err)

	// WHEN placing a single mechanism over the whole tag
	placements := PlaceDensityMechanisms(tree, d, []RegionSpec{{Tag: 1, Mechanism: "pas"}})

	// THEN every CV gets weight 1 (the CV's whole area is tagged 1)
	assert.Len(t, placements, 1)
	for _, w := range placements[0].Weights {
		assert.InDelta(t, 1.0, w, 1e-9)
	}
	assert.Equal(t, d.NumCV, len(placements[0].Nodes))
}

func TestSegSIxClosedFormMatchesUniformCylinder(t *testing.T) {
	s := Segment{Prox: Point{R: 1}, Dist: Point{X: 10, R: 1}}
	// a uniform cylinder's S_ix reduces to L/(pi r^2)
	got := segSIx(s)
	assert.InDelta(t, 10.0/(3.14159265358979*1*1), got, 1e-6)
}
