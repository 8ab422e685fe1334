package mech

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKind_String_CoversEveryVariant(t *testing.T) {
	require.Equal(t, "density", KindDensity.String())
	require.Equal(t, "point", KindPoint.String())
	require.Equal(t, "reversal_potential", KindReversalPotential.String())
	require.Equal(t, "gap_junction", KindGapJunction.String())
	require.Equal(t, "kind(99)", Kind(99).String())
}

func TestInstance_BuiltinTypes_SatisfyInstanceInterface(t *testing.T) {
	var _ Instance = newPassive([]int{0}, []float64{1})
	var _ Instance = newExpSyn([]int{0}, []float64{1})
	var _ Instance = newExp2Syn([]int{0}, []float64{1})
	var _ Instance = newDetector([]int{0}, []float64{1})
	var _ SpikeDetector = newDetector([]int{0}, []float64{1}).(*ThresholdDetector)
}
