package mech

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPassive_ComputeCurrents_LeaksTowardReversalPotential(t *testing.T) {
	m := newPassive([]int{0, 1}, []float64{1, 2}).(*Passive)
	m.G = 0.5
	m.E = -70

	st := &State{V: []float64{-60, -50}, I: make([]float64, 2), G: make([]float64, 2)}
	m.ComputeCurrents(st)

	require.Equal(t, 0.5, st.G[0])
	require.Equal(t, 1.0, st.G[1])
	require.InDelta(t, 0.5*(-60-(-70)), st.I[0], 1e-9)
	require.InDelta(t, 1.0*(-50-(-70)), st.I[1], 1e-9)
}

func TestPassive_AtRestingPotential_ZeroCurrent(t *testing.T) {
	m := newPassive([]int{0}, []float64{1}).(*Passive)
	m.E = -70

	st := &State{V: []float64{-70}, I: make([]float64, 1), G: make([]float64, 1)}
	m.ComputeCurrents(st)
	require.InDelta(t, 0, st.I[0], 1e-12)
}

func TestPassive_Identity(t *testing.T) {
	m := newPassive([]int{0}, []float64{1}).(*Passive)
	require.Equal(t, "pas", m.Name())
	require.Equal(t, KindDensity, m.InstanceKind())
	require.Equal(t, fingerprintPas, m.Fingerprint())
}
