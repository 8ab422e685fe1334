package mech

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func dummyFactory(nodes []int, weights []float64) Instance {
	return &Passive{nodes: nodes, weights: weights, G: 1, E: 0}
}

func TestCatalogue_Register_SameNameSameFingerprintAcrossBackends_Succeeds(t *testing.T) {
	c := NewCatalogue()
	require.NoError(t, c.Register("pas", BackendCPU, "fp-v1", dummyFactory))
	require.NoError(t, c.Register("pas", BackendGPU, "fp-v1", dummyFactory))
}

func TestCatalogue_Register_FingerprintMismatchAcrossBackends_Fails(t *testing.T) {
	c := NewCatalogue()
	require.NoError(t, c.Register("pas", BackendCPU, "fp-v1", dummyFactory))
	err := c.Register("pas", BackendGPU, "fp-v2", dummyFactory)
	require.Error(t, err)
	require.Contains(t, err.Error(), "fingerprint mismatch")
}

func TestCatalogue_Instantiate_UnknownNameOrBackend_ReturnsError(t *testing.T) {
	c := NewCatalogue()
	_, err := c.Instantiate("nope", BackendCPU, []int{0}, []float64{1})
	require.Error(t, err)
}

func TestCatalogue_Instantiate_BuildsBoundInstance(t *testing.T) {
	c := NewCatalogue()
	require.NoError(t, c.Register("pas", BackendCPU, "fp-v1", dummyFactory))

	inst, err := c.Instantiate("pas", BackendCPU, []int{3, 4}, []float64{1, 0.5})
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, inst.Nodes())
	require.Equal(t, []float64{1, 0.5}, inst.Weights())
}

func TestCatalogue_Names_ListsEveryRegisteredMechanismOnce(t *testing.T) {
	c := NewCatalogue()
	require.NoError(t, c.Register("pas", BackendCPU, "fp-v1", dummyFactory))
	require.NoError(t, c.Register("pas", BackendGPU, "fp-v1", dummyFactory))
	require.NoError(t, c.Register("expsyn", BackendCPU, "fp-expsyn", dummyFactory))

	require.ElementsMatch(t, []string{"pas", "expsyn"}, c.Names())
}

func TestBuiltins_RegistersAllFourMechanismsForCPU(t *testing.T) {
	c := Builtins()
	require.ElementsMatch(t, []string{"pas", "expsyn", "exp2syn", "threshold_detector"}, c.Names())

	for _, name := range []string{"pas", "expsyn", "exp2syn", "threshold_detector"} {
		inst, err := c.Instantiate(name, BackendCPU, []int{0}, []float64{1})
		require.NoError(t, err)
		require.Equal(t, name, inst.Name())
	}
}

func TestBackend_String(t *testing.T) {
	require.Equal(t, "cpu", BackendCPU.String())
	require.Equal(t, "gpu", BackendGPU.String())
}
