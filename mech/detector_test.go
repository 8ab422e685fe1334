package mech

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThresholdDetector_Detect_ReportsUpwardCrossingWithInterpolatedTime(t *testing.T) {
	m := newDetector([]int{2}, []float64{1}).(*ThresholdDetector)
	m.Threshold = -10

	vPrev := []float64{0, 0, -20}
	st := &State{V: []float64{0, 0, 0}, T: 1.0}

	spikes := m.Detect(st, vPrev, 0.0)
	require.Len(t, spikes, 1)
	require.Equal(t, 0, spikes[0].NodeIndex)
	require.InDelta(t, 0.5, spikes[0].Time, 1e-9)
}

func TestThresholdDetector_Detect_NoCrossing_ReturnsEmpty(t *testing.T) {
	m := newDetector([]int{0}, []float64{1}).(*ThresholdDetector)
	m.Threshold = -10

	vPrev := []float64{-20}
	st := &State{V: []float64{-15}, T: 1.0}
	require.Empty(t, m.Detect(st, vPrev, 0.0))
}

func TestThresholdDetector_Detect_AlreadyAboveThreshold_NoRepeatedCrossing(t *testing.T) {
	m := newDetector([]int{0}, []float64{1}).(*ThresholdDetector)
	m.Threshold = -10

	vPrev := []float64{0}
	st := &State{V: []float64{5}, T: 1.0}
	require.Empty(t, m.Detect(st, vPrev, 0.0), "both samples are above threshold, so there is no upward crossing")
}

func TestThresholdDetector_Detect_MultipleNodes_EachEvaluatedIndependently(t *testing.T) {
	m := newDetector([]int{0, 1}, []float64{1, 1}).(*ThresholdDetector)
	m.Threshold = 0

	vPrev := []float64{-5, -5}
	st := &State{V: []float64{5, -3}, T: 2.0}
	spikes := m.Detect(st, vPrev, 0.0)
	require.Len(t, spikes, 1)
	require.Equal(t, 0, spikes[0].NodeIndex)
}
