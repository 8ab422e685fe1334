package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cortexsim/engine/engine"
)

func TestBuildRingRecipe_DriverAndRingConnectionsWired(t *testing.T) {
	r := buildRingRecipe(4, 2.0, 1.5, 0.05, 7, -50, 10, 2)

	require.Equal(t, engine.CellKindSpikeSource, r.CellKind(engine.GID(0)))
	for g := 1; g < 4; g++ {
		require.Equal(t, engine.CellKindLIF, r.CellKind(engine.GID(g)))
	}

	require.Len(t, r.Generators[engine.GID(0)], 1)

	conns1 := r.ConnectionsOn(engine.GID(1))
	require.Len(t, conns1, 2, "gid 1 receives from the driver and from the ring's last cell")

	conns2 := r.ConnectionsOn(engine.GID(2))
	require.Len(t, conns2, 1)
	require.Equal(t, engine.GID(1), conns2[0].Source.GID)
	require.Equal(t, 2.0, conns2[0].Weight)
	require.Equal(t, 1.5, conns2[0].Delay)
}

func TestBuildRingRecipe_RejectsNothingForMinimalRing(t *testing.T) {
	r := buildRingRecipe(2, 1, 1, 0.01, 1, -50, 10, 2)
	require.Equal(t, 2, r.NumCells())
	require.Len(t, r.ConnectionsOn(engine.GID(1)), 2, "the single lif cell both drives and is driven by the ring wrap-around")
}
