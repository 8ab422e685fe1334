package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cortexsim/engine/engine"
)

func TestLoadConfig_ValidYAML_LoadsCorrectly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	data := `
version: "1"
dt: 0.025
num_ranks: 4
hardware:
  threads: 8
  gpu_available: true
load_balance:
  max_group_size:
    cable: 128
    lif: 512
  gpu_supported:
    cable: true
  prefer_gpu:
    cable: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 0.025, cfg.DT)
	require.Equal(t, 4, cfg.NumRanks)
	require.True(t, cfg.Hardware.GPUAvailable)

	hints := cfg.Hints()
	require.Equal(t, 128, hints.MaxGroupSize[engine.CellKindCable])
	require.Equal(t, 512, hints.MaxGroupSize[engine.CellKindLIF])
	require.True(t, hints.GPUSupported[engine.CellKindCable])
	require.True(t, hints.PreferGPU[engine.CellKindCable])
	require.True(t, hints.GPUAvailable)
}

func TestLoadConfig_UnknownKey_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	data := `
dt: 0.025
num_ranks: 4
bogus_field: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfig_Validate_NonPositiveDT_ReturnsError(t *testing.T) {
	cfg := &Config{DT: 0, NumRanks: 1}
	require.Error(t, cfg.Validate())
}

func TestConfig_Validate_UnknownCellKind_ReturnsError(t *testing.T) {
	cfg := &Config{
		DT: 0.01, NumRanks: 1,
		LoadBalance: LoadBalanceSpec{MaxGroupSize: map[string]int{"quantum": 10}},
	}
	require.Error(t, cfg.Validate())
}
