// Config: a YAML-loaded run configuration (ambient, not part of the
// Recipe contract itself): integration step, hardware/rank layout, and
// load-balance hints. Grounded on the teacher's
// sim/workload/spec.go LoadWorkloadSpec/Validate idiom (strict decoding,
// a separate Validate pass with per-field errors) rather than
// cmd/coefficients_config.go's plainer Unmarshal+panic, since this
// config gates a whole run and deserves the stricter treatment.
package recipe

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cortexsim/engine/engine"
)

// Config is the top-level run configuration file.
type Config struct {
	Version      string           `yaml:"version"`
	DT           float64          `yaml:"dt"`
	NumRanks     int              `yaml:"num_ranks"`
	Hardware     HardwareSpec     `yaml:"hardware"`
	LoadBalance  LoadBalanceSpec  `yaml:"load_balance"`
}

// HardwareSpec names the execution resources available to this run.
type HardwareSpec struct {
	Threads      int  `yaml:"threads"`
	GPUAvailable bool `yaml:"gpu_available"`
}

// LoadBalanceSpec configures engine.LoadBalanceHints from YAML, using
// string cell-kind names instead of the engine's numeric CellKind so the
// file format doesn't depend on enum ordering.
type LoadBalanceSpec struct {
	MaxGroupSize map[string]int  `yaml:"max_group_size"`
	GPUSupported map[string]bool `yaml:"gpu_supported"`
	PreferGPU    map[string]bool `yaml:"prefer_gpu"`
}

var cellKindByName = map[string]engine.CellKind{
	"cable":        engine.CellKindCable,
	"lif":          engine.CellKindLIF,
	"spike_source": engine.CellKindSpikeSource,
	"benchmark":    engine.CellKindBenchmark,
}

// Hints converts the YAML-friendly LoadBalanceSpec into the engine's
// LoadBalanceHints, keyed by CellKind and combined with the hardware
// spec's gpu_available flag.
func (c *Config) Hints() engine.LoadBalanceHints {
	h := engine.LoadBalanceHints{
		MaxGroupSize: make(map[engine.CellKind]int),
		GPUSupported: make(map[engine.CellKind]bool),
		PreferGPU:    make(map[engine.CellKind]bool),
		GPUAvailable: c.Hardware.GPUAvailable,
	}
	for name, n := range c.LoadBalance.MaxGroupSize {
		if k, ok := cellKindByName[name]; ok {
			h.MaxGroupSize[k] = n
		}
	}
	for name, v := range c.LoadBalance.GPUSupported {
		if k, ok := cellKindByName[name]; ok {
			h.GPUSupported[k] = v
		}
	}
	for name, v := range c.LoadBalance.PreferGPU {
		if k, ok := cellKindByName[name]; ok {
			h.PreferGPU[k] = v
		}
	}
	return h
}

// LoadConfig reads and strictly decodes a run configuration file; unknown
// keys are rejected so a typo'd field fails loudly rather than silently
// taking a default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields LoadConfig's caller needs to trust before
// building an Engine from this config.
func (c *Config) Validate() error {
	if c.DT <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.DT)
	}
	if c.NumRanks <= 0 {
		return fmt.Errorf("num_ranks must be positive, got %d", c.NumRanks)
	}
	if c.Hardware.Threads < 0 {
		return fmt.Errorf("hardware.threads must be >= 0, got %d", c.Hardware.Threads)
	}
	for name := range c.LoadBalance.MaxGroupSize {
		if _, ok := cellKindByName[name]; !ok {
			return fmt.Errorf("load_balance.max_group_size: unknown cell kind %q", name)
		}
	}
	return nil
}
