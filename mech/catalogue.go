// Catalogue: a mechanism factory registry keyed by name + backend tag
// (spec §6, §9). Grounded on the teacher's NewScheduler/NewLoadBalancer
// named-constructor idiom (sim/scheduler.go, sim/loadbalancer.go), plus
// original_source's mechanism_catalogue.hpp fingerprint-validation
// requirement: two backends registering the same mechanism name must agree
// on its fingerprint, or registration fails loudly rather than silently
// running mismatched dynamics.

package mech

import "fmt"

// Backend tags the execution backend a mechanism factory targets.
type Backend int

const (
	BackendCPU Backend = iota
	BackendGPU
)

func (b Backend) String() string {
	if b == BackendGPU {
		return "gpu"
	}
	return "cpu"
}

// Factory builds a fresh Instance bound to the given CVs/weights.
type Factory func(nodes []int, weights []float64) Instance

type catalogueKey struct {
	name    string
	backend Backend
}

// Catalogue is a registry of mechanism factories keyed by (name, backend).
type Catalogue struct {
	factories    map[catalogueKey]Factory
	fingerprints map[string]string // name -> fingerprint, checked across backends
}

// NewCatalogue returns an empty catalogue.
func NewCatalogue() *Catalogue {
	return &Catalogue{
		factories:    make(map[catalogueKey]Factory),
		fingerprints: make(map[string]string),
	}
}

// Register adds a factory for (name, backend). fingerprint must match any
// fingerprint already registered under the same name on a different
// backend; a mismatch means the two backends implement different dynamics
// under the same name, and Register returns a plain error for it.
func (c *Catalogue) Register(name string, backend Backend, fingerprint string, f Factory) error {
	if prev, ok := c.fingerprints[name]; ok && prev != fingerprint {
		return fmt.Errorf("mechanism %q: fingerprint mismatch across backends (%q vs %q)", name, prev, fingerprint)
	}
	c.fingerprints[name] = fingerprint
	c.factories[catalogueKey{name, backend}] = f
	return nil
}

// Instantiate builds an Instance for (name, backend) bound to nodes/weights.
func (c *Catalogue) Instantiate(name string, backend Backend, nodes []int, weights []float64) (Instance, error) {
	f, ok := c.factories[catalogueKey{name, backend}]
	if !ok {
		return nil, fmt.Errorf("no mechanism %q registered for backend %s", name, backend)
	}
	return f(nodes, weights), nil
}

// Names returns every registered mechanism name, regardless of backend.
func (c *Catalogue) Names() []string {
	out := make([]string, 0, len(c.fingerprints))
	for name := range c.fingerprints {
		out = append(out, name)
	}
	return out
}

// Builtins returns a catalogue pre-populated with the built-in mechanisms
// (pas, expsyn, exp2syn, threshold_detector) registered for BackendCPU.
func Builtins() *Catalogue {
	c := NewCatalogue()
	mustRegister(c, "pas", BackendCPU, fingerprintPas, newPassive)
	mustRegister(c, "expsyn", BackendCPU, fingerprintExpsyn, newExpSyn)
	mustRegister(c, "exp2syn", BackendCPU, fingerprintExp2Syn, newExp2Syn)
	mustRegister(c, "threshold_detector", BackendCPU, fingerprintDetector, newDetector)
	return c
}

func mustRegister(c *Catalogue, name string, backend Backend, fingerprint string, f Factory) {
	if err := c.Register(name, backend, fingerprint, f); err != nil {
		panic(err)
	}
}
