// Package recipe implements the Recipe contract (spec §6) plus a YAML
// run-configuration loader (ambient configuration). Grounded on the
// teacher's coefficients_config.go/workload spec.go: a plain struct parsed
// from YAML feeding a runtime object built by explicit Go code, not a
// generic reflection-based builder.
package recipe

import (
	"github.com/cortexsim/engine/engine"
	"github.com/cortexsim/engine/cable"
)

// CableCellDescription is the opaque per-kind description a cable cell
// returns from CellDescription (spec §6): a morphology, its tagged
// regions, the CV policy to discretize with, the point-mechanism
// placements addressed by LID, and resting potential.
type CableCellDescription struct {
	Morphology *cable.SegmentTree
	Policy     cable.CVPolicy
	VRest      float64
	Regions    []RegionPlacement
	PointSyns  []PointSynapsePlacement
	DetectCV   int
}

// RegionPlacement names a density mechanism over a tagged region.
type RegionPlacement struct {
	Tag       int
	Mechanism string
}

// PointSynapsePlacement places one point mechanism at a specific CV,
// addressed by the LID incoming connections target.
type PointSynapsePlacement struct {
	LID       engine.LID
	Mechanism string
	CV        int
}

// LIFCellDescription is the opaque description for an "lif" cell-kind gid.
type LIFCellDescription struct {
	Vrest, Vreset, Threshold, Tau, Tref float64
}

// StaticRecipe is an in-memory engine.Recipe built by populating its
// fields directly; the simplest Recipe implementation, useful for tests
// and for small hand-authored simulations.
type StaticRecipe struct {
	N           int
	Kinds       map[engine.GID]engine.CellKind
	Descs       map[engine.GID]interface{}
	Conns       map[engine.GID][]engine.Connection
	GapJuncs    map[engine.GID][]engine.GapJunction
	Probes      map[engine.CellAddress]engine.Probe
	ProbeCounts map[engine.GID]int
	Generators  map[engine.GID][]engine.Generator
}

// NewStaticRecipe returns an empty StaticRecipe sized for n cells.
func NewStaticRecipe(n int) *StaticRecipe {
	return &StaticRecipe{
		N:           n,
		Kinds:       make(map[engine.GID]engine.CellKind),
		Descs:       make(map[engine.GID]interface{}),
		Conns:       make(map[engine.GID][]engine.Connection),
		GapJuncs:    make(map[engine.GID][]engine.GapJunction),
		Probes:      make(map[engine.CellAddress]engine.Probe),
		ProbeCounts: make(map[engine.GID]int),
		Generators:  make(map[engine.GID][]engine.Generator),
	}
}

func (r *StaticRecipe) NumCells() int { return r.N }

func (r *StaticRecipe) CellKind(gid engine.GID) engine.CellKind { return r.Kinds[gid] }

func (r *StaticRecipe) CellDescription(gid engine.GID) interface{} { return r.Descs[gid] }

func (r *StaticRecipe) ConnectionsOn(gid engine.GID) []engine.Connection { return r.Conns[gid] }

func (r *StaticRecipe) GapJunctionsOn(gid engine.GID) []engine.GapJunction { return r.GapJuncs[gid] }

func (r *StaticRecipe) NumProbes(gid engine.GID) int { return r.ProbeCounts[gid] }

func (r *StaticRecipe) Probe(addr engine.CellAddress) engine.Probe { return r.Probes[addr] }

func (r *StaticRecipe) EventGenerators(gid engine.GID) []engine.Generator { return r.Generators[gid] }
