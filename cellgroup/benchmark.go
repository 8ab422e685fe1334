package cellgroup

import "github.com/cortexsim/engine/engine"

// BenchmarkCell fires spikes on a fixed schedule and burns a configured
// amount of synthetic per-step work, used to measure engine scheduling
// overhead independent of real neuron dynamics (spec §6's "benchmark" cell
// kind; no original_source reference exists for it, so the synthetic-load
// shape here is this repo's own minimal rendition of the kind).
type BenchmarkCell struct {
	Schedule  engine.Generator
	WorkUnits int // synthetic iterations of busy work per Advance call
}

// BenchmarkGroup is the cellgroup.Group implementation for benchmark cells.
type BenchmarkGroup struct {
	gids   []engine.GID
	cells  map[engine.GID]*BenchmarkCell
	spikes []engine.Spike
	busy   uint64 // accumulates synthetic work so the compiler can't elide it
}

// NewBenchmarkGroup builds a group from a gid -> BenchmarkCell map.
func NewBenchmarkGroup(cells map[engine.GID]*BenchmarkCell) *BenchmarkGroup {
	g := &BenchmarkGroup{cells: cells}
	for gid := range cells {
		g.gids = append(g.gids, gid)
	}
	return g
}

func (g *BenchmarkGroup) Kind() engine.CellKind  { return engine.CellKindBenchmark }
func (g *BenchmarkGroup) GIDs() []engine.GID     { return g.gids }
func (g *BenchmarkGroup) Spikes() []engine.Spike { return g.spikes }
func (g *BenchmarkGroup) ClearSpikes()           { g.spikes = g.spikes[:0] }

// Advance ignores the lane (benchmark cells have no synaptic input),
// replays each cell's schedule as spikes, and performs WorkUnits of
// synthetic computation to give the group a configurable, predictable
// cost per epoch.
func (g *BenchmarkGroup) Advance(epoch engine.Epoch, dt float64, lane *engine.Lane) {
	for _, gid := range g.gids {
		cell := g.cells[gid]
		for _, ev := range cell.Schedule.Events(epoch.TBegin, epoch.TEnd) {
			g.spikes = append(g.spikes, engine.Spike{Source: engine.CellAddress{GID: gid, LID: 0}, Time: ev.Time})
		}
		for i := 0; i < cell.WorkUnits; i++ {
			g.busy += uint64(i)
		}
	}
}
