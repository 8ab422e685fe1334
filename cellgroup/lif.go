package cellgroup

import (
	"math"

	"github.com/cortexsim/engine/engine"
)

// LIFCell is one leaky integrate-and-fire cell's exact-exponential state
// (spec §6's "lif" cell kind): V decays toward Vrest with time constant
// Tau between events, and events add Weight directly to V (no synaptic
// kinetics). A CPU-only kind per the spec's own open question on GPU
// support for structurally irregular cell kinds.
type LIFCell struct {
	V, Vrest, Vreset, Threshold, Tau, RefractoryUntil, Tref float64
}

func (c *LIFCell) decayTo(t float64, last float64) {
	// V is held at Vreset until the refractory window ends.
	if last < c.RefractoryUntil {
		last = c.RefractoryUntil
	}
	dt := t - last
	if dt <= 0 {
		return
	}
	c.V = c.Vrest + (c.V-c.Vrest)*math.Exp(-dt/c.Tau)
}

// LIFGroup is the cellgroup.Group implementation for LIF cells.
type LIFGroup struct {
	gids   []engine.GID
	cells  map[engine.GID]*LIFCell
	last   map[engine.GID]float64
	spikes []engine.Spike
}

// NewLIFGroup builds a group from a gid -> LIFCell map.
func NewLIFGroup(cells map[engine.GID]*LIFCell) *LIFGroup {
	g := &LIFGroup{cells: cells, last: make(map[engine.GID]float64)}
	for gid := range cells {
		g.gids = append(g.gids, gid)
	}
	return g
}

func (g *LIFGroup) Kind() engine.CellKind  { return engine.CellKindLIF }
func (g *LIFGroup) GIDs() []engine.GID     { return g.gids }
func (g *LIFGroup) Spikes() []engine.Spike { return g.spikes }
func (g *LIFGroup) ClearSpikes()           { g.spikes = g.spikes[:0] }

// Advance delivers every lane event to its target cell at the event's own
// time, decaying V exponentially between events and emitting a spike (with
// reset and a refractory hold) on every threshold crossing.
func (g *LIFGroup) Advance(epoch engine.Epoch, dt float64, lane *engine.Lane) {
	events := lane.PopBefore(epoch.TEnd)
	for _, gid := range g.gids {
		if _, ok := g.last[gid]; !ok {
			g.last[gid] = epoch.TBegin
		}
	}
	for _, ev := range events {
		cell, ok := g.cells[ev.Target.GID]
		if !ok {
			continue
		}
		cell.decayTo(ev.Time, g.last[ev.Target.GID])
		g.last[ev.Target.GID] = ev.Time
		if ev.Time < cell.RefractoryUntil {
			continue
		}
		cell.V += ev.Weight
		if cell.V >= cell.Threshold {
			g.spikes = append(g.spikes, engine.Spike{Source: ev.Target, Time: ev.Time})
			cell.V = cell.Vreset
			cell.RefractoryUntil = ev.Time + cell.Tref
		}
	}
	for _, gid := range g.gids {
		g.cells[gid].decayTo(epoch.TEnd, g.last[gid])
		g.last[gid] = epoch.TEnd
	}
}
