package cellgroup

import "github.com/cortexsim/engine/engine"

// SpikeSourceGroup wraps one engine.Generator per gid, replaying its
// events as spikes of that cell (spec §4.6's non-cable cell kind; the
// generator's own output is treated as the cell's complete dynamics).
type SpikeSourceGroup struct {
	gids       []engine.GID
	generators map[engine.GID]engine.Generator
	spikes     []engine.Spike
	t          float64
	started    bool
}

// NewSpikeSourceGroup builds a group from a gid -> Generator map.
func NewSpikeSourceGroup(generators map[engine.GID]engine.Generator) *SpikeSourceGroup {
	g := &SpikeSourceGroup{generators: generators}
	for gid := range generators {
		g.gids = append(g.gids, gid)
	}
	return g
}

func (g *SpikeSourceGroup) Kind() engine.CellKind { return engine.CellKindSpikeSource }
func (g *SpikeSourceGroup) GIDs() []engine.GID    { return g.gids }
func (g *SpikeSourceGroup) Spikes() []engine.Spike { return g.spikes }
func (g *SpikeSourceGroup) ClearSpikes()          { g.spikes = g.spikes[:0] }

// Advance ignores the incoming lane (spike sources have no synaptic input)
// and emits every generator event inside [epoch.TBegin, epoch.TEnd) as a
// spike from that gid.
func (g *SpikeSourceGroup) Advance(epoch engine.Epoch, dt float64, lane *engine.Lane) {
	if !g.started {
		g.t = epoch.TBegin
		g.started = true
	}
	for _, gid := range g.gids {
		gen := g.generators[gid]
		for _, ev := range gen.Events(epoch.TBegin, epoch.TEnd) {
			g.spikes = append(g.spikes, engine.Spike{
				Source: engine.CellAddress{GID: gid, LID: 0},
				Time:   ev.Time,
			})
		}
	}
	g.t = epoch.TEnd
}
