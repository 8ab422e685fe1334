package cellgroup

import (
	"sort"

	"github.com/cortexsim/engine/engine"
	"github.com/cortexsim/engine/cable"
)

// MechTarget resolves one LID to the mechanism name and CV index an
// incoming event at that LID should be delivered to.
type MechTarget struct {
	Mechanism string
	CV        int
}

// CableCellConfig describes one cell to add to a CableCellGroup.
type CableCellConfig struct {
	GID       engine.GID
	Disc      *cable.Discretization
	Cell      *cable.CableCell
	Targets   map[engine.LID]MechTarget
	DetectCV  int // CV whose detected spikes are reported as this cell's output
}

type cableEntry struct {
	gid      engine.GID
	cell     *cable.CableCell
	targets  map[engine.LID]MechTarget
	detectCV int
}

// CableCellGroup is the cellgroup.Group implementation for cable cells
// (spec §4.6). It owns one *cable.CableCell per gid, a per-group sampler
// list, and a thread-local spike store drained by the engine each epoch.
type CableCellGroup struct {
	entries  []*cableEntry
	samplers []Sampler
	samples  []Sample
	spikes   []engine.Spike
	binning  BinningMode
	binDt    float64
	t        float64
	started  bool
}

// NewCableCellGroup builds a group from its cell configs.
func NewCableCellGroup(cells []CableCellConfig, binning BinningMode, binDt float64) *CableCellGroup {
	g := &CableCellGroup{binning: binning, binDt: binDt}
	for _, c := range cells {
		g.entries = append(g.entries, &cableEntry{gid: c.GID, cell: c.Cell, targets: c.Targets, detectCV: c.DetectCV})
	}
	return g
}

// AddSampler registers a new probe sampler.
func (g *CableCellGroup) AddSampler(s Sampler) { g.samplers = append(g.samplers, s) }

// Samples returns every sample recorded since the last clear.
func (g *CableCellGroup) Samples() []Sample { return g.samples }

// ClearSamples empties the sample buffer.
func (g *CableCellGroup) ClearSamples() { g.samples = g.samples[:0] }

func (g *CableCellGroup) Kind() engine.CellKind { return engine.CellKindCable }

func (g *CableCellGroup) GIDs() []engine.GID {
	out := make([]engine.GID, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.gid
	}
	return out
}

func (g *CableCellGroup) Spikes() []engine.Spike { return g.spikes }

func (g *CableCellGroup) ClearSpikes() { g.spikes = g.spikes[:0] }

func (g *CableCellGroup) entryByGID(gid engine.GID) *cableEntry {
	for _, e := range g.entries {
		if e.gid == gid {
			return e
		}
	}
	return nil
}

// Advance implements the algorithm spec §4.6 describes: schedule sampler
// times, then repeatedly step to the next internal deadline (next sample,
// next event, or the epoch end), firing due samplers after the step.
func (g *CableCellGroup) Advance(epoch engine.Epoch, dt float64, lane *engine.Lane) {
	if !g.started {
		g.t = epoch.TBegin
		g.started = true
	}

	pending := append([]engine.Event(nil), lane.PopBefore(epoch.TEnd)...)
	for i := range pending {
		pending[i].Time = binTime(g.binning, pending[i].Time, g.binDt, dt)
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].Time < pending[j].Time })

	for i := range g.samplers {
		if !g.samplers[i].started {
			g.samplers[i].next = epoch.TBegin
			g.samplers[i].started = true
		}
	}

	t := g.t
	evIdx := 0
	for t < epoch.TEnd {
		deadline := epoch.TEnd
		if evIdx < len(pending) && pending[evIdx].Time < deadline {
			deadline = pending[evIdx].Time
		}
		for i := range g.samplers {
			s := &g.samplers[i]
			if s.next >= t && s.next < deadline {
				deadline = s.next
			}
		}

		var dueNow []engine.Event
		for evIdx < len(pending) && pending[evIdx].Time <= deadline {
			dueNow = append(dueNow, pending[evIdx])
			evIdx++
		}

		step := deadline - t
		if step <= 0 {
			g.deliverOnly(dueNow)
		} else {
			g.stepAll(step, dueNow)
			t = deadline
		}

		for i := range g.samplers {
			s := &g.samplers[i]
			if s.next <= t {
				g.fireSampler(s, t)
				s.next += s.Interval
			}
		}
	}
	g.t = epoch.TEnd
}

func (g *CableCellGroup) bindEvents(e *cableEntry, evs []engine.Event) []cable.PendingEvent {
	var out []cable.PendingEvent
	for _, ev := range evs {
		if ev.Target.GID != e.gid {
			continue
		}
		bind, ok := e.targets[ev.Target.LID]
		if !ok {
			continue
		}
		out = append(out, cable.PendingEvent{Mechanism: bind.Mechanism, CV: bind.CV, Weight: ev.Weight})
	}
	return out
}

func (g *CableCellGroup) deliverOnly(due []engine.Event) {
	for _, e := range g.entries {
		e.cell.ApplyOnly(g.bindEvents(e, due))
	}
}

func (g *CableCellGroup) stepAll(dt float64, due []engine.Event) {
	for _, e := range g.entries {
		spikes := e.cell.Step(dt, g.bindEvents(e, due))
		for _, sp := range spikes {
			if sp.CV != e.detectCV {
				continue
			}
			g.spikes = append(g.spikes, engine.Spike{
				Source: engine.CellAddress{GID: e.gid, LID: 0},
				Time:   sp.Time,
			})
		}
	}
}

func (g *CableCellGroup) fireSampler(s *Sampler, t float64) {
	e := g.entryByGID(s.Target.GID)
	if e == nil {
		return
	}
	cv, ok := e.targets[s.Target.LID]
	v := 0.0
	if ok {
		v = e.cell.State.V[cv.CV]
	} else {
		v = e.cell.State.V[e.detectCV]
	}
	g.samples = append(g.samples, Sample{Target: s.Target, Kind: s.Kind, Time: t, Value: v})
}
