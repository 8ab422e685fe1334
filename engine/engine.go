// Engine: the epoch loop spec §4.9 specifies, overlapping each epoch's
// lane-driven cell-group advance (task B) with the exchange of the previous
// epoch's spikes (task A) via a threadpool.TaskGroup. Grounded on the teacher's
// ClusterSimulator.Run (sim/cluster/simulator.go): a top-level driving
// loop over a fixed tick, dispatching to per-instance advance calls and
// collecting their output before moving the clock forward. Here the tick
// is the epoch, sized dynamically from the communicator's min delay rather
// than fixed, and the "instances" are cell-groups.
package engine

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cortexsim/engine/dist"
	"github.com/cortexsim/engine/threadpool"
)

// Engine owns the double-buffered lane sets, the spike stores, and the
// cell-groups/communicator/distributed-context triple spec §4.9 describes.
type Engine struct {
	groups []Group
	comm   *Communicator
	ctx    dist.Context
	pool   *threadpool.Pool
	dt     float64

	laneSets       [2]*LaneSet
	currentSpikes  []Spike
	previousSpikes []Spike
}

// New constructs an Engine. groups[i]'s index must match the LocalGroup
// field every Connection targeting it carries (spec §4.7); validation of
// that correspondence is the caller's responsibility (recipe/balancer
// wiring), since the engine has no independent way to check it.
func New(groups []Group, comm *Communicator, ctx dist.Context, pool *threadpool.Pool, dt float64) (*Engine, error) {
	if len(groups) == 0 {
		return nil, Errorf(ErrInternalInvariant, "engine.New", "Engine requires at least one cell-group")
	}
	if dt <= 0 {
		return nil, Errorf(ErrBadDiscretization, "engine.New", "non-positive integration step dt=%v", dt)
	}
	return &Engine{groups: groups, comm: comm, ctx: ctx, pool: pool, dt: dt}, nil
}

// Run drives the epoch loop from t=0 to t_final, following spec §4.9's
// pseudocode exactly: t_interval = min_delay/2, overlapped exchange and
// advance tasks per epoch, and a final drain exchange after the last
// epoch's advance.
func (e *Engine) Run(tFinal float64) error {
	n := len(e.groups)
	e.laneSets[0] = NewLaneSet(n)
	e.laneSets[1] = NewLaneSet(n)

	tInterval := e.comm.MinDelay() / 2
	if tInterval <= 0 {
		Internal("Engine.Run: non-positive t_interval (min_delay=%v)", tInterval*2)
	}

	t := 0.0
	epoch := Epoch{ID: 0, TBegin: 0, TEnd: math.Min(tInterval, tFinal)}

	for t < tFinal {
		e.previousSpikes, e.currentSpikes = e.currentSpikes, e.previousSpikes
		e.currentSpikes = e.currentSpikes[:0]

		cur := int(epoch.ID % 2)
		next := int((epoch.ID + 1) % 2)

		// Snapshot each lane's current contents before task B is allowed to
		// start popping from it: task A only ever needs the tail (time >=
		// epoch.TEnd) of the current buffer, and reading a live Lane while
		// task B concurrently calls PopBefore on it would be a data race on
		// the Lane's internal slice field even though the two tasks touch
		// logically disjoint time ranges.
		snapshot := make([]*Lane, n)
		for g := 0; g < n; g++ {
			snapshot[g] = &Lane{events: append([]Event(nil), e.laneSets[cur].Lane(g).events...)}
		}

		tg := &threadpool.TaskGroup{}
		tg.Run(func() { e.exchange(epoch, next, snapshot) })
		tg.Run(func() { e.advance(epoch, cur) })
		tg.Wait()

		for g := 0; g < n; g++ {
			e.currentSpikes = append(e.currentSpikes, e.groups[g].Spikes()...)
			e.groups[g].ClearSpikes()
			e.laneSets[cur].Lane(g).Clear()
		}

		logrus.Infof("engine: epoch %d [%.6f,%.6f) done, %d spikes", epoch.ID, epoch.TBegin, epoch.TEnd, len(e.currentSpikes))

		t = epoch.TEnd
		epoch = Epoch{ID: epoch.ID + 1, TBegin: t, TEnd: math.Min(t+tInterval, tFinal)}
	}

	e.finalDrain()
	return nil
}

// exchange is task A: gather the previous epoch's spikes across the distributed
// context, route them into per-group event queues, and merge those into
// the next epoch's lane buffer, preserving each lane's tail beyond
// epoch.TEnd (spec §4.9 task A, §4.1 MergeInto contract).
func (e *Engine) exchange(epoch Epoch, next int, prevSnapshot []*Lane) {
	global, partition := e.comm.Exchange(e.previousSpikes)
	byGroup := e.comm.MakeEventQueues(global, partition)
	for g := range e.groups {
		e.laneSets[next].Lane(g).MergeInto(byGroup[g], prevSnapshot[g], epoch.TEnd)
	}
}

// advance is task B: every local group integrates across the epoch using
// the current lane buffer (spec §4.9 task B).
func (e *Engine) advance(epoch Epoch, cur int) {
	e.pool.ParallelFor(len(e.groups), func(g int) {
		e.groups[g].Advance(epoch, e.dt, e.laneSets[cur].Lane(g))
	})
}

// finalDrain performs the run's terminal exchange: spikes generated during
// the last epoch still need to be gathered and accounted for even though
// no further advance will consume them (spec §4.9's trailing comment).
func (e *Engine) finalDrain() {
	e.ctx.Barrier()
	e.comm.Exchange(e.currentSpikes)
}

// CurrentSpikes returns the most recently completed epoch's spike batch.
func (e *Engine) CurrentSpikes() []Spike { return e.currentSpikes }
