// Communicator: the connection table and the exchange/routing algorithm
// spec §4.7 describes. Grounded on the teacher's ClusterSimulator routing
// of inter-replica messages (sim/cluster/simulator.go's dispatch loop),
// generalized from "route one message to one replica" to "route a batch
// of spikes to every connection whose source matches, across domains".
package engine

import (
	"math"
	"sort"

	"github.com/cortexsim/engine/dist"
)

// Communicator owns the local connection table and the min-delay
// computation used to size the epoch interval (spec §4.7, §4.9).
type Communicator struct {
	conns      []Connection
	partition  []int // prefix sum by source domain, length numDomains+1
	domainOf   func(GID) int
	numDomains int
	localMin   float64
	ctx        dist.Context
}

// NewCommunicator builds the connection table for a set of locally owned
// gids: it gathers every incoming connection (recipe.ConnectionsOn(gid)
// for gid in localGIDs), partitions the result by source domain, and
// sorts each partition by (source gid, source local index).
func NewCommunicator(localGIDs []GID, recipe Recipe, domainOf func(GID) int, numDomains int, ctx dist.Context) (*Communicator, error) {
	var all []Connection
	localMin := math.Inf(1)
	for _, gid := range localGIDs {
		for _, c := range recipe.ConnectionsOn(gid) {
			if c.Delay < 0 {
				return nil, Errorf(ErrConnectionDelayViolation, "NewCommunicator", "negative delay on connection to %s", c.Dest)
			}
			if c.Delay < localMin {
				localMin = c.Delay
			}
			all = append(all, c)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		di, dj := domainOf(all[i].Source.GID), domainOf(all[j].Source.GID)
		if di != dj {
			return di < dj
		}
		return all[i].Source.Less(all[j].Source)
	})

	partition := make([]int, numDomains+1)
	for _, c := range all {
		partition[domainOf(c.Source.GID)+1]++
	}
	for d := 1; d <= numDomains; d++ {
		partition[d] += partition[d-1]
	}

	return &Communicator{
		conns: all, partition: partition, domainOf: domainOf,
		numDomains: numDomains, localMin: localMin, ctx: ctx,
	}, nil
}

// MinDelay is the global reduction of every rank's local minimum
// connection delay.
func (c *Communicator) MinDelay() float64 {
	return c.ctx.Min(c.localMin)
}

// Exchange sorts localSpikes by source and gathers them across the
// distributed context, returning the concatenated wire-format spike array
// and its per-domain partition.
func (c *Communicator) Exchange(localSpikes []Spike) ([]dist.SpikeWire, []int) {
	sorted := append([]Spike(nil), localSpikes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Source.Less(sorted[j].Source) })

	wire := make([]dist.SpikeWire, len(sorted))
	for i, s := range sorted {
		wire[i] = dist.SpikeWire{GID: uint32(s.Source.GID), Index: uint32(s.Source.LID), Time: s.Time}
	}
	gathered := c.ctx.GatherSpikesF64(wire)
	return gathered.Values, gathered.Partition
}

// MakeEventQueues walks each domain's connection partition against the
// matching spike partition, producing events binned by the connection's
// LocalGroup (spec §4.7's equal_range merge).
func (c *Communicator) MakeEventQueues(global []dist.SpikeWire, partition []int) map[int][]Event {
	out := make(map[int][]Event)
	for d := 0; d < c.numDomains; d++ {
		connStart, connEnd := c.partition[d], c.partition[d+1]
		spikeStart, spikeEnd := 0, 0
		if d+1 < len(partition) {
			spikeStart, spikeEnd = partition[d], partition[d+1]
		}
		mergeDomain(c.conns[connStart:connEnd], global[spikeStart:spikeEnd], out)
	}
	return out
}

func mergeDomain(conns []Connection, spikes []dist.SpikeWire, out map[int][]Event) {
	ci, si := 0, 0
	for ci < len(conns) && si < len(spikes) {
		cSrc := conns[ci].Source
		sSrc := CellAddress{GID: GID(spikes[si].GID), LID: LID(spikes[si].Index)}
		switch {
		case cSrc.Less(sSrc):
			ci++
		case sSrc.Less(cSrc):
			si++
		default:
			ciEnd := ci
			for ciEnd < len(conns) && conns[ciEnd].Source == cSrc {
				ciEnd++
			}
			siEnd := si
			for siEnd < len(spikes) {
				other := CellAddress{GID: GID(spikes[siEnd].GID), LID: LID(spikes[siEnd].Index)}
				if other != sSrc {
					break
				}
				siEnd++
			}
			for _, conn := range conns[ci:ciEnd] {
				for _, sp := range spikes[si:siEnd] {
					out[conn.LocalGroup] = append(out[conn.LocalGroup], Event{
						Target: conn.Dest, Time: sp.Time + conn.Delay, Weight: conn.Weight,
					})
				}
			}
			ci, si = ciEnd, siEnd
		}
	}
}
