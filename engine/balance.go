// Load balancer: spec §4.8's round-robin gid assignment, gap-junction
// connected-component preservation, and backend choice. Connected
// components are computed with gonum's graph package rather than a
// hand-rolled BFS (gonum.org/v1/gonum/graph/simple +
// gonum.org/v1/gonum/graph/topo), a direct wiring of a teacher-transitive
// dependency the rest of the repo doesn't otherwise exercise.
package engine

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Backend names the execution target chosen for a group (spec §4.8 step 4).
type Backend string

const (
	BackendCPU Backend = "cpu"
	BackendGPU Backend = "gpu"
)

// LoadBalanceHints carries the user-supplied sizing and backend
// preferences the balancer consults (spec §4.8's "user hints").
type LoadBalanceHints struct {
	MaxGroupSize map[CellKind]int
	GPUAvailable bool
	GPUSupported map[CellKind]bool // which kinds have a GPU-capable backend at all
	PreferGPU    map[CellKind]bool
}

func (h LoadBalanceHints) maxSize(k CellKind) int {
	if h.MaxGroupSize != nil {
		if n, ok := h.MaxGroupSize[k]; ok && n > 0 {
			return n
		}
	}
	return 64
}

func (h LoadBalanceHints) backend(k CellKind) Backend {
	if h.GPUAvailable && h.GPUSupported != nil && h.GPUSupported[k] && h.PreferGPU != nil && h.PreferGPU[k] {
		return BackendGPU
	}
	return BackendCPU
}

// GIDRange returns the contiguous [lo, hi) gid range rank owns out of n
// total cells split evenly across numRanks (spec §4.8 step 1).
func GIDRange(rank, numRanks, n int) (int, int) {
	lo := rank * n / numRanks
	hi := (rank + 1) * n / numRanks
	return lo, hi
}

// CellGroupPlan is one group the balancer has decided to build: a cell
// kind, its member gids (gap-junction components kept contiguous), and a
// chosen backend.
type CellGroupPlan struct {
	Kind    CellKind
	GIDs    []GID
	Backend Backend
}

// gapJunctionComponents builds the gap-junction graph reachable from local
// gids (following recipe.GapJunctionsOn outward, which may cross into
// non-local gids) and returns its connected components as sorted GID
// slices.
func gapJunctionComponents(recipe Recipe, local []GID) [][]GID {
	g := simple.NewUndirectedGraph()
	seen := make(map[GID]bool)
	var frontier []GID
	addNode := func(gid GID) {
		if !seen[gid] {
			seen[gid] = true
			g.AddNode(simple.Node(int64(gid)))
			frontier = append(frontier, gid)
		}
	}
	for _, gid := range local {
		addNode(gid)
	}
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, gj := range recipe.GapJunctionsOn(cur) {
			peer := gj.Peer.GID
			addNode(peer)
			if !g.HasEdgeBetween(int64(cur), int64(peer)) {
				g.SetEdge(simple.Edge{F: simple.Node(int64(cur)), T: simple.Node(int64(peer))})
			}
		}
	}

	raw := topo.ConnectedComponents(g)
	out := make([][]GID, 0, len(raw))
	for _, comp := range raw {
		gids := make([]GID, len(comp))
		for i, node := range comp {
			gids[i] = GID(node.ID())
		}
		sort.Slice(gids, func(i, j int) bool { return gids[i] < gids[j] })
		out = append(out, gids)
	}
	return out
}

// Balance implements spec §4.8's full algorithm for one rank.
func Balance(recipe Recipe, rank, numRanks int, hints LoadBalanceHints) ([]CellGroupPlan, error) {
	n := recipe.NumCells()
	lo, hi := GIDRange(rank, numRanks, n)
	local := make([]GID, 0, hi-lo)
	for g := lo; g < hi; g++ {
		local = append(local, GID(g))
	}

	components := gapJunctionComponents(recipe, local)

	// Discard components whose least gid falls outside this rank's range
	// (spec §4.8 step 2: they belong to the owner of their least gid). A
	// kept component's full membership becomes this rank's unit — including
	// any gids gapJunctionComponents walked onto that aren't in this rank's
	// own round-robin range, since owning the component means owning all of
	// it, not just the local slice of it (the non-owning rank already
	// excludes the whole component, so this doesn't double-assign anyone).
	type unit struct {
		kind CellKind
		gids []GID
	}
	var units []unit
	for _, comp := range components {
		if len(comp) == 0 {
			continue
		}
		minGID := comp[0]
		if minGID < GID(lo) || minGID >= GID(hi) {
			continue
		}
		kind := recipe.CellKind(comp[0])
		for _, gid := range comp {
			if recipe.CellKind(gid) != kind {
				return nil, Errorf(ErrMismatchedCellKinds, "Balance", "gap junction component %v mixes cell kinds", comp)
			}
		}
		units = append(units, unit{kind: kind, gids: comp})
	}

	byKind := make(map[CellKind][]unit)
	for _, u := range units {
		byKind[u.kind] = append(byKind[u.kind], u)
	}

	kinds := make([]CellKind, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	var plans []CellGroupPlan
	for _, kind := range kinds {
		kindUnits := byKind[kind]
		sort.Slice(kindUnits, func(i, j int) bool { return kindUnits[i].gids[0] < kindUnits[j].gids[0] })

		maxSize := hints.maxSize(kind)
		var cur []GID
		flush := func() {
			if len(cur) > 0 {
				plans = append(plans, CellGroupPlan{Kind: kind, GIDs: cur, Backend: hints.backend(kind)})
				cur = nil
			}
		}
		for _, u := range kindUnits {
			if len(cur)+len(u.gids) > maxSize && len(cur) > 0 {
				flush()
			}
			cur = append(cur, u.gids...)
		}
		flush()
	}
	return plans, nil
}
