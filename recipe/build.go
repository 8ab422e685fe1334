package recipe

import (
	"fmt"

	"github.com/cortexsim/engine/engine"
	"github.com/cortexsim/engine/cable"
	"github.com/cortexsim/engine/cellgroup"
	"github.com/cortexsim/engine/mech"
)

// BuildCableCell discretizes desc's morphology, instantiates its density
// and point mechanisms out of cat, and returns a ready-to-run CableCell
// plus the per-LID mechanism targets incoming connections need (spec §4.4,
// §4.5, §6: the recipe layer owns the translation from a morphology+region
// description into a runtime cell).
func BuildCableCell(desc *CableCellDescription, cat *mech.Catalogue, backend mech.Backend) (*cable.CableCell, *cable.Discretization, map[engine.LID]cellgroup.MechTarget, error) {
	if desc.Morphology == nil {
		return nil, nil, nil, fmt.Errorf("recipe: CableCellDescription has no morphology")
	}
	policy := desc.Policy
	if policy == nil {
		policy = cable.EverySegmentPolicy{}
	}

	disc, err := cable.Discretize(desc.Morphology, policy)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("recipe: discretize: %w", err)
	}

	var regionSpecs []cable.RegionSpec
	for _, r := range desc.Regions {
		regionSpecs = append(regionSpecs, cable.RegionSpec{Tag: r.Tag, Mechanism: r.Mechanism})
	}
	placements := cable.PlaceDensityMechanisms(desc.Morphology, disc, regionSpecs)

	var instances []mech.Instance
	for _, p := range placements {
		if len(p.Nodes) == 0 {
			continue
		}
		inst, err := cat.Instantiate(p.Mechanism, backend, p.Nodes, p.Weights)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("recipe: density mechanism %q: %w", p.Mechanism, err)
		}
		instances = append(instances, inst)
	}

	// One point-mechanism instance per declared synapse, each bound to its
	// own CV: incoming events are routed per-LID via targets below, so
	// instances don't need to be coalesced by mechanism name the way
	// density placements are.
	targets := make(map[engine.LID]cellgroup.MechTarget, len(desc.PointSyns))
	for _, syn := range desc.PointSyns {
		inst, err := cat.Instantiate(syn.Mechanism, backend, []int{syn.CV}, []float64{1})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("recipe: point mechanism %q: %w", syn.Mechanism, err)
		}
		instances = append(instances, inst)
		targets[syn.LID] = cellgroup.MechTarget{Mechanism: syn.Mechanism, CV: syn.CV}
	}

	cell := cable.NewCableCell(disc, instances, desc.VRest)
	return cell, disc, targets, nil
}

// BuildCableCellGroup builds every cable cell the StaticRecipe describes
// for a set of local gids into one CableCellGroup, using the same
// catalogue and backend for all of them.
func BuildCableCellGroup(r *StaticRecipe, gids []engine.GID, cat *mech.Catalogue, backend mech.Backend, binning cellgroup.BinningMode, binDt float64) (*cellgroup.CableCellGroup, error) {
	var configs []cellgroup.CableCellConfig
	for _, gid := range gids {
		desc, ok := r.Descs[gid].(*CableCellDescription)
		if !ok {
			return nil, fmt.Errorf("recipe: gid %d is not a cable cell description", gid)
		}
		cell, disc, targets, err := BuildCableCell(desc, cat, backend)
		if err != nil {
			return nil, fmt.Errorf("recipe: gid %d: %w", gid, err)
		}
		configs = append(configs, cellgroup.CableCellConfig{
			GID: gid, Disc: disc, Cell: cell, Targets: targets, DetectCV: desc.DetectCV,
		})
	}
	return cellgroup.NewCableCellGroup(configs, binning, binDt), nil
}

// BuildLIFGroup builds an LIFGroup for a set of local gids described with
// LIFCellDescription.
func BuildLIFGroup(r *StaticRecipe, gids []engine.GID) (*cellgroup.LIFGroup, error) {
	cells := make(map[engine.GID]*cellgroup.LIFCell, len(gids))
	for _, gid := range gids {
		desc, ok := r.Descs[gid].(*LIFCellDescription)
		if !ok {
			return nil, fmt.Errorf("recipe: gid %d is not an lif cell description", gid)
		}
		cells[gid] = &cellgroup.LIFCell{
			V: desc.Vrest, Vrest: desc.Vrest, Vreset: desc.Vreset,
			Threshold: desc.Threshold, Tau: desc.Tau, Tref: desc.Tref,
		}
	}
	return cellgroup.NewLIFGroup(cells), nil
}
