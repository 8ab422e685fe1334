// DryRunContext replicates a single rank's local state across numRanks
// virtual ranks, offsetting gids by rank*cellsPerTile. Ported line-for-line
// in spirit from original_source/arbor/communication/dry_run_context.cpp's
// dry_run_context_impl — the reference this spec's scenario 2 (spec §8) is
// taken from.

package dist

type DryRunContext struct {
	numRanks      int
	cellsPerTile  int
}

// NewDryRunContext constructs a dry-run context replicating across numRanks
// virtual ranks of cellsPerTile cells each.
func NewDryRunContext(numRanks, cellsPerTile int) *DryRunContext {
	return &DryRunContext{numRanks: numRanks, cellsPerTile: cellsPerTile}
}

func (c *DryRunContext) ID() int   { return 0 }
func (c *DryRunContext) Size() int { return c.numRanks }
func (c *DryRunContext) Name() string { return "dryrun" }

func (c *DryRunContext) GatherSpikesF64(local []SpikeWire) GatheredVector[SpikeWire] {
	n := len(local)
	out := make([]SpikeWire, 0, n*c.numRanks)
	for r := 0; r < c.numRanks; r++ {
		for _, s := range local {
			s.GID += uint32(c.cellsPerTile * r)
			out = append(out, s)
		}
	}
	partition := make([]int, c.numRanks+1)
	for r := 0; r <= c.numRanks; r++ {
		partition[r] = r * n
	}
	return GatheredVector[SpikeWire]{Values: out, Partition: partition}
}

func (c *DryRunContext) GatherGIDs(local []uint32) GatheredVector[uint32] {
	n := len(local)
	out := make([]uint32, 0, n*c.numRanks)
	for r := 0; r < c.numRanks; r++ {
		for _, g := range local {
			out = append(out, g+uint32(c.cellsPerTile*r))
		}
	}
	partition := make([]int, c.numRanks+1)
	for r := 0; r <= c.numRanks; r++ {
		partition[r] = r * n
	}
	return GatheredVector[uint32]{Values: out, Partition: partition}
}

func (c *DryRunContext) GatherLabeledRanges(local []LabeledRangeWire) GatheredVector[LabeledRangeWire] {
	n := len(local)
	out := make([]LabeledRangeWire, 0, n*c.numRanks)
	for r := 0; r < c.numRanks; r++ {
		for _, row := range local {
			row.GID += uint32(c.cellsPerTile * r)
			out = append(out, row)
		}
	}
	partition := make([]int, c.numRanks+1)
	for r := 0; r <= c.numRanks; r++ {
		partition[r] = r * n
	}
	return GatheredVector[LabeledRangeWire]{Values: out, Partition: partition}
}

func (c *DryRunContext) Min(x float64) float64 { return x }
func (c *DryRunContext) Max(x float64) float64 { return x }
func (c *DryRunContext) Sum(x float64) float64 { return x * float64(c.numRanks) }

func (c *DryRunContext) GatherFloat(x float64, root int) []float64 {
	out := make([]float64, c.numRanks)
	for i := range out {
		out[i] = x
	}
	return out
}

func (c *DryRunContext) Barrier() {}
