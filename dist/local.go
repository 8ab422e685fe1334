// LocalContext is the single-process, size()==1 distributed context used
// when running without any real collective transport. All gather
// operations are the identity; reductions pass their argument through.

package dist

type LocalContext struct{}

func NewLocalContext() *LocalContext { return &LocalContext{} }

func (c *LocalContext) ID() int       { return 0 }
func (c *LocalContext) Size() int     { return 1 }
func (c *LocalContext) Name() string  { return "local" }

func (c *LocalContext) GatherSpikesF64(local []SpikeWire) GatheredVector[SpikeWire] {
	return GatheredVector[SpikeWire]{Values: local, Partition: []int{0, len(local)}}
}

func (c *LocalContext) GatherGIDs(local []uint32) GatheredVector[uint32] {
	return GatheredVector[uint32]{Values: local, Partition: []int{0, len(local)}}
}

func (c *LocalContext) GatherLabeledRanges(local []LabeledRangeWire) GatheredVector[LabeledRangeWire] {
	return GatheredVector[LabeledRangeWire]{Values: local, Partition: []int{0, len(local)}}
}

func (c *LocalContext) Min(x float64) float64         { return x }
func (c *LocalContext) Max(x float64) float64         { return x }
func (c *LocalContext) Sum(x float64) float64         { return x }
func (c *LocalContext) GatherFloat(x float64, root int) []float64 { return []float64{x} }
func (c *LocalContext) Barrier()                      {}
