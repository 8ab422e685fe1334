package cable

// Backend tags which execution target a cell group's cable cells run on
// (spec §4.4's CPU/GPU backend split; GPU is tagged but not implemented,
// per the spec's own open question on GPU support).
type Backend int

const (
	BackendCPU Backend = iota
	BackendGPU
)

func (b Backend) String() string {
	if b == BackendGPU {
		return "gpu"
	}
	return "cpu"
}
