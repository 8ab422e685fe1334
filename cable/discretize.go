package cable

import "fmt"

// Ra is the bulk axial resistivity (ohm*cm) used by face conductance.
// Cm is the specific membrane capacitance (uF/cm^2) used by CV capacitance.
// Both are package-level defaults rather than per-segment parameters: the
// spec's discretization model (§4.4) allows per-region values, but the
// built-in mechanisms here don't need that granularity to exercise the
// invariants under test.
const (
	Ra = 100.0  // ohm*cm
	Cm = 1.0    // uF/cm^2
)

// unitScale converts the um^2-area/um-length raw integrals into the
// pF/uS magnitudes the spec's per-CV arrays are expressed in, assuming
// lengths and radii are given in micrometres.
const unitScale = 1e-2

// Discretization is the FVM output for one cell's morphology (spec §4.4):
// a CV tree with per-CV geometry and face conductances, plus the CV
// assignment used to bin mechanism placements.
type Discretization struct {
	NumCV          int
	ParentCV       []int     // NoParent for CV 0 (the root)
	CVArea         []float64 // um^2
	CVLength       []float64 // um
	CVCapacitance  []float64 // pF
	FaceConductance []float64 // uS, face between CV i and ParentCV[i]; 0 for the root
	SegmentCV      []int     // parallel to the SegmentTree, segment -> CV
}

// Discretize applies a CVPolicy to a validated SegmentTree and computes the
// resulting CV tree and geometry (spec §4.4's discretization step).
func Discretize(t *SegmentTree, policy CVPolicy) (*Discretization, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	segCV := policy.Assign(t)
	numCV := 0
	for _, c := range segCV {
		if c+1 > numCV {
			numCV = c + 1
		}
	}

	d := &Discretization{
		NumCV:           numCV,
		ParentCV:        make([]int, numCV),
		CVArea:          make([]float64, numCV),
		CVLength:        make([]float64, numCV),
		CVCapacitance:   make([]float64, numCV),
		FaceConductance: make([]float64, numCV),
		SegmentCV:       segCV,
	}
	for i := range d.ParentCV {
		d.ParentCV[i] = NoParent
	}

	sIx := make([]float64, numCV)
	seen := make([]bool, numCV)
	for i, s := range t.Segments {
		cv := segCV[i]
		d.CVArea[cv] += segArea(s)
		d.CVLength[cv] += segLength(s)
		sIx[cv] += segSIx(s)

		if !seen[cv] {
			seen[cv] = true
			if s.Parent == NoParent {
				d.ParentCV[cv] = NoParent
			} else if parentCV := segCV[s.Parent]; parentCV != cv {
				d.ParentCV[cv] = parentCV
			}
		} else if s.Parent != NoParent && segCV[s.Parent] != cv && d.ParentCV[cv] == NoParent {
			// a later segment entering this CV from a different parent CV;
			// keep the first-seen boundary (topology should make this rare).
			d.ParentCV[cv] = segCV[s.Parent]
		}
	}

	for cv := 0; cv < numCV; cv++ {
		d.CVCapacitance[cv] = Cm * d.CVArea[cv] * unitScale
		if d.ParentCV[cv] == NoParent {
			d.FaceConductance[cv] = 0
			continue
		}
		p := d.ParentCV[cv]
		halfSum := sIx[cv]/2 + sIx[p]/2
		if halfSum <= 0 {
			d.FaceConductance[cv] = 0
			continue
		}
		d.FaceConductance[cv] = 1.0 / (Ra * halfSum) * unitScale
	}

	if err := checkCVTopology(d); err != nil {
		return nil, err
	}
	return d, nil
}

// checkCVTopology verifies ParentCV[i] < i for every non-root CV, the
// ordering invariant the Hines solver depends on (spec §4.4).
func checkCVTopology(d *Discretization) error {
	for i, p := range d.ParentCV {
		if p == NoParent {
			continue
		}
		if p >= i {
			return fmt.Errorf("bad_topology: CV %d has parent CV %d (must be < %d)", i, p, i)
		}
	}
	return nil
}

// RegionSpec places a density mechanism over every segment carrying a given
// tag, with weight equal to the tag's area fraction within each CV it
// touches (spec §4.4's density-mechanism weight assignment).
type RegionSpec struct {
	Tag        int
	Mechanism  string
}

// MechanismPlacement is the (nodes, weights) pair a Catalogue.Instantiate
// call needs for one density mechanism over one discretized cell.
type MechanismPlacement struct {
	Mechanism string
	Nodes     []int
	Weights   []float64
}

// PlaceDensityMechanisms bins a SegmentTree's tagged regions into
// per-mechanism (CV, weight) placements against an existing Discretization.
// A CV touched by two different tagged regions gets one placement entry per
// region with weight equal to that region's share of the CV's total area;
// weights across regions covering a CV sum to 1 only when every tag on the
// CV is covered by some RegionSpec (spec §4.4 "modulo sub-region
// membership").
func PlaceDensityMechanisms(t *SegmentTree, d *Discretization, regions []RegionSpec) []MechanismPlacement {
	tagOf := make(map[int]string, len(regions))
	for _, r := range regions {
		tagOf[r.Tag] = r.Mechanism
	}

	type key struct {
		mech string
		cv   int
	}
	areaByKey := make(map[key]float64)
	for i, s := range t.Segments {
		mech, ok := tagOf[s.Tag]
		if !ok {
			continue
		}
		cv := d.SegmentCV[i]
		areaByKey[key{mech, cv}] += segArea(s)
	}

	byMech := make(map[string][]int)
	weightByMech := make(map[string][]float64)
	order := make([]string, 0)
	seenMech := make(map[string]bool)
	for _, r := range regions {
		if !seenMech[r.Mechanism] {
			seenMech[r.Mechanism] = true
			order = append(order, r.Mechanism)
		}
	}
	for _, mech := range order {
		for cv := 0; cv < d.NumCV; cv++ {
			area, ok := areaByKey[key{mech, cv}]
			if !ok || d.CVArea[cv] <= 0 {
				continue
			}
			w := area / d.CVArea[cv]
			byMech[mech] = append(byMech[mech], cv)
			weightByMech[mech] = append(weightByMech[mech], w)
		}
	}

	out := make([]MechanismPlacement, 0, len(order))
	for _, mech := range order {
		out = append(out, MechanismPlacement{Mechanism: mech, Nodes: byMech[mech], Weights: weightByMech[mech]})
	}
	return out
}
