package cable

// Branch is a maximal run of segments with no internal branch point: it
// starts at a root or just after a branch point (a segment with more than
// one child) and ends at a leaf or the last segment before a branch point.
type Branch struct {
	Segments []int // indices into the owning SegmentTree, root-to-tip order
}

// BuildBranches decomposes a validated SegmentTree into branches.
func BuildBranches(t *SegmentTree) []Branch {
	children := t.Children()
	starts := make([]int, 0)
	for i, s := range t.Segments {
		if s.Parent == NoParent || len(children[s.Parent]) > 1 {
			starts = append(starts, i)
		}
	}
	branches := make([]Branch, 0, len(starts))
	for _, start := range starts {
		seg := []int{start}
		cur := start
		for len(children[cur]) == 1 {
			cur = children[cur][0]
			seg = append(seg, cur)
		}
		branches = append(branches, Branch{Segments: seg})
	}
	return branches
}

// CVPolicy assigns every segment of a SegmentTree to a control volume,
// returning a slice parallel to the tree: cv[i] is the CV index owning
// segment i. CV indices are assigned so that a CV's parent CV always has a
// strictly smaller index, matching the Hines-elimination ordering
// requirement (spec §4.4).
type CVPolicy interface {
	Assign(t *SegmentTree) []int
}

// EverySegmentPolicy puts each segment in its own CV: the finest possible
// discretization.
type EverySegmentPolicy struct{}

func (EverySegmentPolicy) Assign(t *SegmentTree) []int {
	cv := make([]int, len(t.Segments))
	for i := range cv {
		cv[i] = i
	}
	return cv
}

// FixedPerBranchPolicy splits every branch into exactly N control volumes
// of (approximately) equal arc length, each a contiguous run of whole
// segments. N must be >= 1.
//
// This is coarser than splitting individual segments at arbitrary points
// (as original_source does): CVs here are always unions of whole segments,
// never fractions of one. Documented as a deliberate simplification; it
// still satisfies the invariants exercised by the testable properties
// (branch points are always CV boundaries, CV count is predictable).
type FixedPerBranchPolicy struct {
	N int
}

func (p FixedPerBranchPolicy) Assign(t *SegmentTree) []int {
	n := p.N
	if n < 1 {
		n = 1
	}
	cv := make([]int, len(t.Segments))
	next := 0
	for _, br := range BuildBranches(t) {
		lengths := make([]float64, len(br.Segments))
		total := 0.0
		for i, s := range br.Segments {
			lengths[i] = segLength(t.Segments[s])
			total += lengths[i]
		}
		base := next
		bucketEdges := make([]float64, n)
		for k := 0; k < n; k++ {
			bucketEdges[k] = total * float64(k+1) / float64(n)
		}
		cum := 0.0
		for i, s := range br.Segments {
			mid := cum + lengths[i]/2
			cum += lengths[i]
			bucket := 0
			for bucket < n-1 && mid > bucketEdges[bucket] {
				bucket++
			}
			cv[s] = base + bucket
		}
		next = base + n
	}
	return cv
}

// ExplicitPolicy assigns CVs from an explicit list of segment indices that
// start a new CV; every other segment joins the most recently started CV.
// Segments are processed in tree order so segmentStarts need not be sorted.
// Every root segment and every child of a branch point starts a new CV
// whether or not it is listed: Assign adds those starts itself.
type ExplicitPolicy struct {
	SegmentStarts []int
}

func (p ExplicitPolicy) Assign(t *SegmentTree) []int {
	starts := make(map[int]bool, len(p.SegmentStarts))
	for _, s := range p.SegmentStarts {
		starts[s] = true
	}
	children := t.Children()
	for i, s := range t.Segments {
		if s.Parent == NoParent || len(children[s.Parent]) > 1 {
			starts[i] = true
		}
	}

	cv := make([]int, len(t.Segments))
	cur := -1
	for i := range t.Segments {
		if starts[i] {
			cur++
		}
		cv[i] = cur
	}
	return cv
}
