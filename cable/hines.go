package cable

// Hines elimination solves the tree-structured linear system produced by
// implicit discretization of the cable equation (spec §4.4, testable
// property 4). The matrix is symmetric: row i has diagonal D[i] and a
// single off-diagonal U[i] coupling it to its parent CV (ParentCV[i]); a
// node's children contribute to its own diagonal/RHS only through the
// reverse elimination sweep, never as separate stored entries. This is the
// O(n) generalization of the tridiagonal Thomas algorithm to a tree,
// exploiting ParentCV[i] < i ordering (original_source's
// arbor/backends/.../matrix.hpp; ported here at CV granularity, one cell
// at a time, without its SIMD-lane-batched form).

// Matrix is one cell's assembled linear system: D*v = B with the implicit
// off-diagonal coupling U[i] between CV i and ParentCV[i].
type Matrix struct {
	ParentCV []int
	D        []float64
	U        []float64 // U[i] couples CV i to ParentCV[i]; U[0] unused
	B        []float64
}

// NewMatrix allocates a Matrix sized for n CVs with the given parent array.
func NewMatrix(parentCV []int) *Matrix {
	n := len(parentCV)
	return &Matrix{
		ParentCV: parentCV,
		D:        make([]float64, n),
		U:        make([]float64, n),
		B:        make([]float64, n),
	}
}

// Solve destructively eliminates m (reverse sweep mutates D/B of parent
// rows) and returns the voltage vector. The caller must reassemble D/U/B
// before the next call; Solve does not restore them.
func (m *Matrix) Solve() []float64 {
	n := len(m.D)
	v := make([]float64, n)
	if n == 0 {
		return v
	}

	for i := n - 1; i >= 1; i-- {
		p := m.ParentCV[i]
		if m.D[i] == 0 {
			continue
		}
		factor := m.U[i] / m.D[i]
		m.D[p] -= factor * m.U[i]
		m.B[p] -= factor * m.B[i]
	}

	v[0] = m.B[0] / m.D[0]
	for i := 1; i < n; i++ {
		p := m.ParentCV[i]
		v[i] = (m.B[i] - m.U[i]*v[p]) / m.D[i]
	}
	return v
}

// Assemble builds the per-cell Matrix for one implicit step from the
// discretization's geometry and the mechanisms' accumulated G/I, following
// the generic conductance/current linearization (spec §4.5 step 3):
// diagonal gets Cm/dt plus every incident face conductance plus mechanism
// conductance; RHS gets the capacitive term plus the mechanism's
// current linearized about the previous voltage (G*v - I), independent of
// any particular mechanism's reversal potential.
func Assemble(d *Discretization, vPrev []float64, gMech []float64, iMech []float64, dt float64) *Matrix {
	n := d.NumCV
	m := NewMatrix(d.ParentCV)
	childFace := make([]float64, n)
	for i := 1; i < n; i++ {
		childFace[d.ParentCV[i]] += d.FaceConductance[i]
	}
	for i := 0; i < n; i++ {
		cCap := d.CVCapacitance[i] / dt
		m.D[i] = cCap + gMech[i] + childFace[i]
		if d.ParentCV[i] != NoParent {
			m.D[i] += d.FaceConductance[i]
			m.U[i] = -d.FaceConductance[i]
		}
		m.B[i] = cCap*vPrev[i] + gMech[i]*vPrev[i] - iMech[i]
	}
	return m
}
