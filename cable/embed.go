package cable

import "math"

// embed_pwlin closed-form integrals for a frustum (piecewise-linear radius
// profile) segment, as in original_source's embed_pwlin geometry layer.

// segLength is the Euclidean length of a segment's spine.
func segLength(s Segment) float64 {
	dx := s.Dist.X - s.Prox.X
	dy := s.Dist.Y - s.Prox.Y
	dz := s.Dist.Z - s.Prox.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// segArea is the lateral surface area of the frustum between Prox and Dist.
func segArea(s Segment) float64 {
	l := segLength(s)
	r1, r2 := s.Prox.R, s.Dist.R
	return math.Pi * (r1 + r2) * math.Sqrt((r2-r1)*(r2-r1)+l*l)
}

// segVolume is the frustum's volume.
func segVolume(s Segment) float64 {
	l := segLength(s)
	r1, r2 := s.Prox.R, s.Dist.R
	return (math.Pi * l / 3) * (r1*r1 + r1*r2 + r2*r2)
}

// segSIx is the axial resistance integral S_ix = integral_0^L dx/(pi r(x)^2)
// along the piecewise-linear radius profile r(x) = r1 + (r2-r1)x/L. The
// closed form L/(pi r1 r2) holds for both r1 == r2 and r1 != r2 (the
// removable singularity at r1 == r2 cancels in the limit).
func segSIx(s Segment) float64 {
	l := segLength(s)
	r1, r2 := s.Prox.R, s.Dist.R
	if r1 <= 0 || r2 <= 0 {
		return 0
	}
	return l / (math.Pi * r1 * r2)
}
