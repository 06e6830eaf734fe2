package ggchart

// Spline returns the cubic bezier control values of a natural cubic spline
// through points, one axis at a time.
//
// For n points the result has 3n-2 values laid out as
//
//	p0, c1, c2, p1, c1, c2, p2, ..., p(n-1)
//
// so segment k runs from result[3k] through result[3k+1] and
// result[3k+2] to result[3k+3]. Both ends have zero curvature.
func Spline(points []float64) []float64 {
	n := len(points)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []float64{points[0]}
	}

	// Tridiagonal system with 4 on the diagonal and 1 beside it, solved by
	// a forward sweep and back substitution. zs[0] and zs[n-1] stay zero.
	zs := make([]float64, n)
	cp := make([]float64, n)
	r := 0.0
	for i := 1; i < n-1; i++ {
		r = 1 / (4 - r)
		cp[i] = r
		zs[i] = (points[i+1] + points[i-1] - 2*points[i] - zs[i-1]) * r
	}
	for i := n - 2; i > 0; i-- {
		zs[i] -= zs[i+1] * cp[i]
	}

	result := make([]float64, 3*n-2)
	for i, j := 0, 0; i < n-1; i, j = i+1, j+3 {
		d := points[i] - zs[i]
		nd := points[i+1] - zs[i+1]
		result[j] = points[i]
		result[j+1] = (nd + 2*d) / 3
		result[j+2] = (2*nd + d) / 3
	}
	result[3*n-3] = points[n-1]
	return result
}
