package ggchart

import "math"

// Root solvers for bezier parameter searches. Only roots in [0, 1] are
// meaningful to callers, so out-of-range roots of a cubic or quadratic
// are reported as RootSentinel rather than removed. Callers skip any root
// outside [0, 1]. The solvers never return NaN.

// RootSentinel marks a root that fell outside [0, 1] or was complex.
const RootSentinel = -1.0

// CubicRoots returns the roots in t of p[0]t³ + p[1]t² + p[2]t + p[3] = 0.
//
// A zero leading coefficient degrades to [QuadraticRoots]. Otherwise the
// result always holds three entries: Cardano's formula is used when the
// discriminant is non-negative (the complex pair becomes two sentinels)
// and the trigonometric form for three distinct real roots.
func CubicRoots(p [4]float64) []float64 {
	a, b, c, d := p[0], p[1], p[2], p[3]
	if a == 0 {
		return QuadraticRoots(b, c, d)
	}

	A := b / a
	B := c / a
	C := d / a

	Q := (3*B - A*A) / 9
	R := (9*A*B - 27*C - 2*A*A*A) / 54
	D := Q*Q*Q + R*R

	t := make([]float64, 3)
	if D >= 0 {
		sqrtD := math.Sqrt(D)
		S := math.Cbrt(R + sqrtD)
		T := math.Cbrt(R - sqrtD)

		t[0] = -A/3 + (S + T)
		t[1] = -A/3 - (S+T)/2
		t[2] = t[1]
		if im := math.Abs(math.Sqrt(3) * (S - T) / 2); im != 0 {
			t[1] = RootSentinel
			t[2] = RootSentinel
		}
	} else {
		cosArg := R / math.Sqrt(-Q*Q*Q)
		th := math.Acos(math.Max(-1, math.Min(1, cosArg)))
		k := 2 * math.Sqrt(-Q)
		t[0] = k*math.Cos(th/3) - A/3
		t[1] = k*math.Cos((th+2*math.Pi)/3) - A/3
		t[2] = k*math.Cos((th+4*math.Pi)/3) - A/3
	}
	return clampRoots(t)
}

// QuadraticRoots returns the roots in t of at² + bt + c = 0.
// A zero a degrades to [LinearRoot]; a negative discriminant yields none.
func QuadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		return LinearRoot(b, c)
	}
	D := b*b - 4*a*c
	var t []float64
	switch {
	case D == 0:
		t = []float64{-b / (2 * a)}
	case D > 0:
		rD := math.Sqrt(D)
		t = []float64{(-b - rD) / (2 * a), (-b + rD) / (2 * a)}
	default:
		return nil
	}
	return clampRoots(t)
}

// LinearRoot returns the root of at + b = 0 if it lies in [0, 1].
// Unlike the higher-degree solvers it returns nothing instead of a sentinel.
func LinearRoot(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	t := -b / a
	if !(t >= 0 && t <= 1) {
		return nil
	}
	return []float64{t}
}

func clampRoots(t []float64) []float64 {
	for i, r := range t {
		if !(r >= 0 && r <= 1) {
			t[i] = RootSentinel
		}
	}
	return t
}

// validRoot reports whether r is a usable curve parameter.
func validRoot(r float64) bool {
	return r >= 0 && r <= 1
}
