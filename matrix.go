package ggchart

import (
	"fmt"
	"math"
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// degenerateEpsilon bounds the scale and determinant below which a matrix
// is considered non-decomposable.
const degenerateEpsilon = 1e-10

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// ScaleAbout scales by (sx, sy) keeping (cx, cy) fixed.
func ScaleAbout(sx, sy, cx, cy float64) Matrix {
	return Matrix{A: sx, C: cx - sx*cx, E: sy, F: cy - sy*cy}
}

// RotateAbout rotates by angle radians around (cx, cy).
func RotateAbout(angle, cx, cy float64) Matrix {
	return Translate(cx, cy).Multiply(Rotate(angle)).Multiply(Translate(-cx, -cy))
}

// MatrixFromSlice builds a matrix from six values in a, b, c, d, e, f order.
func MatrixFromSlice(v []float64) (Matrix, error) {
	if len(v) != 6 {
		return Matrix{}, fmt.Errorf("ggchart: matrix needs 6 elements, got %d", len(v))
	}
	return Matrix{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}, nil
}

// Elements returns the six matrix values in a, b, c, d, e, f order.
func (m Matrix) Elements() [6]float64 {
	return [6]float64{m.A, m.B, m.C, m.D, m.E, m.F}
}

// Multiply multiplies two matrices (m * other). The result applies other
// first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Angle returns the direction the matrix maps the unit X vector to.
func (m Matrix) Angle() float64 {
	return m.TransformVector(Point{X: 1}).Angle()
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if math.Abs(det) < degenerateEpsilon {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Components is the elementary form of an affine transform without shear.
type Components struct {
	RotationRads float64
	ScalingX     float64
	ScalingY     float64
	TranslationX float64
	TranslationY float64
}

// Compose builds T · R · S from c: scale first, then rotate, then translate.
func Compose(c Components) Matrix {
	sin, cos := math.Sincos(c.RotationRads)
	return Matrix{
		A: cos * c.ScalingX, B: -sin * c.ScalingY, C: c.TranslationX,
		D: sin * c.ScalingX, E: cos * c.ScalingY, F: c.TranslationY,
	}
}

// Decompose splits m into rotation, scaling and translation.
//
// The linear part is factored as R · S · K where K is an upper shear; the
// shear is discarded. ScalingX is always positive, so a reflection shows up
// as a negative ScalingY. For any Components with ScalingX > 0,
// ScalingY != 0 and RotationRads in (-π, π], Decompose(Compose(c)) == c up
// to rounding.
func Decompose(m Matrix) (Components, error) {
	sx := math.Hypot(m.A, m.D)
	det := m.Determinant()
	if !(sx >= degenerateEpsilon) || !(math.Abs(det) >= degenerateEpsilon) {
		return Components{}, ErrDegenerateTransform
	}
	return Components{
		RotationRads: math.Atan2(m.D, m.A),
		ScalingX:     sx,
		ScalingY:     det / sx,
		TranslationX: m.C,
		TranslationY: m.F,
	}, nil
}
