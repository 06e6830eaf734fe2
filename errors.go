package ggchart

import "errors"

// ErrDegenerateTransform is returned when a matrix cannot be decomposed
// into rotation, scaling and translation because its linear part has
// (near) zero scale.
var ErrDegenerateTransform = errors.New("ggchart: degenerate transform")
