package sprite

import "errors"

// ErrSmoothGaps is returned when smoothing is requested for data that
// contains non-finite points.
var ErrSmoothGaps = errors.New("sprite: smoothing requires gapless data")
