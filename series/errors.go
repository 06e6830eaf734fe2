package series

import "errors"

// ErrEmptyView is returned when a view has no extent to draw into.
var ErrEmptyView = errors.New("series: view has zero width or height")
