// Package aggregate builds the min/max pyramid a line series is drawn
// from when it has more points than pixels.
//
// Level 0 holds the original points. Each further level merges adjacent
// pairs of the previous one ("double" strategy), keeping the lowest and
// highest point of every bucket, until a single bucket remains.
// Aggregation picks the coarsest level whose bucket spacing is still at
// least the requested step and narrows it to the visible range.
package aggregate
