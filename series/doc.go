// Package series turns chart data into sprites.
//
// Pie and Gauge lay out sector sprites from values. Line pairs a line
// sprite with an aggregate tree so that only as many buckets as there are
// pixels are drawn.
package series
