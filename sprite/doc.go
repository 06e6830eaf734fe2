// Package sprite implements the chart shapes: Line, which reconstructs a
// polyline or spline from min/max aggregates, and Sector, the pie and
// gauge wedge.
//
// Every shape owns an attr.Set built from a schema shared by all shapes of
// its kind. Attributes are changed with Apply; rendering reads the set and
// emits path and paint operations to a recording.Surface. Markers and
// labels are not drawn here. Their placements are handed to a MarkerSink.
package sprite
