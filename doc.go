// Package ggchart draws charts from declaratively specified shape
// attributes onto an abstract 2D surface.
//
// # Overview
//
// A chart is a set of sprites (lines, pie and gauge sectors). Each sprite
// owns a live attribute set governed by a shared schema: incoming changes
// are normalized, assigned, and propagated to derived state through
// updaters. Rendering emits path and paint operations to a
// [recording.Surface]; the core never touches pixels.
//
// The root package holds the geometry the sprites build on:
//
//   - Point, Rect, Line and CubicBez primitives
//   - Matrix with Compose and Decompose for canonical transform records
//   - polynomial root solvers that report out-of-range roots with a sentinel
//   - cubic/line, cubic/cubic and line/line intersection tests
//   - natural cubic spline control points for smoothed series
//   - RGBA colors with CSS-style parsing
//
// # Packages
//
//   - attr: processors, schemas, normalization and update propagation
//   - sprite: Line and Sector sprites, label placement
//   - recording: draw-operation stream, recorder, playback backends
//   - aggregate: min/max pyramid for level-of-detail rendering
//   - series: pie and gauge layout, data to sprite glue
//   - measure: label box measurement
//   - cache: sharded LRU used by the measurers
//
// # Logging
//
// ggchart is silent by default. Call [SetLogger] to receive debug records
// for rejected attribute values and warnings for skipped shapes.
//
// [recording.Surface]: https://pkg.go.dev/github.com/gogpu/ggchart/recording#Surface
package ggchart
