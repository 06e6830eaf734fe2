// Package measure provides label measurers for sprite.LabelPlacer.
//
// Face measures with a golang.org/x/image font.Face such as
// basicfont.Face7x13, matching what the raster backend draws. Shaped runs
// the text through HarfBuzz shaping from go-text/typesetting so kerning and
// right-to-left runs are accounted for. Cached wraps either one with a
// sharded LRU keyed by label text.
package measure
