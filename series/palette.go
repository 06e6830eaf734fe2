package series

import "github.com/gogpu/ggchart"

// DefaultColors is the palette slices and bands cycle through.
var DefaultColors = mustColors(
	"#94ae0a", "#115fa6", "#a61120", "#ff8809", "#ffd13e",
	"#a61187", "#24ad9a", "#7c7474", "#a66111",
)

func mustColors(specs ...string) []ggchart.RGBA {
	out := make([]ggchart.RGBA, len(specs))
	for i, s := range specs {
		c, err := ggchart.ParseColor(s)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

func pick(colors []ggchart.RGBA, i int) ggchart.RGBA {
	if len(colors) == 0 {
		colors = DefaultColors
	}
	return colors[i%len(colors)]
}
