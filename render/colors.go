package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// boxColors is a list of colors used to outline detected objects
	boxColors = []color.RGBA{
		{R: 72, G: 249, B: 10, A: 255},   // #48F90A
		{R: 255, G: 56, B: 56, A: 255},   // #FF3838
		{R: 0, G: 194, B: 255, A: 255},   // #00C2FF
		{R: 255, G: 178, B: 29, A: 255},  // #FFB21D
		{R: 132, G: 56, B: 255, A: 255},  // #8438FF
		{R: 0, G: 212, B: 187, A: 255},   // #00D4BB
		{R: 255, G: 55, B: 199, A: 255},  // #FF37C7
		{R: 207, G: 210, B: 49, A: 255},  // #CFD231
		{R: 52, G: 69, B: 147, A: 255},   // #344593
		{R: 255, G: 112, B: 31, A: 255},  // #FF701F
	}

	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// DetectionFill is the translucent green painted over detected objects
	DetectionFill = color.NRGBA{R: 0, G: 255, B: 0, A: 51}
)

// boxColor returns the outline color for the object at index i
func boxColor(i int) color.RGBA {
	return boxColors[i%len(boxColors)]
}

// cellColor converts an overlay cell color to 8 bit RGBA
func cellColor(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
