package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

type Alignment int

const (
	Left   Alignment = 1
	Center Alignment = 2
	Right  Alignment = 3
)

// Font defines the parameters for rendering detection labels with the GoCV
// backend
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding to place around text
	LeftPad   int
	RightPad  int
	TopPad    int
	BottomPad int
	// Alignment of the text label to the bounding box
	Alignment Alignment
}

// DefaultFont returns black label text left aligned above the box
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     Black,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   4,
		RightPad:  4,
		TopPad:    4,
		BottomPad: 6,
		Alignment: Left,
	}
}

// labelBox returns the background box for a label placed on top of rect and
// the baseline position of its text
func (f Font) labelBox(text string, rect image.Rectangle, lineThickness int) boxLabel {

	textSize := gocv.GetTextSize(text, f.Face, f.Scale, f.Thickness)

	var centerX int

	switch f.Alignment {
	case Center:
		centerX = (rect.Min.X + rect.Max.X) / 2

	case Right:
		centerX = rect.Max.X - (textSize.X / 2) - f.RightPad + (lineThickness / 2)

	case Left:
		fallthrough
	default:
		centerX = rect.Min.X + (textSize.X / 2) + f.LeftPad - (lineThickness / 2)
	}

	return boxLabel{
		rect: image.Rect(centerX-textSize.X/2-f.LeftPad,
			rect.Min.Y-textSize.Y-f.TopPad-f.BottomPad,
			centerX+textSize.X/2+f.RightPad, rect.Min.Y),
		text:    text,
		textPos: image.Pt(centerX-textSize.X/2, rect.Min.Y-f.BottomPad),
	}
}
