package result

import (
	"image"
	"math"
)

// Rect is an axis aligned rectangle in image pixel coordinates with the
// origin at the top left corner
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a new Rect with given coordinates
func NewRect(x, y, width, height float64) Rect {
	return Rect{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// TLX returns the top-left x coordinate of the rectangle
func (r Rect) TLX() float64 {
	return r.X
}

// TLY returns the top-left y coordinate of the rectangle
func (r Rect) TLY() float64 {
	return r.Y
}

// BRX returns the bottom-right x coordinate of the rectangle
func (r Rect) BRX() float64 {
	return r.X + r.Width
}

// BRY returns the bottom-right y coordinate of the rectangle
func (r Rect) BRY() float64 {
	return r.Y + r.Height
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// Intersects reports whether the two rectangles share a non-empty area.
// Rectangles that only touch along an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {

	if r.Empty() || other.Empty() {
		return false
	}

	return r.X < other.BRX() && other.X < r.BRX() &&
		r.Y < other.BRY() && other.Y < r.BRY()
}

// Image converts the rectangle to an image.Rectangle covering every pixel
// the rectangle touches
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.TLX())),
		int(math.Floor(r.TLY())),
		int(math.Ceil(r.BRX())),
		int(math.Ceil(r.BRY())),
	)
}
