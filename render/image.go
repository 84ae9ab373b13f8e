package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/swdee/go-depthfuse/postprocess"
	"github.com/swdee/go-depthfuse/postprocess/result"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// HeatmapImage renders the overlay cells onto a new transparent image the
// size of the overlay.  Cells not visible in the given mode are left
// transparent.
func HeatmapImage(ov *postprocess.Overlay, mode Mode) *image.NRGBA {

	dst := image.NewNRGBA(image.Rect(0, 0, ov.Size.X, ov.Size.Y))

	for _, cell := range ov.Cells {

		if !mode.visible(cell) {
			continue
		}

		clr := cellColor(cell.Color)
		area := cellBounds(cell.Rect).Intersect(dst.Bounds())

		draw.Draw(dst, area, image.NewUniform(clr), image.Point{}, draw.Src)
	}

	return dst
}

// BlendHeatmap renders the overlay on top of a copy of the base image using
// the overlay opacity.  The base image is resized to the overlay size if the
// dimensions differ.
func BlendHeatmap(base image.Image, ov *postprocess.Overlay, mode Mode) *image.NRGBA {

	if base.Bounds().Size() != ov.Size {
		base = imaging.Resize(base, ov.Size.X, ov.Size.Y, imaging.Lanczos)
	}

	heat := HeatmapImage(ov, mode)

	return imaging.Overlay(base, heat, image.Pt(0, 0), ov.Opacity)
}

// DrawDetections paints the detected objects as translucent green areas with
// an outline and label onto dst.  Scores are optional, pass nil to only
// render the object labels.
func DrawDetections(dst draw.Image, objs []result.DetectedObject,
	scores postprocess.Scores) {

	fill := image.NewUniform(DetectionFill)

	for i, obj := range objs {

		rect := obj.Rect.Image().Intersect(dst.Bounds())

		if rect.Empty() {
			continue
		}

		draw.Draw(dst, rect, fill, image.Point{}, draw.Over)
		drawOutline(dst, rect, boxColor(i))
		drawText(dst, rect.Min.X+2, rect.Min.Y+basicfont.Face7x13.Ascent+2,
			labelText(obj, scores), boxColor(i))
	}
}

// drawOutline draws a one pixel rectangle outline
func drawOutline(dst draw.Image, r image.Rectangle, clr color.Color) {

	src := image.NewUniform(clr)

	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}

// drawText writes text with its baseline at (x, y)
func drawText(dst draw.Image, x, y int, text string, clr color.Color) {

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(clr),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}

	d.DrawString(text)
}
