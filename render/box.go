package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-depthfuse/postprocess"
	"github.com/swdee/go-depthfuse/postprocess/result"
	"gocv.io/x/gocv"
)

// boxLabel defines where the detection object label should be rendered on
// source image
type boxLabel struct {
	rect    image.Rectangle
	text    string
	textPos image.Point
}

// labelText returns the label to render for an object, with its overlay
// score appended when one is known
func labelText(obj result.DetectedObject, scores postprocess.Scores) string {

	if score, ok := scores.Get(obj.ID); ok {
		return fmt.Sprintf("%s %.2f", obj.Label, score)
	}

	return obj.Label
}

// DetectionBoxes renders the detected objects as translucent green areas
// with an outline and label.  Scores are optional, pass nil to only render
// the object labels.
func DetectionBoxes(img *gocv.Mat, objs []result.DetectedObject,
	scores postprocess.Scores, font Font, lineThickness int) {

	// paint the translucent fill on a copy of the image and blend it back
	fill := img.Clone()
	defer fill.Close()

	opaque := color.RGBA{R: DetectionFill.R, G: DetectionFill.G, B: DetectionFill.B, A: 255}

	for _, obj := range objs {
		gocv.Rectangle(&fill, obj.Rect.Image(), opaque, -1)
	}

	alpha := float64(DetectionFill.A) / 255
	gocv.AddWeighted(fill, alpha, *img, 1-alpha, 0, img)

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0, len(objs))

	for i, obj := range objs {

		rect := obj.Rect.Image()
		gocv.Rectangle(img, rect, boxColor(i), lineThickness)

		boxLabels = append(boxLabels, font.labelBox(labelText(obj, scores), rect, lineThickness))
	}

	// draw all precalculated box labels so they are the top most layer on the
	// image and don't get overlapped by other boxes
	for i, box := range boxLabels {
		// draw box text gets written on
		gocv.Rectangle(img, box.rect, boxColor(i), -1)

		// Draw the label over box
		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}
