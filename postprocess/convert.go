package postprocess

import (
	"image"

	"github.com/swdee/go-depthfuse"
	"github.com/swdee/go-depthfuse/postprocess/result"
)

// NormRectToRect converts a bounding box in unit square coordinates with a
// bottom left origin into image pixel coordinates with a top left origin
func NormRectToRect(box depthfuse.NormRect, size image.Point) result.Rect {

	w := float64(size.X)
	h := float64(size.Y)

	return result.NewRect(
		box.X*w,
		(1-box.Y-box.Height)*h,
		box.Width*w,
		box.Height*h,
	)
}

// ObservationToObject converts an object detector observation into a
// detected object for an image of the given size
func ObservationToObject(obs depthfuse.Observation, size image.Point,
	id string) result.DetectedObject {

	best, _ := BestLabel(obs.Labels)

	return result.DetectedObject{
		ID:         id,
		Label:      LabelText(best),
		Class:      best.Identifier,
		Confidence: best.Confidence,
		Rect:       NormRectToRect(obs.Box, size),
	}
}

// ObservationsToObjects converts object detector observations into detected
// objects keeping the detection order
func ObservationsToObjects(obs []depthfuse.Observation, size image.Point,
	gen *result.IDGenerator) []result.DetectedObject {

	objs := make([]result.DetectedObject, 0, len(obs))

	for _, o := range obs {
		objs = append(objs, ObservationToObject(o, size, gen.GetNext()))
	}

	return objs
}
