package depthfuse

import (
	"context"
	"image"
)

// Orientation is the EXIF style orientation of an image passed to an object
// detector so it can rotate the pixels into an upright position
type Orientation int

const (
	OrientationUp            Orientation = 1
	OrientationUpMirrored    Orientation = 2
	OrientationDown          Orientation = 3
	OrientationDownMirrored  Orientation = 4
	OrientationLeftMirrored  Orientation = 5
	OrientationRight         Orientation = 6
	OrientationRightMirrored Orientation = 7
	OrientationLeft          Orientation = 8
)

// ClassLabel is a single classification candidate of a detected object
type ClassLabel struct {
	// Identifier is the class name
	Identifier string
	// Confidence is the score the model gave this class
	Confidence float32
}

// NormRect is a bounding box in unit square coordinates with the origin at the
// bottom left corner, as output by the object detector
type NormRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Observation is a single object recognised by the object detector
type Observation struct {
	// Labels are the classification candidates for the object
	Labels []ClassLabel
	// Box is the normalized bounding box of the object
	Box NormRect
}

// ObjectDetector runs object detection inference on an image
type ObjectDetector interface {
	// DetectObjects returns the objects found in img.  Implementations must
	// stop and return ctx.Err() when the context is cancelled.
	DetectObjects(ctx context.Context, img image.Image, orient Orientation) ([]Observation, error)
}

// DepthEstimator runs depth/heatmap inference on an image
type DepthEstimator interface {
	// EstimateDepth returns the raw confidence tensor for img.  Implementations
	// must stop and return ctx.Err() when the context is cancelled.
	EstimateDepth(ctx context.Context, img image.Image) (*RawTensor, error)
}

// AlertSink receives fire and forget notifications when the alert policy
// triggers
type AlertSink interface {
	Alert()
}

// AlertFunc is an adapter to allow an ordinary function to be used as an
// AlertSink
type AlertFunc func()

// Alert calls f()
func (f AlertFunc) Alert() {
	f()
}
