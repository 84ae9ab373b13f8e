package result

// DetectedObject is an object found by the object detector in the active
// image
type DetectedObject struct {
	// ID is a unique ID assigned to the detected object
	ID string
	// Label is the classification label of the object followed by its
	// confidence
	Label string
	// Class is the highest confidence classification label
	Class string
	// Confidence is the confidence score of Class
	Confidence float32
	// Rect is the bounding box of the object in image pixel coordinates
	Rect Rect
}
