package session

// Stage is the position of a session within an input cycle
type Stage int

const (
	// AwaitingImage is waiting for an image to be selected
	AwaitingImage Stage = iota
	// AwaitingObjectDetection has an image and runs object detection on the
	// next Advance
	AwaitingObjectDetection
	// AwaitingDepthDetection runs depth estimation and fusion on the next
	// Advance
	AwaitingDepthDetection
)

// String returns a readable description of the Stage
func (s Stage) String() string {
	switch s {
	case AwaitingImage:
		return "AwaitingImage"
	case AwaitingObjectDetection:
		return "AwaitingObjectDetection"
	case AwaitingDepthDetection:
		return "AwaitingDepthDetection"
	default:
		return "UNKNOWN"
	}
}
