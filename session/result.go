package session

import (
	"github.com/swdee/go-depthfuse/postprocess"
	"github.com/swdee/go-depthfuse/postprocess/result"
)

// ResultKind identifies the stage a Result was produced by
type ResultKind int

const (
	ObjectDetection ResultKind = 1
	DepthDetection  ResultKind = 2
)

// String returns a readable description of the ResultKind
func (k ResultKind) String() string {
	switch k {
	case ObjectDetection:
		return "ObjectDetection"
	case DepthDetection:
		return "DepthDetection"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of a detection stage of an input cycle
type Result struct {
	// Kind of stage that produced the result
	Kind ResultKind
	// Generation is the input cycle the result belongs to
	Generation uint64
	// Objects detected.  For ObjectDetection these are the objects the
	// detection added, for DepthDetection all objects the heatmap was fused
	// with.
	Objects []result.DetectedObject
	// Heatmap grids, set for DepthDetection only
	Heatmap *postprocess.HeatmapResult
	// Overlay to render, set for DepthDetection only
	Overlay *postprocess.Overlay
	// Scores of the objects, set for DepthDetection only
	Scores postprocess.Scores
	// Mean of the binarized heatmap grid
	Mean float64
	// Alert is true when the alert policy triggered
	Alert bool
	// Err is set when inference or fusion failed, no other fields except
	// Kind and Generation are set then
	Err error
}
