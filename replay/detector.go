package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/swdee/go-depthfuse"
)

// labelRecord is a recorded classification candidate
type labelRecord struct {
	Identifier string  `json:"identifier"`
	Confidence float32 `json:"confidence"`
}

// boxRecord is a recorded bounding box in unit square coordinates with the
// origin at the bottom left corner
type boxRecord struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// observationRecord is a single recorded object detector observation
type observationRecord struct {
	Labels []labelRecord `json:"labels"`
	Box    boxRecord     `json:"box"`
}

// Detector is an ObjectDetector that returns observations recorded from a
// previous object detection run
type Detector struct {
	// Delay simulates inference time before the observations are returned
	Delay time.Duration
	obs   []depthfuse.Observation
}

// NewDetector returns a Detector replaying the given observations
func NewDetector(obs []depthfuse.Observation) *Detector {
	return &Detector{
		obs: obs,
	}
}

// LoadDetections reads a JSON file of recorded observations and returns a
// Detector replaying them
func LoadDetections(path string) (*Detector, error) {

	buf, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("error reading detections file: %w", err)
	}

	obs, err := ParseDetections(buf)

	if err != nil {
		return nil, fmt.Errorf("error parsing detections file %s: %w", path, err)
	}

	return NewDetector(obs), nil
}

// ParseDetections decodes recorded observations from JSON
func ParseDetections(buf []byte) ([]depthfuse.Observation, error) {

	var records []observationRecord

	if err := json.Unmarshal(buf, &records); err != nil {
		return nil, err
	}

	obs := make([]depthfuse.Observation, len(records))

	for i, rec := range records {

		labels := make([]depthfuse.ClassLabel, len(rec.Labels))

		for k, l := range rec.Labels {
			labels[k] = depthfuse.ClassLabel{
				Identifier: l.Identifier,
				Confidence: l.Confidence,
			}
		}

		obs[i] = depthfuse.Observation{
			Labels: labels,
			Box: depthfuse.NormRect{
				X:      rec.Box.X,
				Y:      rec.Box.Y,
				Width:  rec.Box.Width,
				Height: rec.Box.Height,
			},
		}
	}

	return obs, nil
}

// DetectObjects returns the recorded observations, the image is ignored
func (d *Detector) DetectObjects(ctx context.Context, img image.Image,
	orient depthfuse.Orientation) ([]depthfuse.Observation, error) {

	if err := wait(ctx, d.Delay); err != nil {
		return nil, err
	}

	out := make([]depthfuse.Observation, len(d.obs))
	copy(out, d.obs)

	return out, nil
}

// wait sleeps for the delay or until the context is done
func wait(ctx context.Context, delay time.Duration) error {

	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
