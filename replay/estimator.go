package replay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/swdee/go-depthfuse"
)

// tensorRecord is a recorded depth model output.  Data holds float32 values,
// FP16 holds the raw bits of a half precision output buffer.  Only one of
// them may be set.
type tensorRecord struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data,omitempty"`
	FP16  []uint16  `json:"fp16,omitempty"`
}

// Estimator is a DepthEstimator that returns a tensor recorded from a
// previous depth model run
type Estimator struct {
	// Delay simulates inference time before the tensor is returned
	Delay  time.Duration
	tensor *depthfuse.RawTensor
}

// NewEstimator returns an Estimator replaying the given tensor
func NewEstimator(t *depthfuse.RawTensor) *Estimator {
	return &Estimator{
		tensor: t,
	}
}

// LoadTensor reads a JSON tensor file and returns an Estimator replaying it
func LoadTensor(path string) (*Estimator, error) {

	buf, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("error reading tensor file: %w", err)
	}

	t, err := ParseTensor(buf)

	if err != nil {
		return nil, fmt.Errorf("error parsing tensor file %s: %w", path, err)
	}

	return NewEstimator(t), nil
}

// ParseTensor decodes a recorded tensor from JSON
func ParseTensor(buf []byte) (*depthfuse.RawTensor, error) {

	var rec tensorRecord

	if err := json.Unmarshal(buf, &rec); err != nil {
		return nil, err
	}

	switch {
	case len(rec.Data) > 0 && len(rec.FP16) > 0:
		return nil, errors.New("tensor has both data and fp16 values")

	case len(rec.FP16) > 0:
		return depthfuse.NewRawTensorFromFloat16(rec.Shape, rec.FP16)

	default:
		return depthfuse.NewRawTensor(rec.Shape, rec.Data)
	}
}

// EstimateDepth returns the recorded tensor, the image is ignored
func (e *Estimator) EstimateDepth(ctx context.Context,
	img image.Image) (*depthfuse.RawTensor, error) {

	if err := wait(ctx, e.Delay); err != nil {
		return nil, err
	}

	if e.tensor == nil {
		return nil, fmt.Errorf("replay: %w", depthfuse.ErrInvalidShape)
	}

	return e.tensor, nil
}
