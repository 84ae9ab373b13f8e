package depthfuse

import (
	"fmt"
)

// tensor dimension positions of the [channels, width, height] layout
const (
	DimChannels = 0
	DimWidth    = 1
	DimHeight   = 2
)

// RawTensor is the confidence tensor output by a depth/heatmap model.  The
// layout is [channels, width, height] and only the first channel plane is
// read when building a heatmap.  A RawTensor must not be modified after it
// has been created.
type RawTensor struct {
	// Shape of the tensor, at least 3 dimensions
	Shape []int
	// Data is the flattened tensor buffer, the first channel plane is indexed
	// as Data[i*height + j] for grid column i and row j
	Data []float32
}

// NewRawTensor returns a RawTensor after validating the shape describes the
// data given
func NewRawTensor(shape []int, data []float32) (*RawTensor, error) {

	t := &RawTensor{
		Shape: append([]int(nil), shape...),
		Data:  data,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// NewRawTensorFromFloat16 returns a RawTensor from a FP16 output buffer
func NewRawTensorFromFloat16(shape []int, data []uint16) (*RawTensor, error) {
	return NewRawTensor(shape, convertFloat16BufferToFloat32(data))
}

// Validate checks the tensor has at least the [channels, width, height]
// dimensions and enough data for one full width x height plane
func (t *RawTensor) Validate() error {

	if t == nil {
		return fmt.Errorf("%w: nil tensor", ErrInvalidShape)
	}

	if len(t.Shape) < 3 {
		return fmt.Errorf("%w: need at least 3 dimensions, got %d",
			ErrInvalidShape, len(t.Shape))
	}

	if t.Shape[DimWidth] <= 0 || t.Shape[DimHeight] <= 0 {
		return fmt.Errorf("%w: spatial dimensions must be positive, got %dx%d",
			ErrInvalidShape, t.Shape[DimWidth], t.Shape[DimHeight])
	}

	// compare by division, the width x height product may overflow int
	if len(t.Data)/t.Shape[DimHeight] < t.Shape[DimWidth] {
		return fmt.Errorf("%w: data length %d smaller than %dx%d plane",
			ErrInvalidShape, len(t.Data), t.Shape[DimWidth], t.Shape[DimHeight])
	}

	return nil
}

// Channels returns the channel count of the tensor
func (t *RawTensor) Channels() int {
	return t.Shape[DimChannels]
}

// Width returns the spatial width, the number of grid columns
func (t *RawTensor) Width() int {
	return t.Shape[DimWidth]
}

// Height returns the spatial height, the number of grid rows
func (t *RawTensor) Height() int {
	return t.Shape[DimHeight]
}

// At returns the confidence of grid column i and row j from the first channel
// plane
func (t *RawTensor) At(i, j int) float32 {
	return t.Data[i*t.Shape[DimHeight]+j]
}

// String returns the tensor's shape formatted as a string
func (t *RawTensor) String() string {
	return fmt.Sprintf("shape=%v, n_elems=%d", t.Shape, len(t.Data))
}
