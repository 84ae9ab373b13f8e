package postprocess

import (
	"fmt"
	"math"

	"github.com/swdee/go-depthfuse"
	"gonum.org/v1/gonum/mat"
)

// BinarizeCutoff is the normalized value at or above which a heatmap cell is
// set in the binarized grid
const BinarizeCutoff = 0.5

// Heatmap defines the struct for converting a depth/heatmap model output
// tensor into a normalized grid
type Heatmap struct {
	// Params are the heatmap configuration parameters
	Params HeatmapParams
}

// HeatmapParams defines the heatmap normalization parameters
type HeatmapParams struct {
	// StrictRange returns depthfuse.ErrDegenerateRange when the tensor has no
	// range to normalize over.  When false an all zero grid is returned
	// instead and HeatmapResult.Degenerate is set.
	StrictRange bool
	// Invert the normalized values, for models that output inverse depth
	Invert bool
}

// HeatmapDefaultParams returns zero filling of degenerate ranges and no
// inversion
func HeatmapDefaultParams() HeatmapParams {
	return HeatmapParams{
		StrictRange: false,
		Invert:      false,
	}
}

// NewHeatmap returns an instance of the heatmap post processor
func NewHeatmap(p HeatmapParams) *Heatmap {
	return &Heatmap{
		Params: p,
	}
}

// HeatmapResult holds the grids created from a tensor.  Both grids have
// tensor height rows and tensor width columns, the cell for grid column i and
// row j is at At(j, i).
type HeatmapResult struct {
	// Normalized values in the range [0,1]
	Normalized *mat.Dense
	// Binarized grid with cells of 1 where the normalized value is at or
	// above BinarizeCutoff and 0 otherwise
	Binarized *mat.Dense
	// Min and Max are the smallest and largest positive confidences found
	Min float64
	Max float64
	// Degenerate is set when there was no range to normalize over and the
	// grids were zero filled
	Degenerate bool
}

// Dims returns the grid width (columns) and height (rows)
func (r *HeatmapResult) Dims() (width, height int) {
	height, width = r.Normalized.Dims()
	return width, height
}

// Normalize converts the first channel plane of the tensor into a
// normalized and binarized grid.
//
// Confidences of zero or below are not written to the grid, those cells stay
// at 0 and take no part in the min/max range.  The remaining cells are
// rescaled by (v - min) / (max - min) so the grid stays within [0,1].
func (h *Heatmap) Normalize(t *depthfuse.RawTensor) (*HeatmapResult, error) {

	if err := t.Validate(); err != nil {
		return nil, err
	}

	gridW := t.Width()
	gridH := t.Height()

	grid := mat.NewDense(gridH, gridW, nil)

	// first pass: copy positive confidences and find their min/max
	minV := math.Inf(1)
	maxV := math.Inf(-1)

	for i := 0; i < gridW; i++ {
		for j := 0; j < gridH; j++ {
			v := float64(t.At(i, j))

			// also drops NaN which fails every comparison
			if !(v > 0) {
				continue
			}

			if math.IsInf(v, 1) {
				continue
			}

			grid.Set(j, i, v)

			if v < minV {
				minV = v
			}

			if v > maxV {
				maxV = v
			}
		}
	}

	res := &HeatmapResult{
		Min: minV,
		Max: maxV,
	}

	den := maxV - minV

	if math.IsInf(minV, 0) || math.IsInf(maxV, 0) || den <= 0 {

		if h.Params.StrictRange {
			return nil, fmt.Errorf("%w: min=%v, max=%v", depthfuse.ErrDegenerateRange,
				minV, maxV)
		}

		// fallback: all zero grids
		grid.Zero()
		res.Normalized = grid
		res.Binarized = mat.NewDense(gridH, gridW, nil)
		res.Degenerate = true

		return res, nil
	}

	// second pass: rescale the positive cells to the min/max range
	grid.Apply(func(_, _ int, v float64) float64 {
		// filtered cell
		if v == 0 {
			return 0
		}

		n := (v - minV) / den

		if h.Params.Invert {
			n = 1.0 - n
		}

		return n
	}, grid)

	res.Normalized = grid
	res.Binarized = Binarize(grid)

	return res, nil
}

// Binarize returns a grid with cells of 1 where the value is at or above
// BinarizeCutoff and 0 otherwise
func Binarize(grid mat.Matrix) *mat.Dense {

	rows, cols := grid.Dims()
	bin := mat.NewDense(rows, cols, nil)

	bin.Apply(func(j, i int, _ float64) float64 {
		if grid.At(j, i) >= BinarizeCutoff {
			return 1
		}
		return 0
	}, bin)

	return bin
}
