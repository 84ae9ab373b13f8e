package postprocess

import (
	"gonum.org/v1/gonum/mat"
)

// AlertThreshold is the binarized grid mean above which an alert is raised
const AlertThreshold = 0.35

// AlertPolicy decides from a binarized heatmap grid whether an alert should
// be raised
type AlertPolicy struct {
	// Threshold the grid mean must exceed
	Threshold float64
}

// NewAlertPolicy returns an AlertPolicy using AlertThreshold
func NewAlertPolicy() *AlertPolicy {
	return &AlertPolicy{
		Threshold: AlertThreshold,
	}
}

// Mean returns the mean cell value of the binarized grid.  The divisor is
// the total cell count of the grid so the result is independent of the model
// output resolution.
func (a *AlertPolicy) Mean(bin mat.Matrix) float64 {

	if bin == nil {
		return 0
	}

	if d, ok := bin.(*mat.Dense); ok && d == nil {
		return 0
	}

	rows, cols := bin.Dims()

	if rows == 0 || cols == 0 {
		return 0
	}

	return mat.Sum(bin) / float64(rows*cols)
}

// Evaluate returns true when the binarized grid mean is strictly greater than
// the threshold
func (a *AlertPolicy) Evaluate(bin mat.Matrix) bool {
	return a.Mean(bin) > a.Threshold
}
