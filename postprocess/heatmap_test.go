package postprocess

import (
	"errors"
	"math"
	"testing"

	"github.com/swdee/go-depthfuse"
	"gonum.org/v1/gonum/mat"
)

// newTensor builds a single channel tensor from a grid given as rows[j][i]
func newTensor(t *testing.T, rows [][]float32) *depthfuse.RawTensor {
	t.Helper()

	h := len(rows)
	w := len(rows[0])
	data := make([]float32, w*h)

	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			data[i*h+j] = rows[j][i]
		}
	}

	tensor, err := depthfuse.NewRawTensor([]int{1, w, h}, data)

	if err != nil {
		t.Fatalf("failed to create tensor: %v", err)
	}

	return tensor
}

// matrixEqual compares a matrix against expected rows
func matrixEqual(m mat.Matrix, want [][]float64, epsilon float64) bool {

	r, c := m.Dims()

	if r != len(want) {
		return false
	}

	for j := 0; j < r; j++ {
		if c != len(want[j]) {
			return false
		}

		for i := 0; i < c; i++ {
			if diff := m.At(j, i) - want[j][i]; diff > epsilon || diff < -epsilon {
				return false
			}
		}
	}

	return true
}

func TestNormalizeRange(t *testing.T) {

	tensor := newTensor(t, [][]float32{
		{1, 2, 3},
		{4, 5, 9},
	})

	hm := NewHeatmap(HeatmapDefaultParams())
	res, err := hm.Normalize(tensor)

	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := [][]float64{
		{0, 0.125, 0.25},
		{0.375, 0.5, 1},
	}

	if !matrixEqual(res.Normalized, want, 1e-9) {
		t.Errorf("expected normalized %v, got %v", want, mat.Formatted(res.Normalized))
	}

	if res.Min != 1 || res.Max != 9 {
		t.Errorf("expected min/max 1/9, got %v/%v", res.Min, res.Max)
	}

	w, h := res.Dims()

	if w != 3 || h != 2 {
		t.Errorf("expected dims 3x2, got %dx%d", w, h)
	}

	if res.Degenerate {
		t.Error("expected non degenerate result")
	}
}

func TestNormalizeValuesWithinUnitRange(t *testing.T) {

	tensor := newTensor(t, [][]float32{
		{0.3, -2, 0.9, 0},
		{7.5, 0.01, -0.5, 3},
		{2, 2, 2, 0.4},
	})

	res, err := NewHeatmap(HeatmapDefaultParams()).Normalize(tensor)

	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	r, c := res.Normalized.Dims()

	for j := 0; j < r; j++ {
		for i := 0; i < c; i++ {
			v := res.Normalized.At(j, i)

			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Errorf("cell (%d,%d) = %v outside [0,1]", i, j, v)
			}
		}
	}

	// maximum and minimum positive confidences
	if v := res.Normalized.At(1, 0); v != 1 {
		t.Errorf("expected max cell to normalize to 1, got %v", v)
	}

	if v := res.Normalized.At(1, 1); v != 0 {
		t.Errorf("expected min positive cell to normalize to 0, got %v", v)
	}
}

func TestNormalizeFiltersNonPositive(t *testing.T) {

	// the negative value would be the minimum if it were not filtered
	tensor := newTensor(t, [][]float32{
		{-10, 2},
		{0, 4},
	})

	res, err := NewHeatmap(HeatmapDefaultParams()).Normalize(tensor)

	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if res.Min != 2 || res.Max != 4 {
		t.Errorf("expected min/max over positive values 2/4, got %v/%v", res.Min, res.Max)
	}

	want := [][]float64{
		{0, 0},
		{0, 1},
	}

	if !matrixEqual(res.Normalized, want, 1e-9) {
		t.Errorf("expected normalized %v, got %v", want, mat.Formatted(res.Normalized))
	}
}

func TestNormalizeBinarization(t *testing.T) {

	// normalizes to 0, 0.25, 0.5, 0.75, 1
	tensor := newTensor(t, [][]float32{
		{1, 2, 3, 4, 5},
	})

	res, err := NewHeatmap(HeatmapDefaultParams()).Normalize(tensor)

	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := [][]float64{{0, 0, 1, 1, 1}}

	if !matrixEqual(res.Binarized, want, 0) {
		t.Errorf("expected binarized %v, got %v", want, mat.Formatted(res.Binarized))
	}

	// every cell follows the cutoff rule
	_, c := res.Binarized.Dims()

	for i := 0; i < c; i++ {
		n := res.Normalized.At(0, i)
		b := res.Binarized.At(0, i)

		if (n >= BinarizeCutoff) != (b == 1) {
			t.Errorf("cell %d: normalized %v binarized to %v", i, n, b)
		}
	}
}

func TestBinarizeBoundary(t *testing.T) {

	grid := mat.NewDense(1, 3, []float64{0.4999999, 0.5, 0.5000001})
	bin := Binarize(grid)

	want := [][]float64{{0, 1, 1}}

	if !matrixEqual(bin, want, 0) {
		t.Errorf("expected %v, got %v", want, mat.Formatted(bin))
	}
}

func TestNormalizeInvert(t *testing.T) {

	tensor := newTensor(t, [][]float32{
		{1, 3, 0},
	})

	p := HeatmapDefaultParams()
	p.Invert = true

	res, err := NewHeatmap(p).Normalize(tensor)

	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := [][]float64{{1, 0, 0}}

	if !matrixEqual(res.Normalized, want, 1e-9) {
		t.Errorf("expected normalized %v, got %v", want, mat.Formatted(res.Normalized))
	}
}

func TestNormalizeDegenerate(t *testing.T) {

	tests := []struct {
		name string
		rows [][]float32
	}{
		{"all zero", [][]float32{{0, 0}, {0, 0}}},
		{"all negative", [][]float32{{-1, -2}, {-3, -4}}},
		{"identical", [][]float32{{0.7, 0.7}, {0.7, 0.7}}},
		{"single positive", [][]float32{{0, 0.7}, {-1, 0}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tensor := newTensor(t, tc.rows)

			res, err := NewHeatmap(HeatmapDefaultParams()).Normalize(tensor)

			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}

			if !res.Degenerate {
				t.Error("expected degenerate result")
			}

			zero := [][]float64{{0, 0}, {0, 0}}

			if !matrixEqual(res.Normalized, zero, 0) {
				t.Errorf("expected zero grid, got %v", mat.Formatted(res.Normalized))
			}

			if !matrixEqual(res.Binarized, zero, 0) {
				t.Errorf("expected zero binarized grid, got %v", mat.Formatted(res.Binarized))
			}

			strict := HeatmapDefaultParams()
			strict.StrictRange = true

			_, err = NewHeatmap(strict).Normalize(tensor)

			if !errors.Is(err, depthfuse.ErrDegenerateRange) {
				t.Errorf("expected ErrDegenerateRange, got %v", err)
			}
		})
	}
}

func TestNormalizeInvalidShape(t *testing.T) {

	tests := []struct {
		name   string
		tensor *depthfuse.RawTensor
	}{
		{"nil", nil},
		{"two dims", &depthfuse.RawTensor{Shape: []int{4, 4}, Data: make([]float32, 16)}},
		{"zero width", &depthfuse.RawTensor{Shape: []int{1, 0, 4}, Data: nil}},
		{"short data", &depthfuse.RawTensor{Shape: []int{1, 4, 4}, Data: make([]float32, 15)}},
		{"overflowing shape", &depthfuse.RawTensor{Shape: []int{1, math.MaxInt / 2, 4}, Data: nil}},
	}

	hm := NewHeatmap(HeatmapDefaultParams())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := hm.Normalize(tc.tensor)

			if !errors.Is(err, depthfuse.ErrInvalidShape) {
				t.Errorf("expected ErrInvalidShape, got %v", err)
			}
		})
	}
}

func TestNormalizeReadsFirstChannel(t *testing.T) {

	// 2 channels of a 2x1 plane, second channel must be ignored
	tensor, err := depthfuse.NewRawTensor([]int{2, 2, 1}, []float32{1, 3, 100, 200})

	if err != nil {
		t.Fatalf("failed to create tensor: %v", err)
	}

	res, err := NewHeatmap(HeatmapDefaultParams()).Normalize(tensor)

	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if res.Max != 3 {
		t.Errorf("expected max from first channel 3, got %v", res.Max)
	}
}
