package postprocess

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// binarizedWithOnes returns a rows x cols grid with the first n cells set
func binarizedWithOnes(rows, cols, n int) *mat.Dense {

	data := make([]float64, rows*cols)

	for k := 0; k < n; k++ {
		data[k] = 1
	}

	return mat.NewDense(rows, cols, data)
}

func TestAlertThreshold(t *testing.T) {

	tests := []struct {
		name string
		rows int
		cols int
		ones int
		want bool
	}{
		{"36 percent", 10, 10, 36, true},
		{"35 percent", 10, 10, 35, false},
		{"34 percent", 10, 10, 34, false},
		{"none", 10, 10, 0, false},
		{"all", 10, 10, 100, true},
		// 160x128 depth model output
		{"160x128 above", 128, 160, 7169, true},
		{"160x128 at", 128, 160, 7168, false},
		{"non square", 5, 20, 36, true},
	}

	policy := NewAlertPolicy()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bin := binarizedWithOnes(tc.rows, tc.cols, tc.ones)

			if got := policy.Evaluate(bin); got != tc.want {
				t.Errorf("Evaluate with %d/%d set = %v, want %v (mean %v)",
					tc.ones, tc.rows*tc.cols, got, tc.want, policy.Mean(bin))
			}
		})
	}
}

func TestAlertMeanUsesGridCellCount(t *testing.T) {

	policy := NewAlertPolicy()

	if m := policy.Mean(binarizedWithOnes(2, 2, 1)); m != 0.25 {
		t.Errorf("expected mean 0.25, got %v", m)
	}

	if m := policy.Mean(binarizedWithOnes(4, 8, 8)); m != 0.25 {
		t.Errorf("expected mean 0.25, got %v", m)
	}
}

func TestAlertEmptyGrid(t *testing.T) {

	policy := NewAlertPolicy()

	var nilGrid *mat.Dense

	if policy.Evaluate(nil) {
		t.Error("expected no alert for nil grid")
	}

	if policy.Evaluate(nilGrid) {
		t.Error("expected no alert for typed nil grid")
	}

	if policy.Evaluate(&mat.Dense{}) {
		t.Error("expected no alert for empty grid")
	}
}
