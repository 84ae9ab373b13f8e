package result

import (
	"image"
	"testing"
)

func TestRectIntersects(t *testing.T) {

	cell := NewRect(0, 0, 50, 50)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", NewRect(0, 0, 50, 50), true},
		{"contained", NewRect(10, 10, 5, 5), true},
		{"partial overlap", NewRect(40, 40, 20, 20), true},
		{"touching right edge", NewRect(50, 0, 50, 50), false},
		{"touching bottom edge", NewRect(0, 50, 50, 50), false},
		{"touching corner", NewRect(50, 50, 10, 10), false},
		{"disjoint", NewRect(200, 200, 10, 10), false},
		{"zero width", NewRect(10, 10, 0, 10), false},
		{"negative height", NewRect(10, 10, 10, -5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cell.Intersects(tc.other); got != tc.want {
				t.Errorf("Intersects(%v) = %v, want %v", tc.other, got, tc.want)
			}

			if got := tc.other.Intersects(cell); got != tc.want {
				t.Errorf("Intersects is not symmetric for %v", tc.other)
			}
		})
	}
}

func TestRectImage(t *testing.T) {

	r := NewRect(10.2, 20.7, 30.1, 9.4)
	want := image.Rect(10, 20, 41, 31)

	if got := r.Image(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}
