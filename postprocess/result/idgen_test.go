package result

import (
	"testing"

	"github.com/google/uuid"
)

func TestSequentialIDGenerator(t *testing.T) {

	gen := NewSequentialIDGenerator("det-")

	for _, want := range []string{"det-1", "det-2", "det-3"} {
		if got := gen.GetNext(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
}

func TestUUIDGenerator(t *testing.T) {

	gen := NewIDGenerator()

	a := gen.GetNext()
	b := gen.GetNext()

	if a == b {
		t.Errorf("expected unique IDs, got %s twice", a)
	}

	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected UUID, got %q: %v", a, err)
	}
}
