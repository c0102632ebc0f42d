package minimize

import (
	"testing"

	"github.com/born-ml/sonum/internal/tensor"
)

func TestFlattenRestoreRoundtrip(t *testing.T) {
	engine := NewEngine()
	orig, err := tensor.FromSlice[float64, Engine](
		[]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, engine)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	flat, shape := flatten(orig)
	if len(flat) != 6 {
		t.Fatalf("flat length = %d, want 6", len(flat))
	}
	if !shape.Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", shape)
	}

	// The flat vector is a copy: solver-side mutation must not reach the
	// original tensor.
	flat[0] = 99
	if orig.Data()[0] != 1 {
		t.Error("flatten aliases the tensor buffer")
	}
	flat[0] = 1

	back, err := restore(NewEngine(), flat, shape)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !back.RequiresGrad() {
		t.Error("restored tensor is not gradient-tracked")
	}
	for i, v := range back.Data() {
		if v != orig.Data()[i] {
			t.Errorf("roundtrip element %d = %v, want %v", i, v, orig.Data()[i])
		}
	}
}

func TestRestore_LengthMismatchPropagates(t *testing.T) {
	if _, err := restore(NewEngine(), []float64{1, 2, 3}, tensor.Shape{2, 2}); err == nil {
		t.Error("length mismatch accepted")
	}
}

func TestDetached_NoTracking(t *testing.T) {
	out, err := detached([]float64{1, 2}, tensor.Shape{2})
	if err != nil {
		t.Fatalf("detached: %v", err)
	}
	if out.RequiresGrad() {
		t.Error("detached result requires grad")
	}
}
