package tensor_test

import (
	"testing"

	"github.com/born-ml/sonum/internal/backend/cpu"
	"github.com/born-ml/sonum/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", x.Shape())
	}
	if x.DType() != tensor.Float64 {
		t.Errorf("dtype = %v, want Float64", x.DType())
	}
	if got := x.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v, want 6", got)
	}
}

func TestFromSlice_LengthMismatch(t *testing.T) {
	backend := cpu.New()
	if _, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{2, 3}, backend); err == nil {
		t.Error("length mismatch accepted")
	}
}

func TestCreation(t *testing.T) {
	backend := cpu.New()

	z := tensor.Zeros[float64](tensor.Shape{4}, backend)
	for i, v := range z.Data() {
		if v != 0 {
			t.Errorf("Zeros[%d] = %v", i, v)
		}
	}

	o := tensor.Ones[float32](tensor.Shape{4}, backend)
	for i, v := range o.Data() {
		if v != 1 {
			t.Errorf("Ones[%d] = %v", i, v)
		}
	}

	f := tensor.Full(tensor.Shape{2, 2}, 2.5, backend)
	for i, v := range f.Data() {
		if v != 2.5 {
			t.Errorf("Full[%d] = %v", i, v)
		}
	}

	s := tensor.Scalar(7.0, backend)
	if s.Item() != 7.0 {
		t.Errorf("Scalar.Item() = %v, want 7", s.Item())
	}
}

func TestDetach_SharesData(t *testing.T) {
	backend := cpu.New()
	x, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	d := x.Detach()

	if d.RequiresGrad() {
		t.Error("detached tensor requires grad")
	}
	// Zero-copy: mutating the view mutates the original.
	d.Data()[0] = 9
	if x.Data()[0] != 9 {
		t.Error("Detach() copied data")
	}
}

func TestClone_DropsGradientTracking(t *testing.T) {
	backend := cpu.New()
	x, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	x.RequireGrad()

	c := x.Clone()
	if c.RequiresGrad() {
		t.Error("cloned tensor requires grad")
	}
	if !x.RequiresGrad() {
		t.Error("Clone() cleared tracking on the original")
	}
}

func TestTensor_SetAt(t *testing.T) {
	backend := cpu.New()
	x := tensor.Zeros[float64](tensor.Shape{2, 2}, backend)
	x.Set(3.5, 1, 0)
	if got := x.At(1, 0); got != 3.5 {
		t.Errorf("At(1,0) = %v, want 3.5", got)
	}
}

func TestRawTensor_CopyOnWriteAccounting(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{3}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	if !raw.IsUnique() {
		t.Error("fresh tensor not unique")
	}

	clone := raw.Clone()
	if raw.IsUnique() {
		t.Error("tensor unique after Clone")
	}

	clone.Release()
	if !raw.IsUnique() {
		t.Error("tensor not unique after clone released")
	}

	restore := raw.ForceNonUnique()
	if raw.IsUnique() {
		t.Error("ForceNonUnique did not pin the buffer")
	}
	restore()
	if !raw.IsUnique() {
		t.Error("ForceNonUnique cleanup did not restore uniqueness")
	}
}
