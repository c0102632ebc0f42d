package autodiff_test

import (
	"math"
	"testing"

	"github.com/born-ml/sonum/internal/autodiff"
	"github.com/born-ml/sonum/internal/backend/cpu"
	"github.com/born-ml/sonum/internal/tensor"
)

// TestAutodiffBackend_Name tests the Name method.
func TestAutodiffBackend_Name(t *testing.T) {
	backend := autodiff.New(cpu.New())
	expected := "Autodiff(CPU)"
	if backend.Name() != expected {
		t.Errorf("Name() = %s, want %s", backend.Name(), expected)
	}
}

// TestAutodiffBackend_Device tests the Device method.
func TestAutodiffBackend_Device(t *testing.T) {
	backend := autodiff.New(cpu.New())
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want %v", backend.Device(), tensor.CPU)
	}
}

// TestTape_RecordsOperations tests that forward ops land on the tape.
func TestTape_RecordsOperations(t *testing.T) {
	backend := autodiff.New(cpu.New())

	a, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	b, _ := tensor.FromSlice([]float64{3, 4}, tensor.Shape{2}, backend)
	backend.Add(a.Raw(), b.Raw())
	backend.Mul(a.Raw(), b.Raw())

	if got := backend.Tape().Len(); got != 2 {
		t.Errorf("tape length = %d, want 2", got)
	}

	backend.Tape().Reset()
	if got := backend.Tape().Len(); got != 0 {
		t.Errorf("tape length after Reset = %d, want 0", got)
	}
}

// TestBackward_SumOfSquares tests d(Σx²)/dx = 2x.
func TestBackward_SumOfSquares(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, backend)
	y := backend.Sum(backend.Mul(x.Raw(), x.Raw()))

	grads, err := backend.Backward(y)
	if err != nil {
		t.Fatalf("Backward: %v", err)
	}

	grad, ok := grads[x.Raw()]
	if !ok {
		t.Fatal("no gradient for input")
	}
	want := []float64{2, 4, 6}
	for i, v := range grad.AsFloat64() {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("grad[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// TestBackward_GradientAccumulation tests fan-out: y = x*x + x*x.
func TestBackward_GradientAccumulation(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, _ := tensor.FromSlice([]float64{3}, tensor.Shape{1}, backend)
	sq1 := backend.Mul(x.Raw(), x.Raw())
	sq2 := backend.Mul(x.Raw(), x.Raw())
	y := backend.Add(sq1, sq2)

	grads, err := backend.Backward(y)
	if err != nil {
		t.Fatalf("Backward: %v", err)
	}

	// d(2x²)/dx = 4x = 12
	got := grads[x.Raw()].AsFloat64()[0]
	if math.Abs(got-12) > 1e-12 {
		t.Errorf("grad = %v, want 12", got)
	}
}

// TestBackward_EmptyTape tests the error for an empty tape.
func TestBackward_EmptyTape(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x, _ := tensor.FromSlice([]float64{1}, tensor.Shape{1}, backend)
	if _, err := backend.Backward(x.Raw()); err == nil {
		t.Error("Backward on empty tape did not error")
	}
}

// TestBackward_MeanReduction tests d(mean(x))/dx = 1/n.
func TestBackward_MeanReduction(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4}, backend)
	y := backend.Mean(x.Raw())

	grads, err := backend.Backward(y)
	if err != nil {
		t.Fatalf("Backward: %v", err)
	}
	for i, v := range grads[x.Raw()].AsFloat64() {
		if math.Abs(v-0.25) > 1e-12 {
			t.Errorf("grad[%d] = %v, want 0.25", i, v)
		}
	}
}

// TestBackward_MatMul tests matrix product gradients against the
// closed-form formulas.
func TestBackward_MatMul(t *testing.T) {
	backend := autodiff.New(cpu.New())

	a, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	b, _ := tensor.FromSlice([]float64{5, 6, 7, 8}, tensor.Shape{2, 2}, backend)
	y := backend.Sum(backend.MatMul(a.Raw(), b.Raw()))

	grads, err := backend.Backward(y)
	if err != nil {
		t.Fatalf("Backward: %v", err)
	}

	// d(Σ A@B)/dA = ones @ Bᵀ
	wantA := []float64{11, 15, 11, 15}
	for i, v := range grads[a.Raw()].AsFloat64() {
		if math.Abs(v-wantA[i]) > 1e-12 {
			t.Errorf("gradA[%d] = %v, want %v", i, v, wantA[i])
		}
	}
	// d(Σ A@B)/dB = Aᵀ @ ones
	wantB := []float64{4, 4, 6, 6}
	for i, v := range grads[b.Raw()].AsFloat64() {
		if math.Abs(v-wantB[i]) > 1e-12 {
			t.Errorf("gradB[%d] = %v, want %v", i, v, wantB[i])
		}
	}
}

// TestBackward_SingleElementExpansion tests that the expanded operand's
// gradient is reduced back to one element.
func TestBackward_SingleElementExpansion(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, backend)
	s, _ := tensor.FromSlice([]float64{2}, tensor.Shape{1}, backend)
	y := backend.Sum(backend.Mul(x.Raw(), s.Raw()))

	grads, err := backend.Backward(y)
	if err != nil {
		t.Fatalf("Backward: %v", err)
	}

	gs := grads[s.Raw()]
	if !gs.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("scalar grad shape = %v, want [1]", gs.Shape())
	}
	// d(Σ s·x)/ds = Σx = 6
	if got := gs.AsFloat64()[0]; math.Abs(got-6) > 1e-12 {
		t.Errorf("scalar grad = %v, want 6", got)
	}
}
