package minimize

import (
	"github.com/born-ml/sonum/internal/autodiff"
	"github.com/born-ml/sonum/internal/backend/cpu"
	"github.com/born-ml/sonum/internal/tensor"
)

// Engine is the differentiation backend parameter tensors are built on:
// the autodiff decorator over the CPU backend.
type Engine = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// Param is a differentiable float64 parameter tensor.
type Param = tensor.Tensor[float64, Engine]

// NewEngine creates a fresh differentiation engine with an empty tape.
func NewEngine() Engine {
	return autodiff.New(cpu.New())
}

// flatten detaches a parameter tensor into a plain flat vector plus the
// shape needed to restore it. The returned slice is a copy: solvers own
// and mutate their working vectors freely.
func flatten(t *Param) ([]float64, tensor.Shape) {
	data := t.Detach().Data()
	return append([]float64(nil), data...), t.Shape().Clone()
}

// restore builds a gradient-tracked parameter tensor from a flat vector
// on the given engine. Length mismatches are not checked here; they
// surface from the underlying tensor construction.
func restore(engine Engine, x []float64, shape tensor.Shape) (*Param, error) {
	t, err := tensor.FromSlice[float64, Engine](x, shape, engine)
	if err != nil {
		return nil, err
	}
	return t.RequireGrad(), nil
}

// detached builds a plain result tensor from a flat vector, with no
// gradient tracking.
func detached(x []float64, shape tensor.Shape) (*Param, error) {
	t, err := tensor.FromSlice[float64, Engine](x, shape, NewEngine())
	if err != nil {
		return nil, err
	}
	return t.Detach(), nil
}
