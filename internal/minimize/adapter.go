package minimize

import (
	"fmt"
	"math"

	"github.com/curioloop/optimizer/numdiff"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/sonum/internal/tensor"
)

// minTracker accumulates the lowest objective value observed during one
// Minimize call. It is created fresh per call and shared across all batch
// instances of that call; it carries diagnostics only.
type minTracker struct {
	best float64
}

func newMinTracker() *minTracker {
	return &minTracker{best: math.Inf(1)}
}

func (t *minTracker) observe(v float64) {
	if v < t.best {
		t.best = v
	}
}

// derivativeAdapter converts the differentiable objective into the plain
// vector callbacks a solver consumes. Every callback reconstructs a
// gradient-tracked tensor on a fresh engine: solvers invoke these as
// independent black boxes, so no differentiation graph can be shared
// between calls.
type derivativeAdapter struct {
	objective Objective
	shape     tensor.Shape
	args      []any
	tracker   *minTracker
}

// evaluate runs the objective at x under a fresh tape.
func (a *derivativeAdapter) evaluate(x []float64) (param, out *Param, engine Engine) {
	engine = NewEngine()
	param, err := restore(engine, x, a.shape)
	if err != nil {
		panic(fmt.Sprintf("minimize: %v", err))
	}
	out = a.objective(param, a.args...)
	if out == nil {
		panic("minimize: objective returned nil")
	}
	return param, out, engine
}

// Value evaluates the objective and records the running minimum.
func (a *derivativeAdapter) Value(x []float64) float64 {
	_, out, _ := a.evaluate(x)
	v := out.Item()
	a.tracker.observe(v)
	return v
}

// Jacobian computes the reverse-mode gradient of the objective at x,
// returned as a flat vector parallel to x. The running minimum is not
// touched here.
func (a *derivativeAdapter) Jacobian(x []float64) []float64 {
	param, out, engine := a.evaluate(x)

	grad := make([]float64, len(x))
	grads, err := engine.Backward(out.Raw())
	if err != nil {
		// The objective never touched its input; the gradient is zero.
		return grad
	}
	if g, ok := grads[param.Raw()]; ok {
		copy(grad, g.AsFloat64())
	}
	return grad
}

// Hessian approximates the second derivative by central finite
// differences of the reverse-mode gradient.
func (a *derivativeAdapter) Hessian(x []float64) *mat.SymDense {
	n := len(x)
	spec := &numdiff.ApproxSpec{
		N:      n,
		M:      n,
		Method: numdiff.Central,
		Object: func(xx, y []float64) {
			copy(y, a.Jacobian(xx))
		},
	}

	jac := make([]float64, n*n)
	x0 := append([]float64(nil), x...)
	if err := spec.Diff(x0, jac); err != nil {
		panic(fmt.Sprintf("minimize: hessian approximation: %v", err))
	}

	// Finite differencing breaks exact symmetry; average the two halves.
	hess := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			hess.SetSym(i, j, (jac[i*n+j]+jac[j*n+i])/2)
		}
	}
	return hess
}
