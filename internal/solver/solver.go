// Package solver provides a uniform front end over the numeric optimization
// algorithms the project supports.
//
// Unconstrained methods are backed by gonum.org/v1/gonum/optimize. Bound and
// constraint handling is backed by github.com/curioloop/optimizer (L-BFGS-B
// and SLSQP). Solve hides the differences behind a single Request/Outcome
// pair: callers hand over plain vector callbacks and get back the final
// point, the final value and a converged/not-converged verdict.
package solver

import (
	"fmt"

	"github.com/curioloop/optimizer/numdiff"
	"gonum.org/v1/gonum/mat"
)

// Method identifies an optimization algorithm.
type Method int

// Supported algorithms.
const (
	NelderMead Method = iota
	GradientDescent
	CG
	BFGS
	LBFGS
	Newton
	LBFGSB
	SLSQP
)

var methodNames = map[Method]string{
	NelderMead:      "nelder-mead",
	GradientDescent: "gradient-descent",
	CG:              "cg",
	BFGS:            "bfgs",
	LBFGS:           "l-bfgs",
	Newton:          "newton",
	LBFGSB:          "l-bfgs-b",
	SLSQP:           "slsqp",
}

// String returns the canonical lower-case name of the method.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod resolves a method from its canonical name.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown method %q", name)
}

// Bound restricts a single variable to [Lower, Upper].
// Use ±Inf for an absent side.
type Bound struct {
	Lower, Upper float64
}

// ConstraintKind distinguishes equality from inequality constraints.
type ConstraintKind int

// Constraint kinds. Inequality constraints are satisfied when
// Func(x) >= 0, equality constraints when Func(x) == 0.
const (
	EqualityConstraint ConstraintKind = iota
	InequalityConstraint
)

// Constraint is a scalar constraint function with an optional analytic
// gradient. When Grad is nil the gradient is approximated by central
// finite differences.
type Constraint struct {
	Kind ConstraintKind
	Func func(x []float64) float64
	Grad func(x []float64) []float64
}

// Callback observes intermediate solutions during the run.
type Callback func(x []float64)

// Options carries algorithm tuning knobs. Zero values select defaults.
type Options struct {
	MaxIterations  int
	MaxEvaluations int
	Corrections    int // history size for limited-memory methods
}

// Problem bundles the numeric callbacks of one optimization instance.
// Grad and Hess are optional; methods that need them fall back to finite
// differences when they are absent.
type Problem struct {
	Func func(x []float64) float64
	Grad func(x []float64) []float64
	Hess func(x []float64) *mat.SymDense
}

// Request describes a single solver run.
type Request struct {
	Method      Method
	Problem     Problem
	X0          []float64
	Tol         float64 // 0 selects the method default
	Bounds      []Bound
	Constraints []Constraint
	Callback    Callback
	Options     Options
}

// Outcome is the result of a solver run. Success reports convergence;
// a non-converged run is still a valid outcome, not an error.
type Outcome struct {
	X          []float64
	F          float64
	Success    bool
	Message    string
	Iterations int
}

// Solve runs the requested method. It returns an error only for invalid
// requests or solver setup failures; non-convergence is reported through
// Outcome.Success.
func Solve(req Request) (*Outcome, error) {
	if req.Problem.Func == nil {
		return nil, fmt.Errorf("solver: objective function is required")
	}
	if len(req.X0) == 0 {
		return nil, fmt.Errorf("solver: empty initial point")
	}

	switch req.Method {
	case LBFGSB:
		return solveLBFGSB(req)
	case SLSQP:
		return solveSLSQP(req)
	case NelderMead, GradientDescent, CG, BFGS, LBFGS, Newton:
		if len(req.Bounds) > 0 {
			return nil, fmt.Errorf("solver: method %s does not support bounds", req.Method)
		}
		if len(req.Constraints) > 0 {
			return nil, fmt.Errorf("solver: method %s does not support constraints", req.Method)
		}
		return solveGonum(req)
	default:
		return nil, fmt.Errorf("solver: unknown method %v", req.Method)
	}
}

// approxHess builds a central-difference Hessian from a gradient
// function, symmetrized against differencing noise.
func approxHess(grad func(x []float64) []float64, n int) func(x []float64) *mat.SymDense {
	spec := &numdiff.ApproxSpec{
		N:      n,
		M:      n,
		Method: numdiff.Central,
		Object: func(x, y []float64) {
			copy(y, grad(x))
		},
	}
	return func(x []float64) *mat.SymDense {
		jac := make([]float64, n*n)
		// Diff perturbs its input in place, so hand it a copy.
		x0 := append([]float64(nil), x...)
		if err := spec.Diff(x0, jac); err != nil {
			panic(fmt.Sprintf("solver: hessian approximation: %v", err))
		}
		hess := mat.NewSymDense(n, nil)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				hess.SetSym(i, j, (jac[i*n+j]+jac[j*n+i])/2)
			}
		}
		return hess
	}
}

// approxGrad builds a central-difference gradient for a scalar function.
func approxGrad(f func(x []float64) float64, n int) func(x []float64) []float64 {
	spec := &numdiff.ApproxSpec{
		N:      n,
		M:      1,
		Method: numdiff.Central,
		Object: func(x, y []float64) {
			y[0] = f(x)
		},
	}
	return func(x []float64) []float64 {
		grad := make([]float64, n)
		// Diff perturbs its input in place, so hand it a copy.
		x0 := append([]float64(nil), x...)
		if err := spec.Diff(x0, grad); err != nil {
			panic(fmt.Sprintf("solver: gradient approximation: %v", err))
		}
		return grad
	}
}
