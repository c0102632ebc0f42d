package solver

import (
	"fmt"
	"math"

	"github.com/curioloop/optimizer/lbfgsb"
)

const (
	defaultLBFGSBIterations  = 200
	defaultLBFGSBCorrections = 10
	defaultLBFGSBTolerance   = 1e-5
	// Relative accuracy factor of the Fortran reference implementation
	// ("moderate accuracy").
	defaultLBFGSBAccuracyFactor = 1e7
)

// solveLBFGSB runs the bound-constrained limited-memory method.
func solveLBFGSB(req Request) (*Outcome, error) {
	if len(req.Constraints) > 0 {
		return nil, fmt.Errorf("solver: method %s does not support constraints", req.Method)
	}

	n := len(req.X0)
	grad := req.Problem.Grad
	if grad == nil {
		grad = approxGrad(req.Problem.Func, n)
	}

	objective := req.Problem.Func
	callback := req.Callback
	eval := func(x, g []float64) float64 {
		copy(g, grad(x))
		f := objective(x)
		if callback != nil {
			callback(append([]float64(nil), x...))
		}
		return f
	}

	maxIter := req.Options.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultLBFGSBIterations
	}
	corrections := req.Options.Corrections
	if corrections <= 0 {
		corrections = defaultLBFGSBCorrections
	}
	tol := req.Tol
	if tol <= 0 {
		tol = defaultLBFGSBTolerance
	}

	problem := &lbfgsb.Problem{
		N:    n,
		M:    corrections,
		Eval: eval,
		Stop: lbfgsb.Termination{
			MaxIterations:     maxIter,
			MaxEvaluations:    req.Options.MaxEvaluations,
			EpsAccuracyFactor: defaultLBFGSBAccuracyFactor,
			ProjGradTolerance: tol,
		},
		Bounds: lbfgsbBounds(req.Bounds, n),
	}

	opt, err := problem.New(nil)
	if err != nil {
		return nil, fmt.Errorf("solver: l-bfgs-b setup: %w", err)
	}

	x := append([]float64(nil), req.X0...)
	res := opt.Fit(x, opt.Init())

	message := "l-bfgs-b converged"
	if !res.OK {
		message = fmt.Sprintf("l-bfgs-b stopped without convergence after %d iterations", res.NumIter)
	}
	return &Outcome{
		X:          res.X,
		F:          res.F,
		Success:    res.OK,
		Message:    message,
		Iterations: res.NumIter,
	}, nil
}

// lbfgsbBounds converts the uniform ±Inf bound convention into the NaN
// convention the L-BFGS-B implementation expects for absent sides.
func lbfgsbBounds(bounds []Bound, n int) []lbfgsb.Bound {
	if len(bounds) == 0 {
		return nil
	}
	out := make([]lbfgsb.Bound, n)
	for i, b := range bounds {
		out[i].Lower, out[i].Upper = b.Lower, b.Upper
		if math.IsInf(out[i].Lower, 0) {
			out[i].Lower = math.NaN()
		}
		if math.IsInf(out[i].Upper, 0) {
			out[i].Upper = math.NaN()
		}
	}
	return out
}
