package solver

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// solveGonum runs the unconstrained methods through gonum's optimize
// package. gonum rejects a Problem that lacks a derivative its method
// uses, so missing callbacks are filled with finite-difference
// approximations before the solve.
func solveGonum(req Request) (*Outcome, error) {
	n := len(req.X0)
	problem := optimize.Problem{
		Func: req.Problem.Func,
	}

	grad := req.Problem.Grad
	if grad == nil && gonumNeedsGrad(req.Method) {
		grad = approxGrad(req.Problem.Func, n)
	}
	if grad != nil {
		problem.Grad = func(dst, x []float64) {
			copy(dst, grad(x))
		}
	}

	hess := req.Problem.Hess
	if hess == nil && req.Method == Newton {
		hess = approxHess(grad, n)
	}
	if hess != nil {
		problem.Hess = func(dst *mat.SymDense, x []float64) {
			dst.CopySym(hess(x))
		}
	}

	settings := &optimize.Settings{
		MajorIterations: req.Options.MaxIterations,
		FuncEvaluations: req.Options.MaxEvaluations,
	}
	if req.Tol > 0 {
		settings.GradientThreshold = req.Tol
		settings.Converger = &optimize.FunctionConverge{
			Absolute:   req.Tol,
			Iterations: 100,
		}
	}
	if req.Callback != nil {
		settings.Recorder = &callbackRecorder{fn: req.Callback}
	}

	x0 := append([]float64(nil), req.X0...)
	result, err := optimize.Minimize(problem, x0, settings, gonumMethod(req.Method))
	if result == nil {
		return nil, err
	}

	outcome := &Outcome{
		X:          result.X,
		F:          result.F,
		Success:    err == nil && gonumConverged(result.Status),
		Message:    result.Status.String(),
		Iterations: result.Stats.MajorIterations,
	}
	if err != nil {
		outcome.Message = err.Error()
	}
	return outcome, nil
}

// gonumNeedsGrad reports whether the gonum method consumes a gradient.
func gonumNeedsGrad(m Method) bool {
	switch m {
	case GradientDescent, CG, BFGS, LBFGS, Newton:
		return true
	}
	return false
}

func gonumMethod(m Method) optimize.Method {
	switch m {
	case NelderMead:
		return &optimize.NelderMead{}
	case GradientDescent:
		return &optimize.GradientDescent{}
	case CG:
		return &optimize.CG{}
	case BFGS:
		return &optimize.BFGS{}
	case LBFGS:
		return &optimize.LBFGS{}
	case Newton:
		return &optimize.Newton{}
	default:
		return nil
	}
}

func gonumConverged(status optimize.Status) bool {
	switch status {
	case optimize.Success,
		optimize.FunctionThreshold,
		optimize.FunctionConvergence,
		optimize.GradientThreshold,
		optimize.StepConvergence,
		optimize.MethodConverge:
		return true
	default:
		return false
	}
}

// callbackRecorder forwards the current location to the user callback on
// every major iteration.
type callbackRecorder struct {
	fn Callback
}

func (r *callbackRecorder) Init() error { return nil }

func (r *callbackRecorder) Record(loc *optimize.Location, op optimize.Operation, _ *optimize.Stats) error {
	if op == optimize.MajorIteration {
		r.fn(append([]float64(nil), loc.X...))
	}
	return nil
}
