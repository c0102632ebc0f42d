package solver

import (
	"fmt"

	"github.com/curioloop/optimizer/slsqp"
)

const (
	defaultSLSQPIterations = 100
	defaultSLSQPAccuracy   = 1e-8
)

// solveSLSQP runs sequential least-squares programming, the only method
// that accepts both bounds and nonlinear constraints.
func solveSLSQP(req Request) (*Outcome, error) {
	n := len(req.X0)

	grad := req.Problem.Grad
	if grad == nil {
		grad = approxGrad(req.Problem.Func, n)
	}

	objective := req.Problem.Func
	callback := req.Callback
	object := func(x, g []float64) float64 {
		copy(g, grad(x))
		f := objective(x)
		if callback != nil {
			callback(append([]float64(nil), x...))
		}
		return f
	}

	var eqCons, neqCons []slsqp.Evaluation
	for _, c := range req.Constraints {
		eval := constraintEvaluation(c, n)
		switch c.Kind {
		case EqualityConstraint:
			eqCons = append(eqCons, eval)
		case InequalityConstraint:
			neqCons = append(neqCons, eval)
		default:
			return nil, fmt.Errorf("solver: unknown constraint kind %v", c.Kind)
		}
	}

	maxIter := req.Options.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultSLSQPIterations
	}
	accuracy := req.Tol
	if accuracy <= 0 {
		accuracy = defaultSLSQPAccuracy
	}

	problem := &slsqp.Problem{
		N:       n,
		Object:  object,
		EqCons:  eqCons,
		NeqCons: neqCons,
		Bounds:  slsqpBounds(req.Bounds, n),
		Stop: slsqp.Termination{
			Accuracy:      accuracy,
			MaxIterations: maxIter,
		},
	}

	opt, err := problem.New()
	if err != nil {
		return nil, fmt.Errorf("solver: slsqp setup: %w", err)
	}

	x := append([]float64(nil), req.X0...)
	res := opt.Fit(x, opt.Init())

	return &Outcome{
		X:          res.X,
		F:          res.F,
		Success:    res.OK,
		Message:    slsqpMessage(res),
		Iterations: res.NumIter,
	}, nil
}

// constraintEvaluation adapts a Constraint to the combined value+gradient
// signature, approximating the gradient when no analytic one is given.
func constraintEvaluation(c Constraint, n int) slsqp.Evaluation {
	grad := c.Grad
	if grad == nil {
		grad = approxGrad(c.Func, n)
	}
	fn := c.Func
	return func(x, g []float64) float64 {
		copy(g, grad(x))
		return fn(x)
	}
}

// slsqpBounds passes ±Inf sides straight through: the SLSQP implementation
// treats infinite bounds as absent.
func slsqpBounds(bounds []Bound, n int) []slsqp.Bound {
	if len(bounds) == 0 {
		return nil
	}
	out := make([]slsqp.Bound, n)
	for i, b := range bounds {
		out[i].Lower, out[i].Upper = b.Lower, b.Upper
	}
	return out
}

func slsqpMessage(res *slsqp.Result) string {
	switch res.Status {
	case slsqp.HasSolution:
		return "slsqp converged"
	case slsqp.SQPExceedMaxIter:
		return fmt.Sprintf("slsqp iteration limit reached after %d iterations", res.NumIter)
	case slsqp.NNLSExceedMaxIter:
		return "slsqp inner least-squares iteration limit reached"
	case slsqp.ConsIncompatible:
		return "slsqp inequality constraints are incompatible"
	case slsqp.SearchNotDescent:
		return "slsqp line search found no descent direction"
	case slsqp.BadArgument:
		return "slsqp rejected the problem definition"
	case slsqp.LSISingularE, slsqp.LSEISingularC, slsqp.HFTIRankDefect:
		return "slsqp encountered a singular constraint subproblem"
	default:
		return fmt.Sprintf("slsqp stopped with status %d", res.Status)
	}
}
