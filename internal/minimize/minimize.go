// Package minimize bridges differentiable tensor objectives with the
// classical numeric optimizers in internal/solver.
//
// The caller supplies an objective composed of differentiable tensor
// operations and an initial parameter tensor of arbitrary shape; the
// package derives whatever value/gradient/Hessian callbacks the chosen
// algorithm consumes, runs the solve, and hands back a solution tensor of
// the same shape. A batchwise mode treats the leading dimension of the
// initial tensor as independent problems solved under one call.
package minimize

import (
	"github.com/born-ml/sonum/internal/solver"
	"github.com/born-ml/sonum/internal/tensor"
)

// Objective maps a gradient-tracked parameter tensor (plus optional extra
// arguments) to a single-element differentiable tensor. It must be
// composed entirely of operations of the tensor backend so the gradient
// can be recovered from the tape.
type Objective func(x *Param, args ...any) *Param

// Result is the outcome of a Minimize call. Success and Message are
// parallel slices with one entry per instance (length 1 for a
// single-instance call). MinObjective is the lowest objective value
// observed across every evaluation of the call, a diagnostic that may be
// lower than the objective at Solution.
type Result struct {
	Solution     *Param
	Success      []bool
	Message      []string
	MinObjective float64
}

// Minimize minimizes objective starting from x0. A nil config selects the
// defaults. Solver non-convergence is not an error: it is reported per
// instance through Result.Success and Result.Message.
func Minimize(objective Objective, x0 *Param, cfg *Config) (*Result, error) {
	if objective == nil {
		return nil, ErrNilObjective
	}
	if x0 == nil {
		return nil, ErrNilInitial
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	useGrad, useHess := resolveCallbacks(cfg.Method, cfg.Jac, cfg.Hess)
	tracker := newMinTracker()

	if cfg.Batchwise {
		return dispatchBatch(objective, x0, cfg, useGrad, useHess, tracker)
	}

	x, shape := flatten(x0)
	inst := instanceConfig{
		bounds:      cfg.Bounds,
		constraints: cfg.Constraints,
		tol:         cfg.Tol,
		args:        cfg.Args,
	}
	outcome, err := solveInstance(objective, x, shape, inst, cfg, useGrad, useHess, tracker)
	if err != nil {
		return nil, err
	}

	solution, err := detached(outcome.X, shape)
	if err != nil {
		return nil, err
	}
	return &Result{
		Solution:     solution,
		Success:      []bool{outcome.Success},
		Message:      []string{outcome.Message},
		MinObjective: tracker.best,
	}, nil
}

// instanceConfig is the per-instance slice of the configuration.
type instanceConfig struct {
	bounds      []solver.Bound
	constraints []solver.Constraint
	tol         float64
	args        []any
}

// solveInstance runs one optimization problem through the solver, with
// the derivative callbacks the capability resolution selected.
func solveInstance(objective Objective, x []float64, shape tensor.Shape, inst instanceConfig,
	cfg *Config, useGrad, useHess bool, tracker *minTracker) (*solver.Outcome, error) {

	adapter := &derivativeAdapter{
		objective: objective,
		shape:     shape,
		args:      inst.args,
		tracker:   tracker,
	}

	problem := solver.Problem{Func: adapter.Value}
	if useGrad {
		problem.Grad = adapter.Jacobian
	}
	if useHess {
		problem.Hess = adapter.Hessian
	}

	return solver.Solve(solver.Request{
		Method:      cfg.Method,
		Problem:     problem,
		X0:          x,
		Tol:         inst.tol,
		Bounds:      inst.bounds,
		Constraints: inst.constraints,
		Callback:    cfg.Callback,
		Options:     cfg.Options,
	})
}
