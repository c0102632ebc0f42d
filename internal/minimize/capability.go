package minimize

import "github.com/born-ml/sonum/internal/solver"

// capability records which derivative callbacks an algorithm consumes.
// Supplying an unused callback is harmless, but many solver
// implementations reject unexpected ones, so the table is conservative.
type capability struct {
	gradient bool
	hessian  bool
}

// methodCapabilities is the static method → capability table. New methods
// are supported by extending the table, not by adding branches.
var methodCapabilities = map[solver.Method]capability{
	solver.NelderMead:      {},
	solver.GradientDescent: {gradient: true},
	solver.CG:              {gradient: true},
	solver.BFGS:            {gradient: true},
	solver.LBFGS:           {gradient: true},
	solver.Newton:          {gradient: true, hessian: true},
	solver.LBFGSB:          {gradient: true},
	solver.SLSQP:           {gradient: true},
}

// resolveCallbacks decides whether the gradient and Hessian callbacks are
// handed to the solver, combining the static table with the explicit
// user modes.
func resolveCallbacks(method solver.Method, jac, hess GradMode) (useGrad, useHess bool) {
	caps := methodCapabilities[method]

	switch jac {
	case GradNone:
		useGrad = false
	case GradForce:
		useGrad = true
	default:
		useGrad = caps.gradient
	}

	switch hess {
	case GradNone:
		useHess = false
	case GradForce:
		useHess = true
	default:
		useHess = caps.hessian
	}

	return useGrad, useHess
}
