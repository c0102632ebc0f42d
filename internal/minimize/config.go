package minimize

import (
	"errors"
	"fmt"

	"github.com/born-ml/sonum/internal/solver"
)

// Configuration errors.
var (
	// ErrHessianProductUnsupported is returned whenever a Hessian-vector
	// product is requested. No supported algorithm consumes one, and the
	// bridge never wires it up.
	ErrHessianProductUnsupported = errors.New("minimize: hessian-vector products are not supported")

	// ErrNilObjective is returned when no objective function is given.
	ErrNilObjective = errors.New("minimize: objective function is required")

	// ErrNilInitial is returned when no initial point is given.
	ErrNilInitial = errors.New("minimize: initial point is required")

	// ErrBatchShape is returned when a batchwise call is made with an
	// initial tensor that has no leading batch dimension.
	ErrBatchShape = errors.New("minimize: batchwise call requires a leading batch dimension")
)

// GradMode controls whether a derivative callback is handed to the solver.
type GradMode int

// Derivative callback modes.
const (
	// GradAuto supplies the callback when the chosen method consumes it.
	GradAuto GradMode = iota
	// GradNone never supplies the callback; the solver falls back to its
	// own finite-difference approximation if it needs one.
	GradNone
	// GradForce always supplies the callback, even for methods outside
	// the capability table.
	GradForce
)

// Config collects the recognized options of a Minimize call. The zero
// value selects the default method (nelder-mead) with automatic
// derivative resolution and no bounds, constraints or extra arguments.
type Config struct {
	// Method selects the optimization algorithm.
	Method solver.Method

	// Jac and Hess control the gradient and Hessian callbacks.
	Jac  GradMode
	Hess GradMode

	// HessProd requests a Hessian-vector-product callback. Any non-nil
	// value makes the call fail with ErrHessianProductUnsupported before
	// a solver is touched.
	HessProd any

	// Single-instance options, also the shared defaults for batch calls.
	Bounds      []solver.Bound
	Constraints []solver.Constraint
	Tol         float64
	Args        []any

	// Options and Callback are passed through to the solver unchanged.
	Options  solver.Options
	Callback solver.Callback

	// Batchwise treats the leading dimension of x0 as a batch of
	// independent problems.
	Batchwise bool

	// Per-instance overrides for batch calls. Each, when non-nil, must
	// have exactly one entry per batch instance and replaces the shared
	// value above for the matching instance.
	BatchBounds      [][]solver.Bound
	BatchConstraints [][]solver.Constraint
	BatchTol         []float64
	BatchArgs        [][]any
}

// validate checks the config once at the entry point.
func (c *Config) validate() error {
	if c.HessProd != nil {
		return ErrHessianProductUnsupported
	}
	if !c.Batchwise {
		if c.BatchBounds != nil || c.BatchConstraints != nil || c.BatchTol != nil || c.BatchArgs != nil {
			return errors.New("minimize: per-instance batch options require Batchwise")
		}
	}
	return nil
}

// validateBatch checks the per-instance override lengths against the
// batch size. A mismatched override is rejected up front instead of
// failing mid-batch with an index error.
func (c *Config) validateBatch(b int) error {
	check := func(name string, length int) error {
		if length != b {
			return fmt.Errorf("minimize: %s has %d entries for batch size %d", name, length, b)
		}
		return nil
	}
	if c.BatchBounds != nil {
		if err := check("BatchBounds", len(c.BatchBounds)); err != nil {
			return err
		}
	}
	if c.BatchConstraints != nil {
		if err := check("BatchConstraints", len(c.BatchConstraints)); err != nil {
			return err
		}
	}
	if c.BatchTol != nil {
		if err := check("BatchTol", len(c.BatchTol)); err != nil {
			return err
		}
	}
	if c.BatchArgs != nil {
		if err := check("BatchArgs", len(c.BatchArgs)); err != nil {
			return err
		}
	}
	return nil
}
