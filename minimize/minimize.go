// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package minimize couples differentiable tensor objectives with classical
// numeric optimizers.
//
// The caller provides an objective built from differentiable tensor
// operations and an initial parameter tensor; Minimize derives the
// value/gradient/Hessian callbacks the chosen algorithm needs, runs the
// solver, and returns a solution tensor of the same shape as the input.
//
// Example:
//
//	sphere := func(x *minimize.Param, _ ...any) *minimize.Param {
//	    return x.Mul(x).Sum()
//	}
//	x0 := minimize.FromSlice([]float64{1, 1}, tensor.Shape{2})
//	res, err := minimize.Minimize(sphere, x0, nil)
package minimize

import (
	"github.com/born-ml/sonum/internal/minimize"
	"github.com/born-ml/sonum/internal/solver"
	"github.com/born-ml/sonum/internal/tensor"
)

// Engine is the differentiation backend parameter tensors run on.
type Engine = minimize.Engine

// Param is a differentiable float64 parameter tensor.
type Param = minimize.Param

// Objective maps a parameter tensor (plus optional extra arguments) to a
// single-element differentiable tensor.
type Objective = minimize.Objective

// Config collects the recognized options of a Minimize call.
type Config = minimize.Config

// Result is the outcome of a Minimize call.
type Result = minimize.Result

// GradMode controls whether a derivative callback is handed to the solver.
type GradMode = minimize.GradMode

// Derivative callback modes.
const (
	GradAuto  GradMode = minimize.GradAuto
	GradNone  GradMode = minimize.GradNone
	GradForce GradMode = minimize.GradForce
)

// Method identifies an optimization algorithm.
type Method = solver.Method

// Supported algorithms.
const (
	NelderMead      Method = solver.NelderMead
	GradientDescent Method = solver.GradientDescent
	CG              Method = solver.CG
	BFGS            Method = solver.BFGS
	LBFGS           Method = solver.LBFGS
	Newton          Method = solver.Newton
	LBFGSB          Method = solver.LBFGSB
	SLSQP           Method = solver.SLSQP
)

// ParseMethod resolves a method from its canonical name.
func ParseMethod(name string) (Method, error) {
	return solver.ParseMethod(name)
}

// Bound restricts a single variable to [Lower, Upper].
type Bound = solver.Bound

// Constraint is a scalar constraint with an optional analytic gradient.
type Constraint = solver.Constraint

// ConstraintKind distinguishes equality from inequality constraints.
type ConstraintKind = solver.ConstraintKind

// Constraint kinds.
const (
	EqualityConstraint   = solver.EqualityConstraint
	InequalityConstraint = solver.InequalityConstraint
)

// Options carries algorithm tuning knobs.
type Options = solver.Options

// Callback observes intermediate solutions during a run.
type Callback = solver.Callback

// Configuration errors.
var (
	ErrHessianProductUnsupported = minimize.ErrHessianProductUnsupported
	ErrNilObjective              = minimize.ErrNilObjective
	ErrNilInitial                = minimize.ErrNilInitial
	ErrBatchShape                = minimize.ErrBatchShape
)

// NewEngine creates a fresh differentiation engine.
func NewEngine() Engine {
	return minimize.NewEngine()
}

// FromSlice builds a parameter tensor from flat data and a shape.
// It panics on a length mismatch; use tensor.FromSlice directly for an
// error-returning constructor.
func FromSlice(data []float64, shape tensor.Shape) *Param {
	t, err := tensor.FromSlice[float64, Engine](data, shape, NewEngine())
	if err != nil {
		panic(err)
	}
	return t
}

// Minimize minimizes objective starting from x0. A nil config selects
// the defaults. Solver non-convergence is reported per instance through
// Result.Success and Result.Message, not as an error.
func Minimize(objective Objective, x0 *Param, cfg *Config) (*Result, error) {
	return minimize.Minimize(objective, x0, cfg)
}
