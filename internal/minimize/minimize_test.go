package minimize_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/sonum/internal/minimize"
	"github.com/born-ml/sonum/internal/solver"
	"github.com/born-ml/sonum/internal/tensor"
)

func sphere(x *minimize.Param, _ ...any) *minimize.Param {
	return x.Mul(x).Sum()
}

func param(t *testing.T, data []float64, shape tensor.Shape) *minimize.Param {
	t.Helper()
	p, err := tensor.FromSlice[float64, minimize.Engine](data, shape, minimize.NewEngine())
	require.NoError(t, err)
	return p
}

func TestMinimize_SphereDefaults(t *testing.T) {
	x0 := param(t, []float64{1, 1}, tensor.Shape{2})

	res, err := minimize.Minimize(sphere, x0, nil)
	require.NoError(t, err)

	require.Len(t, res.Success, 1)
	require.Len(t, res.Message, 1)
	assert.True(t, res.Success[0], res.Message[0])

	require.True(t, res.Solution.Shape().Equal(tensor.Shape{2}))
	for i, v := range res.Solution.Data() {
		assert.InDeltaf(t, 0, v, 1e-3, "solution[%d]", i)
	}
}

func TestMinimize_GradientMethod(t *testing.T) {
	x0 := param(t, []float64{3, -4}, tensor.Shape{2})

	res, err := minimize.Minimize(sphere, x0, &minimize.Config{Method: solver.BFGS})
	require.NoError(t, err)
	require.True(t, res.Success[0], res.Message[0])
	for _, v := range res.Solution.Data() {
		assert.InDelta(t, 0, v, 1e-5)
	}
}

func TestMinimize_SolutionShapeMatchesInput(t *testing.T) {
	x0 := param(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})

	res, err := minimize.Minimize(sphere, x0, &minimize.Config{Method: solver.BFGS})
	require.NoError(t, err)
	assert.True(t, res.Solution.Shape().Equal(tensor.Shape{2, 2}),
		"solution shape %v", res.Solution.Shape())
}

func TestMinimize_MinObjectiveDiagnostic(t *testing.T) {
	x0 := param(t, []float64{2, 2}, tensor.Shape{2})

	res, err := minimize.Minimize(sphere, x0, &minimize.Config{Method: solver.BFGS})
	require.NoError(t, err)

	// The tracked minimum is at most the objective at the returned point.
	var fSol float64
	for _, v := range res.Solution.Data() {
		fSol += v * v
	}
	assert.LessOrEqual(t, res.MinObjective, fSol+1e-12)
	assert.False(t, math.IsInf(res.MinObjective, 1), "tracker never observed a value")
}

func TestMinimize_HessProdRejectedBeforeSolve(t *testing.T) {
	evaluated := false
	objective := func(x *minimize.Param, _ ...any) *minimize.Param {
		evaluated = true
		return x.Mul(x).Sum()
	}
	x0 := param(t, []float64{1, 1}, tensor.Shape{2})

	_, err := minimize.Minimize(objective, x0, &minimize.Config{HessProd: struct{}{}})
	require.ErrorIs(t, err, minimize.ErrHessianProductUnsupported)
	assert.False(t, evaluated, "objective evaluated despite hessp rejection")
}

func TestMinimize_NilArguments(t *testing.T) {
	x0 := param(t, []float64{1}, tensor.Shape{1})
	_, err := minimize.Minimize(nil, x0, nil)
	require.ErrorIs(t, err, minimize.ErrNilObjective)

	_, err = minimize.Minimize(sphere, nil, nil)
	require.ErrorIs(t, err, minimize.ErrNilInitial)
}

func TestMinimize_ArgsThreadedThroughObjective(t *testing.T) {
	// f(x) = Σ(x - c)², center through Args.
	shifted := func(x *minimize.Param, args ...any) *minimize.Param {
		d := x.AddScalar(-args[0].(float64))
		return d.Mul(d).Sum()
	}
	x0 := param(t, []float64{0, 0}, tensor.Shape{2})

	res, err := minimize.Minimize(shifted, x0, &minimize.Config{
		Method: solver.BFGS,
		Args:   []any{3.0},
	})
	require.NoError(t, err)
	require.True(t, res.Success[0], res.Message[0])
	for _, v := range res.Solution.Data() {
		assert.InDelta(t, 3, v, 1e-5)
	}
}

func TestMinimize_ExplicitJacDisable(t *testing.T) {
	// With the gradient callback disabled the solver approximates it
	// internally; the result should still converge.
	x0 := param(t, []float64{1, 1}, tensor.Shape{2})

	res, err := minimize.Minimize(sphere, x0, &minimize.Config{
		Method: solver.BFGS,
		Jac:    minimize.GradNone,
	})
	require.NoError(t, err)
	require.True(t, res.Success[0], res.Message[0])
	for _, v := range res.Solution.Data() {
		assert.InDelta(t, 0, v, 1e-3)
	}
}

func TestMinimize_ExplicitHessDisable(t *testing.T) {
	// Newton with the Hessian callback disabled still solves: the
	// solver approximates the second derivative itself.
	x0 := param(t, []float64{2, -3}, tensor.Shape{2})

	res, err := minimize.Minimize(sphere, x0, &minimize.Config{
		Method: solver.Newton,
		Hess:   minimize.GradNone,
	})
	require.NoError(t, err)
	require.True(t, res.Success[0], res.Message[0])
	for _, v := range res.Solution.Data() {
		assert.InDelta(t, 0, v, 1e-3)
	}
}

func TestMinimize_NewtonUsesHessian(t *testing.T) {
	x0 := param(t, []float64{5, 5}, tensor.Shape{2})

	res, err := minimize.Minimize(sphere, x0, &minimize.Config{Method: solver.Newton})
	require.NoError(t, err)
	require.True(t, res.Success[0], res.Message[0])
	for _, v := range res.Solution.Data() {
		assert.InDelta(t, 0, v, 1e-5)
	}
}

func TestMinimize_BoundedMethod(t *testing.T) {
	x0 := param(t, []float64{1.5, 1.5}, tensor.Shape{2})

	res, err := minimize.Minimize(sphere, x0, &minimize.Config{
		Method: solver.LBFGSB,
		Bounds: []solver.Bound{
			{Lower: 1, Upper: 2},
			{Lower: 1, Upper: 2},
		},
	})
	require.NoError(t, err)
	require.True(t, res.Success[0], res.Message[0])
	for _, v := range res.Solution.Data() {
		assert.InDelta(t, 1, v, 1e-4)
	}
}

func TestMinimize_ConstrainedMethod(t *testing.T) {
	// min Σx² subject to x₀+x₁ = 1 → (0.5, 0.5)
	x0 := param(t, []float64{1, 0}, tensor.Shape{2})

	res, err := minimize.Minimize(sphere, x0, &minimize.Config{
		Method: solver.SLSQP,
		Constraints: []solver.Constraint{{
			Kind: solver.EqualityConstraint,
			Func: func(x []float64) float64 { return x[0] + x[1] - 1 },
			Grad: func(x []float64) []float64 { return []float64{1, 1} },
		}},
	})
	require.NoError(t, err)
	require.True(t, res.Success[0], res.Message[0])
	assert.InDelta(t, 0.5, res.Solution.Data()[0], 1e-4)
	assert.InDelta(t, 0.5, res.Solution.Data()[1], 1e-4)
}
