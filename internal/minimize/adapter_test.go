package minimize

import (
	"math"
	"testing"

	"github.com/born-ml/sonum/internal/solver"
	"github.com/born-ml/sonum/internal/tensor"
)

func sphereObjective(x *Param, _ ...any) *Param {
	return x.Mul(x).Sum()
}

func newSphereAdapter(tracker *minTracker) *derivativeAdapter {
	return &derivativeAdapter{
		objective: sphereObjective,
		shape:     tensor.Shape{2},
		tracker:   tracker,
	}
}

func TestAdapter_Value(t *testing.T) {
	adapter := newSphereAdapter(newMinTracker())
	if got := adapter.Value([]float64{3, 4}); math.Abs(got-25) > 1e-12 {
		t.Errorf("Value = %v, want 25", got)
	}
}

func TestAdapter_Jacobian(t *testing.T) {
	adapter := newSphereAdapter(newMinTracker())
	grad := adapter.Jacobian([]float64{3, 4})
	want := []float64{6, 8}
	for i := range want {
		if math.Abs(grad[i]-want[i]) > 1e-10 {
			t.Errorf("grad[%d] = %v, want %v", i, grad[i], want[i])
		}
	}
}

func TestAdapter_Hessian(t *testing.T) {
	adapter := newSphereAdapter(newMinTracker())
	hess := adapter.Hessian([]float64{3, 4})

	// d²(Σx²)/dx² = 2I
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 2
			}
			if math.Abs(hess.At(i, j)-want) > 1e-5 {
				t.Errorf("hess[%d][%d] = %v, want %v", i, j, hess.At(i, j), want)
			}
		}
	}
}

func TestAdapter_TrackerUpdatedByValueOnly(t *testing.T) {
	tracker := newMinTracker()
	adapter := newSphereAdapter(tracker)

	if !math.IsInf(tracker.best, 1) {
		t.Fatal("tracker does not start at +Inf")
	}

	adapter.Jacobian([]float64{1, 1})
	adapter.Hessian([]float64{1, 1})
	if !math.IsInf(tracker.best, 1) {
		t.Error("Jacobian/Hessian mutated the tracker")
	}

	adapter.Value([]float64{3, 4})
	if tracker.best != 25 {
		t.Errorf("tracker = %v, want 25", tracker.best)
	}

	// Non-increasing: a worse value must not raise the minimum.
	adapter.Value([]float64{10, 10})
	if tracker.best != 25 {
		t.Errorf("tracker = %v after worse value, want 25", tracker.best)
	}

	adapter.Value([]float64{1, 0})
	if tracker.best != 1 {
		t.Errorf("tracker = %v after better value, want 1", tracker.best)
	}
}

func TestAdapter_ArgsReachObjective(t *testing.T) {
	// f(x) = Σ(x - c)² with the center passed through args.
	shifted := func(x *Param, args ...any) *Param {
		c := args[0].(float64)
		d := x.AddScalar(-c)
		return d.Mul(d).Sum()
	}
	adapter := &derivativeAdapter{
		objective: shifted,
		shape:     tensor.Shape{2},
		args:      []any{2.0},
		tracker:   newMinTracker(),
	}

	if got := adapter.Value([]float64{2, 2}); math.Abs(got) > 1e-12 {
		t.Errorf("Value at center = %v, want 0", got)
	}
	grad := adapter.Jacobian([]float64{3, 1})
	if math.Abs(grad[0]-2) > 1e-10 || math.Abs(grad[1]+2) > 1e-10 {
		t.Errorf("grad = %v, want [2 -2]", grad)
	}
}

// instrumentedSolve wires an adapter into a solver run the way Minimize
// does, counting how often the solver pulls the autodiff gradient.
func instrumentedSolve(t *testing.T, method solver.Method) (jacCalls int) {
	t.Helper()
	adapter := newSphereAdapter(newMinTracker())

	problem := solver.Problem{Func: adapter.Value}
	if useGrad, _ := resolveCallbacks(method, GradAuto, GradAuto); useGrad {
		problem.Grad = func(x []float64) []float64 {
			jacCalls++
			return adapter.Jacobian(x)
		}
	}

	outcome, err := solver.Solve(solver.Request{
		Method:  method,
		Problem: problem,
		X0:      []float64{3, 4},
	})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("did not converge: %s", outcome.Message)
	}
	return jacCalls
}

func TestAdapter_GradientObservedByCapableMethod(t *testing.T) {
	if calls := instrumentedSolve(t, solver.BFGS); calls == 0 {
		t.Error("autodiff gradient never pulled during a bfgs solve")
	}
}

func TestAdapter_GradientNotSuppliedToDerivativeFreeMethod(t *testing.T) {
	if calls := instrumentedSolve(t, solver.NelderMead); calls != 0 {
		t.Errorf("autodiff gradient pulled %d times by nelder-mead", calls)
	}
}

func TestAdapter_FreshGraphPerCall(t *testing.T) {
	// Repeated calls must not accumulate gradients across graphs.
	adapter := newSphereAdapter(newMinTracker())
	first := adapter.Jacobian([]float64{1, 1})
	second := adapter.Jacobian([]float64{1, 1})
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("gradient differs between identical calls: %v vs %v", first, second)
		}
	}
}
