package minimize

import (
	"testing"

	"github.com/born-ml/sonum/internal/solver"
)

func TestResolveCallbacks_Auto(t *testing.T) {
	tests := []struct {
		method   solver.Method
		wantGrad bool
		wantHess bool
	}{
		{solver.NelderMead, false, false},
		{solver.GradientDescent, true, false},
		{solver.CG, true, false},
		{solver.BFGS, true, false},
		{solver.LBFGS, true, false},
		{solver.Newton, true, true},
		{solver.LBFGSB, true, false},
		{solver.SLSQP, true, false},
	}
	for _, tt := range tests {
		gotGrad, gotHess := resolveCallbacks(tt.method, GradAuto, GradAuto)
		if gotGrad != tt.wantGrad || gotHess != tt.wantHess {
			t.Errorf("%s: resolved (grad=%v, hess=%v), want (grad=%v, hess=%v)",
				tt.method, gotGrad, gotHess, tt.wantGrad, tt.wantHess)
		}
	}
}

func TestResolveCallbacks_ExplicitDisable(t *testing.T) {
	gotGrad, gotHess := resolveCallbacks(solver.Newton, GradNone, GradNone)
	if gotGrad || gotHess {
		t.Errorf("explicit disable ignored: grad=%v hess=%v", gotGrad, gotHess)
	}
}

func TestResolveCallbacks_Force(t *testing.T) {
	gotGrad, gotHess := resolveCallbacks(solver.NelderMead, GradForce, GradForce)
	if !gotGrad || !gotHess {
		t.Errorf("force ignored: grad=%v hess=%v", gotGrad, gotHess)
	}
}
