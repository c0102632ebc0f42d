package autodiff_test

import (
	"math"
	"testing"

	"github.com/born-ml/sonum/internal/autodiff"
	"github.com/born-ml/sonum/internal/backend/cpu"
	"github.com/born-ml/sonum/internal/tensor"
)

// numericalGradient computes the gradient of f at x by central differences.
func numericalGradient(f func(float64) float64, x, epsilon float64) float64 {
	return (f(x+epsilon) - f(x-epsilon)) / (2 * epsilon)
}

// checkGradient compares the reverse-mode gradient of a scalar pipeline
// against central differences at each test point.
func checkGradient(t *testing.T, name string,
	build func(backend *autodiff.AutodiffBackend[*cpu.CPUBackend], x *tensor.RawTensor) *tensor.RawTensor,
	scalar func(float64) float64, points []float64) {
	t.Helper()

	const epsilon = 1e-6
	for _, p := range points {
		backend := autodiff.New(cpu.New())
		x, _ := tensor.FromSlice([]float64{p}, tensor.Shape{1}, backend)

		y := build(backend, x.Raw())
		grads, err := backend.Backward(y)
		if err != nil {
			t.Fatalf("%s at %v: Backward: %v", name, p, err)
		}
		got := grads[x.Raw()].AsFloat64()[0]
		want := numericalGradient(scalar, p, epsilon)

		if math.Abs(got-want) > 1e-5*math.Max(1, math.Abs(want)) {
			t.Errorf("%s at %v: autodiff grad = %v, numerical grad = %v", name, p, got, want)
		}
	}
}

func TestGradientCheck_Exp(t *testing.T) {
	checkGradient(t, "exp",
		func(b *autodiff.AutodiffBackend[*cpu.CPUBackend], x *tensor.RawTensor) *tensor.RawTensor {
			return b.Exp(x)
		},
		math.Exp, []float64{-1, 0, 0.5, 2})
}

func TestGradientCheck_Log(t *testing.T) {
	checkGradient(t, "log",
		func(b *autodiff.AutodiffBackend[*cpu.CPUBackend], x *tensor.RawTensor) *tensor.RawTensor {
			return b.Log(x)
		},
		math.Log, []float64{0.1, 1, 3})
}

func TestGradientCheck_Sqrt(t *testing.T) {
	checkGradient(t, "sqrt",
		func(b *autodiff.AutodiffBackend[*cpu.CPUBackend], x *tensor.RawTensor) *tensor.RawTensor {
			return b.Sqrt(x)
		},
		math.Sqrt, []float64{0.25, 1, 9})
}

func TestGradientCheck_Trig(t *testing.T) {
	checkGradient(t, "sin",
		func(b *autodiff.AutodiffBackend[*cpu.CPUBackend], x *tensor.RawTensor) *tensor.RawTensor {
			return b.Sin(x)
		},
		math.Sin, []float64{-1, 0, 1.2})
	checkGradient(t, "cos",
		func(b *autodiff.AutodiffBackend[*cpu.CPUBackend], x *tensor.RawTensor) *tensor.RawTensor {
			return b.Cos(x)
		},
		math.Cos, []float64{-1, 0, 1.2})
}

func TestGradientCheck_PowScalar(t *testing.T) {
	checkGradient(t, "pow3",
		func(b *autodiff.AutodiffBackend[*cpu.CPUBackend], x *tensor.RawTensor) *tensor.RawTensor {
			return b.PowScalar(x, 3)
		},
		func(v float64) float64 { return math.Pow(v, 3) },
		[]float64{0.5, 1, 2})
}

func TestGradientCheck_Composite(t *testing.T) {
	// f(x) = exp(sin(x)·x) / (x + 2)
	checkGradient(t, "composite",
		func(b *autodiff.AutodiffBackend[*cpu.CPUBackend], x *tensor.RawTensor) *tensor.RawTensor {
			num := b.Exp(b.Mul(b.Sin(x), x))
			den := b.AddScalar(x, 2.0)
			return b.Div(num, den)
		},
		func(v float64) float64 { return math.Exp(math.Sin(v)*v) / (v + 2) },
		[]float64{-0.5, 0.3, 1})
}

func TestGradientCheck_DivQuotientRule(t *testing.T) {
	// f(x) = x / (x² + 1)
	checkGradient(t, "quotient",
		func(b *autodiff.AutodiffBackend[*cpu.CPUBackend], x *tensor.RawTensor) *tensor.RawTensor {
			den := b.AddScalar(b.Mul(x, x), 1.0)
			return b.Div(x, den)
		},
		func(v float64) float64 { return v / (v*v + 1) },
		[]float64{-2, 0, 0.7, 3})
}
