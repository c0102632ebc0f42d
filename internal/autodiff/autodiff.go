// Package autodiff implements reverse-mode automatic differentiation
// using the decorator pattern over a compute backend.
//
// AutodiffBackend wraps an inner backend and records every operation it
// executes on a gradient tape. After the forward pass, Backward walks the
// tape in reverse and accumulates gradients by the chain rule.
package autodiff

import (
	"github.com/born-ml/sonum/internal/autodiff/ops"
	"github.com/born-ml/sonum/internal/tensor"
)

// AutodiffBackend wraps an inner backend with gradient tracking.
// It implements tensor.Backend, so it is a drop-in replacement anywhere
// a backend is expected.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates an autodiff decorator around the given backend.
func New[B tensor.Backend](inner B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: inner,
		tape:  NewGradientTape(),
	}
}

// Inner returns the wrapped backend.
func (ab *AutodiffBackend[B]) Inner() B {
	return ab.inner
}

// Tape returns the gradient tape.
func (ab *AutodiffBackend[B]) Tape() *GradientTape {
	return ab.tape
}

// Name returns the backend name with an autodiff prefix.
func (ab *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + ab.inner.Name() + ")"
}

// Device returns the inner backend's device.
func (ab *AutodiffBackend[B]) Device() tensor.Device {
	return ab.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (ab *AutodiffBackend[B]) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	// Guard against inplace reuse of the inputs: the tape needs the
	// original values for the backward pass.
	defer a.ForceNonUnique()()
	defer b.ForceNonUnique()()

	output := ab.inner.Add(a, b)
	ab.tape.Record(ops.NewAddOp(a, b, output))
	return output
}

// Sub performs element-wise subtraction and records the operation.
func (ab *AutodiffBackend[B]) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	defer a.ForceNonUnique()()
	defer b.ForceNonUnique()()

	output := ab.inner.Sub(a, b)
	ab.tape.Record(ops.NewSubOp(a, b, output))
	return output
}

// Mul performs element-wise multiplication and records the operation.
func (ab *AutodiffBackend[B]) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	defer a.ForceNonUnique()()
	defer b.ForceNonUnique()()

	output := ab.inner.Mul(a, b)
	ab.tape.Record(ops.NewMulOp(a, b, output))
	return output
}

// Div performs element-wise division and records the operation.
func (ab *AutodiffBackend[B]) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	defer a.ForceNonUnique()()
	defer b.ForceNonUnique()()

	output := ab.inner.Div(a, b)
	ab.tape.Record(ops.NewDivOp(a, b, output))
	return output
}

// MatMul performs matrix multiplication and records the operation.
func (ab *AutodiffBackend[B]) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	defer a.ForceNonUnique()()
	defer b.ForceNonUnique()()

	output := ab.inner.MatMul(a, b)
	ab.tape.Record(ops.NewMatMulOp(a, b, output))
	return output
}

// Reshape changes the tensor shape and records the operation.
func (ab *AutodiffBackend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	defer t.ForceNonUnique()()

	output := ab.inner.Reshape(t, newShape)
	ab.tape.Record(ops.NewReshapeOp(t, output))
	return output
}

// Transpose permutes the tensor axes and records the operation.
func (ab *AutodiffBackend[B]) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	defer t.ForceNonUnique()()

	output := ab.inner.Transpose(t, axes...)
	ab.tape.Record(ops.NewTransposeOp(t, output, axes))
	return output
}

// MulScalar multiplies by a scalar and records the operation.
func (ab *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := ab.inner.MulScalar(x, scalar)
	ab.tape.Record(ops.NewMulScalarOp(x, output, scalarToFloat64(scalar)))
	return output
}

// AddScalar adds a scalar and records the operation.
func (ab *AutodiffBackend[B]) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := ab.inner.AddScalar(x, scalar)
	ab.tape.Record(ops.NewAddScalarOp(x, output))
	return output
}

// PowScalar raises to a constant power and records the operation.
func (ab *AutodiffBackend[B]) PowScalar(x *tensor.RawTensor, p float64) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := ab.inner.PowScalar(x, p)
	ab.tape.Record(ops.NewPowScalarOp(x, output, p))
	return output
}

// Exp computes the element-wise exponential and records the operation.
func (ab *AutodiffBackend[B]) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := ab.inner.Exp(x)
	ab.tape.Record(ops.NewExpOp(x, output))
	return output
}

// Log computes the element-wise natural logarithm and records the operation.
func (ab *AutodiffBackend[B]) Log(x *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := ab.inner.Log(x)
	ab.tape.Record(ops.NewLogOp(x, output))
	return output
}

// Sqrt computes the element-wise square root and records the operation.
func (ab *AutodiffBackend[B]) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := ab.inner.Sqrt(x)
	ab.tape.Record(ops.NewSqrtOp(x, output))
	return output
}

// Cos computes the element-wise cosine and records the operation.
func (ab *AutodiffBackend[B]) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := ab.inner.Cos(x)
	ab.tape.Record(ops.NewCosOp(x, output))
	return output
}

// Sin computes the element-wise sine and records the operation.
func (ab *AutodiffBackend[B]) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := ab.inner.Sin(x)
	ab.tape.Record(ops.NewSinOp(x, output))
	return output
}

// Sum reduces to the total sum and records the operation.
func (ab *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := ab.inner.Sum(x)
	ab.tape.Record(ops.NewSumOp(x, output))
	return output
}

// Mean reduces to the arithmetic mean and records the operation.
func (ab *AutodiffBackend[B]) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	output := ab.inner.Mean(x)
	ab.tape.Record(ops.NewMeanOp(x, output))
	return output
}

func scalarToFloat64(scalar any) float64 {
	switch v := scalar.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		panic("autodiff: unsupported scalar type")
	}
}
